package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceos/complianceos/internal/common"
	"github.com/complianceos/complianceos/internal/models"
)

func sampleSnapshot() models.Snapshot {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := models.EmptySnapshot()
	snap.Customers = []models.Customer{
		{ID: "c1", Name: "Acme", CreatedAt: now, UpdatedAt: now},
	}
	snap.Answers = []models.Answer{
		{ID: "a1", QuestionText: "MFA?", AnswerText: "Yes.", Keywords: []string{"authentication"}, UsageCount: 1, CreatedAt: now, UpdatedAt: now},
	}
	snap.Obligations = []models.Obligation{
		{ID: "o1", CustomerID: "c1", Title: "SOC2 renewal", Type: models.ObligationSOC2Renewal,
			DueDate: now.AddDate(0, 3, 0), ReminderDays: []int{30, 7}, Status: models.ObligationUpcoming,
			CreatedAt: now, UpdatedAt: now},
	}
	return snap
}

func testBackends(t *testing.T) map[string]Storage {
	t.Helper()

	file, err := NewFileStorage(filepath.Join(t.TempDir(), "data", "snapshot.json"))
	require.NoError(t, err)

	badger, err := NewInMemoryBadgerStorage()
	require.NoError(t, err)
	t.Cleanup(func() { _ = badger.Close() })

	return map[string]Storage{"file": file, "badger": badger}
}

func TestStorage_SaveLoadRoundTrip(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			want := sampleSnapshot()
			require.NoError(t, st.Save(ctx, want))

			got, ok, err := st.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestStorage_LoadWithoutSnapshot(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := st.Load(context.Background())
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStorage_SaveReplacesPrevious(t *testing.T) {
	for name, st := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := sampleSnapshot()
			require.NoError(t, st.Save(ctx, first))

			second := first
			second.Customers = append([]models.Customer{}, first.Customers...)
			second.Customers[0].Name = "Acme Renamed"
			require.NoError(t, st.Save(ctx, second))

			got, ok, err := st.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Acme Renamed", got.Customers[0].Name)
		})
	}
}

func TestFileStorage_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o660))

	st, err := NewFileStorage(path)
	require.NoError(t, err)

	_, _, err = st.Load(context.Background())
	assert.ErrorIs(t, err, common.ErrorSnapshotCorrupt)
}

func TestFileStorage_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "snapshot.json")

	st, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), sampleSnapshot()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
