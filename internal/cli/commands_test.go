package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceos/complianceos/internal/models"
	"github.com/complianceos/complianceos/internal/store"
)

func newTestApp(t *testing.T) (*App, *store.Store, *bytes.Buffer) {
	t.Helper()
	client, s := newTestServer(t)
	var buf bytes.Buffer
	app := &App{
		config: &Config{ServerAddr: client.baseURL, RequestTimeout: 5 * time.Second},
		client: client,
		in:     strings.NewReader(""),
		out:    &buf,
	}
	return app, s, &buf
}

func TestRoot_ReadsCommandsFromInput(t *testing.T) {
	app, s, buf := newTestApp(t)

	_, err := s.AddCustomer(models.Customer{Name: "Acme"})
	require.NoError(t, err)

	app.in = strings.NewReader("customers\nbogus\nexit\n")
	app.Root(context.Background())

	out := buf.String()
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Bye!")
}

func TestCustomersCommand(t *testing.T) {
	app, s, buf := newTestApp(t)

	_, err := s.AddCustomer(models.Customer{Name: "Acme", Industry: "fintech"})
	require.NoError(t, err)

	app.customers(context.Background())

	assert.Contains(t, buf.String(), "Acme [fintech]")
}

func TestCustomersCommand_Empty(t *testing.T) {
	app, _, buf := newTestApp(t)

	app.customers(context.Background())

	assert.Contains(t, buf.String(), "No customers.")
}

func TestDashboardCommand(t *testing.T) {
	app, s, buf := newTestApp(t)

	_, err := s.AddCustomer(models.Customer{Name: "Acme"})
	require.NoError(t, err)

	app.dashboard(context.Background())

	assert.Contains(t, buf.String(), "Customers: 1")
}

func TestUpcomingCommand(t *testing.T) {
	app, s, buf := newTestApp(t)

	c, err := s.AddCustomer(models.Customer{Name: "Acme"})
	require.NoError(t, err)
	_, err = s.AddObligation(models.Obligation{
		CustomerID: c.ID, Title: "Pen test", Type: models.ObligationPenTest,
		DueDate: time.Now().Add(48 * time.Hour), Status: models.ObligationUpcoming,
	})
	require.NoError(t, err)

	app.upcoming(context.Background(), 7)

	assert.Contains(t, buf.String(), "Pen test")
}

func TestSuggestCommand(t *testing.T) {
	app, s, buf := newTestApp(t)

	_, err := s.AddAnswer(models.Answer{
		QuestionText: "Do you encrypt data at rest?",
		AnswerText:   "Yes, AES-256.",
		Keywords:     []string{"encryption"},
	})
	require.NoError(t, err)

	app.suggest(context.Background(), "how do you handle encryption")

	out := buf.String()
	assert.Contains(t, out, "Do you encrypt data at rest?")
	assert.Contains(t, out, "Yes, AES-256.")
}

func TestExportImportCommands(t *testing.T) {
	app, s, buf := newTestApp(t)

	_, err := s.AddCustomer(models.Customer{Name: "Acme"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	app.exportSnapshot(context.Background(), path)
	require.Contains(t, buf.String(), "Snapshot written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme")

	app2, s2, buf2 := newTestApp(t)
	app2.importSnapshot(context.Background(), path)
	require.Contains(t, buf2.String(), "Snapshot restored")
	assert.Len(t, s2.Snapshot().Customers, 1)
}
