package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceos/complianceos/internal/models"
)

func TestGetByID(t *testing.T) {
	s := newTestStore(t)

	c, err := s.AddCustomer(testCustomer())
	require.NoError(t, err)

	got, ok := s.GetCustomer(c.ID)
	assert.True(t, ok)
	assert.Equal(t, c, got)

	_, ok = s.GetCustomer("missing")
	assert.False(t, ok)
}

func TestCustomerChildren_PreserveInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	c1, err := s.AddCustomer(testCustomer())
	require.NoError(t, err)
	c2, err := s.AddCustomer(models.Customer{Name: "Globex"})
	require.NoError(t, err)

	later := time.Now().AddDate(0, 3, 0)
	earlier := time.Now().AddDate(0, 1, 0)

	o1, err := s.AddObligation(testObligation(c1.ID, later))
	require.NoError(t, err)
	_, err = s.AddObligation(testObligation(c2.ID, earlier))
	require.NoError(t, err)
	o3, err := s.AddObligation(testObligation(c1.ID, earlier))
	require.NoError(t, err)

	got := s.CustomerObligations(c1.ID)
	require.Len(t, got, 2)
	// Insertion order, not due-date order.
	assert.Equal(t, o1.ID, got[0].ID)
	assert.Equal(t, o3.ID, got[1].ID)

	assert.Empty(t, s.CustomerObligations("missing"))
}

func TestUpcomingObligations_WindowAndSort(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	c, err := s.AddCustomer(testCustomer())
	require.NoError(t, err)

	overdue, err := s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, -1)))
	require.NoError(t, err)
	in10, err := s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, 10)))
	require.NoError(t, err)
	in3, err := s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, 3)))
	require.NoError(t, err)
	beyond, err := s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, 45)))
	require.NoError(t, err)

	done := testObligation(c.ID, now.AddDate(0, 0, 5))
	done.Status = models.ObligationCompleted
	_, err = s.AddObligation(done)
	require.NoError(t, err)

	got := s.UpcomingObligations(30)
	require.Len(t, got, 2)
	// Ascending by due date.
	assert.Equal(t, in3.ID, got[0].ID)
	assert.Equal(t, in10.ID, got[1].ID)

	for _, o := range got {
		assert.NotEqual(t, overdue.ID, o.ID)
		assert.NotEqual(t, beyond.ID, o.ID)
		assert.NotEqual(t, models.ObligationCompleted, o.Status)
	}
}

func TestUpcomingObligations_BoundsInclusive(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	c, err := s.AddCustomer(testCustomer())
	require.NoError(t, err)

	atNow, err := s.AddObligation(testObligation(c.ID, now))
	require.NoError(t, err)
	atLimit, err := s.AddObligation(testObligation(c.ID, now.Add(7*24*time.Hour)))
	require.NoError(t, err)

	got := s.UpcomingObligations(7)
	require.Len(t, got, 2)
	assert.Equal(t, atNow.ID, got[0].ID)
	assert.Equal(t, atLimit.ID, got[1].ID)
}

func TestDashboard(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	c, err := s.AddCustomer(testCustomer())
	require.NoError(t, err)

	_, err = s.AddQuestionnaire(models.Questionnaire{
		CustomerID: c.ID, Name: "CAIQ", Status: models.QuestionnaireInProgress,
		Questions: []models.Question{
			{Text: "Q1", Status: models.QuestionDone},
			{Text: "Q2", Status: models.QuestionNotStarted},
			{Text: "Q3", Status: models.QuestionDone},
		},
	})
	require.NoError(t, err)

	_, err = s.AddTask(models.Task{Title: "Open", Category: models.TaskGeneral, Status: models.TaskInProgress})
	require.NoError(t, err)
	_, err = s.AddTask(models.Task{Title: "Closed", Category: models.TaskGeneral, Status: models.TaskDone})
	require.NoError(t, err)

	_, err = s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, -2)))
	require.NoError(t, err)
	completedLate := testObligation(c.ID, now.AddDate(0, 0, -2))
	completedLate.Status = models.ObligationCompleted
	_, err = s.AddObligation(completedLate)
	require.NoError(t, err)

	stats := s.Dashboard()
	assert.Equal(t, 1, stats.Customers)
	assert.Equal(t, 3, stats.QuestionsTotal)
	assert.Equal(t, 2, stats.QuestionsAnswered)
	assert.Equal(t, 1, stats.PendingTasks)
	// A completed obligation past its due date is not overdue.
	assert.Equal(t, 1, stats.OverdueObligations)
}

func TestTimeline(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	c, err := s.AddCustomer(testCustomer())
	require.NoError(t, err)

	_, err = s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, -5)))
	require.NoError(t, err)
	_, err = s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, 3)))
	require.NoError(t, err)
	_, err = s.AddObligation(testObligation(c.ID, now.AddDate(0, 0, 30)))
	require.NoError(t, err)
	done := testObligation(c.ID, now.AddDate(0, 0, 1))
	done.Status = models.ObligationCompleted
	_, err = s.AddObligation(done)
	require.NoError(t, err)

	entries, stats := s.Timeline()
	require.Len(t, entries, 4)

	// Ascending by due date: -5d, +1d (completed), +3d, +30d.
	assert.Equal(t, models.ObligationOverdue, entries[0].Urgency)
	assert.Equal(t, -5, entries[0].DaysUntil)
	assert.Equal(t, models.ObligationCompleted, entries[1].Urgency)
	assert.Equal(t, models.ObligationDueSoon, entries[2].Urgency)
	assert.Equal(t, models.ObligationUpcoming, entries[3].Urgency)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].DueDate.Before(entries[i-1].DueDate))
	}

	assert.Equal(t, TimelineStats{Total: 4, Upcoming: 1, DueSoon: 1, Overdue: 1, Completed: 1}, stats)
}

func TestSearchAndSuggestDelegation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddAnswer(models.Answer{
		QuestionText: "Do you encrypt data at rest?",
		AnswerText:   "AES-256 everywhere.",
		Keywords:     []string{"encryption", "data"},
	})
	require.NoError(t, err)
	_, err = s.AddAnswer(models.Answer{
		QuestionText: "What is your uptime SLA?",
		AnswerText:   "99.95%.",
		Keywords:     []string{"uptime"},
	})
	require.NoError(t, err)

	found := s.SearchAnswers("aes")
	require.Len(t, found, 1)
	assert.Equal(t, "AES-256 everywhere.", found[0].AnswerText)

	suggested := s.SuggestedAnswers("How is customer data encrypted?")
	require.Len(t, suggested, 1)
	assert.Equal(t, "Do you encrypt data at rest?", suggested[0].QuestionText)
}
