package store

import (
	"sort"
	"time"

	"github.com/complianceos/complianceos/internal/models"
	"github.com/complianceos/complianceos/internal/suggest"
)

// The read side: pure queries over the current snapshot. Every call reads a
// single consistent snapshot; derived values (urgency, stats) are computed
// at read time and never written back.

func (s *Store) GetCustomer(id string) (models.Customer, bool) {
	for _, c := range s.Snapshot().Customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *Store) GetQuestionnaire(id string) (models.Questionnaire, bool) {
	for _, q := range s.Snapshot().Questionnaires {
		if q.ID == id {
			return q, true
		}
	}
	return models.Questionnaire{}, false
}

func (s *Store) GetAnswer(id string) (models.Answer, bool) {
	for _, a := range s.Snapshot().Answers {
		if a.ID == id {
			return a, true
		}
	}
	return models.Answer{}, false
}

func (s *Store) GetTask(id string) (models.Task, bool) {
	for _, t := range s.Snapshot().Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *Store) GetObligation(id string) (models.Obligation, bool) {
	for _, o := range s.Snapshot().Obligations {
		if o.ID == id {
			return o, true
		}
	}
	return models.Obligation{}, false
}

func (s *Store) GetAgreement(id string) (models.Agreement, bool) {
	for _, a := range s.Snapshot().Agreements {
		if a.ID == id {
			return a, true
		}
	}
	return models.Agreement{}, false
}

// CustomerQuestionnaires filters by owning customer, preserving insertion
// order of the underlying collection.
func (s *Store) CustomerQuestionnaires(customerID string) []models.Questionnaire {
	result := []models.Questionnaire{}
	for _, q := range s.Snapshot().Questionnaires {
		if q.CustomerID == customerID {
			result = append(result, q)
		}
	}
	return result
}

func (s *Store) CustomerTasks(customerID string) []models.Task {
	result := []models.Task{}
	for _, t := range s.Snapshot().Tasks {
		if t.CustomerID == customerID {
			result = append(result, t)
		}
	}
	return result
}

func (s *Store) CustomerObligations(customerID string) []models.Obligation {
	result := []models.Obligation{}
	for _, o := range s.Snapshot().Obligations {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result
}

func (s *Store) CustomerAgreements(customerID string) []models.Agreement {
	result := []models.Agreement{}
	for _, a := range s.Snapshot().Agreements {
		if a.CustomerID == customerID {
			result = append(result, a)
		}
	}
	return result
}

// UpcomingObligations selects obligations whose stored status is not
// completed and whose due date falls within [now, now + days], inclusive of
// both bounds, sorted ascending by due date. Past-due obligations fail the
// lower bound: they are overdue, not upcoming.
func (s *Store) UpcomingObligations(days int) []models.Obligation {
	now := s.now()
	limit := now.Add(time.Duration(days) * 24 * time.Hour)

	result := []models.Obligation{}
	for _, o := range s.Snapshot().Obligations {
		if o.Status == models.ObligationCompleted {
			continue
		}
		if o.DueDate.Before(now) || o.DueDate.After(limit) {
			continue
		}
		result = append(result, o)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result
}

// SearchAnswers returns library answers matching the query by substring,
// in collection order.
func (s *Store) SearchAnswers(query string) []models.Answer {
	return suggest.Search(s.Snapshot().Answers, query)
}

// SuggestedAnswers ranks library answers against a new question's text and
// returns the top matches.
func (s *Store) SuggestedAnswers(questionText string) []models.Answer {
	return suggest.Rank(s.Snapshot().Answers, questionText)
}

// DashboardStats aggregates the landing-page counters.
type DashboardStats struct {
	Customers          int `json:"customers"`
	QuestionsTotal     int `json:"questionsTotal"`
	QuestionsAnswered  int `json:"questionsAnswered"`
	PendingTasks       int `json:"pendingTasks"`
	OverdueObligations int `json:"overdueObligations"`
}

func (s *Store) Dashboard() DashboardStats {
	snap := s.Snapshot()
	now := s.now()

	stats := DashboardStats{Customers: len(snap.Customers)}
	for _, qn := range snap.Questionnaires {
		stats.QuestionsTotal += len(qn.Questions)
		for _, q := range qn.Questions {
			if q.Status == models.QuestionDone {
				stats.QuestionsAnswered++
			}
		}
	}
	for _, t := range snap.Tasks {
		if t.Status != models.TaskDone {
			stats.PendingTasks++
		}
	}
	for _, o := range snap.Obligations {
		if o.Status != models.ObligationCompleted && o.DueDate.Before(now) {
			stats.OverdueObligations++
		}
	}
	return stats
}

// TimelineEntry pairs an obligation with its read-time urgency derivation.
type TimelineEntry struct {
	models.Obligation
	DaysUntil int                     `json:"daysUntil"`
	Urgency   models.ObligationStatus `json:"urgency"`
}

// TimelineStats counts entries per derived urgency.
type TimelineStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	DueSoon   int `json:"dueSoon"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`
}

// Timeline returns every obligation with its derived urgency, sorted
// ascending by due date, plus per-urgency counts.
func (s *Store) Timeline() ([]TimelineEntry, TimelineStats) {
	now := s.now()

	entries := []TimelineEntry{}
	var stats TimelineStats
	for _, o := range s.Snapshot().Obligations {
		e := TimelineEntry{
			Obligation: o,
			DaysUntil:  o.DaysUntil(now),
			Urgency:    o.Urgency(now),
		}
		entries = append(entries, e)
		stats.Total++
		switch e.Urgency {
		case models.ObligationOverdue:
			stats.Overdue++
		case models.ObligationDueSoon:
			stats.DueSoon++
		case models.ObligationCompleted:
			stats.Completed++
		default:
			stats.Upcoming++
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DueDate.Before(entries[j].DueDate)
	})
	return entries, stats
}
