// Package store holds the six record collections in memory and applies
// every mutation as an atomic whole-snapshot replacement: a mutation builds
// a new snapshot from the current one and installs it under a single lock,
// so a reader always observes either the old state or the new state, never
// a collection mid-update.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/complianceos/complianceos/internal/common"
	"github.com/complianceos/complianceos/internal/logging"
	"github.com/complianceos/complianceos/internal/models"
	"github.com/complianceos/complianceos/internal/suggest"
)

// Listener receives the full new snapshot after every mutation. It is a
// fire-and-forget hook: the mutation has already been applied when the
// listener runs, and nothing it does can roll the mutation back. Listeners
// run on the mutating goroutine, in commit order, and must not call back
// into the store.
type Listener func(models.Snapshot)

// Store is the single in-process owner of all compliance records.
// Construct one at startup with New and share it; all methods are safe for
// concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     models.Snapshot
	listeners []Listener

	logger logging.Logger

	// Test seams.
	newID func() string
	now   func() time.Time
}

func New(logger logging.Logger) *Store {
	return &Store{
		state:  models.EmptySnapshot(),
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Snapshot returns the current state. The returned value shares backing
// arrays with the store, which is safe because mutations never modify
// collections in place; they always swap in freshly built slices.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// mutate runs one read-build-install cycle under the write lock. fn receives
// the current state and returns the next one plus a commit flag; on commit
// the new state is installed and listeners are notified before the lock is
// released, so concurrent mutations serialize and every listener sees the
// snapshots in the order they were committed.
func (s *Store) mutate(fn func(cur models.Snapshot) (models.Snapshot, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := fn(s.state)
	if !ok {
		return
	}
	s.state = next
	for _, l := range s.listeners {
		l(next)
	}
}

// ReplaceState installs a previously serialized snapshot wholesale. It is
// intended to be called once, at startup, to hydrate from local storage.
// Nil collections are normalized to empty ones so the store never carries
// a nil slice.
func (s *Store) ReplaceState(snap models.Snapshot) {
	if snap.Customers == nil {
		snap.Customers = []models.Customer{}
	}
	if snap.Questionnaires == nil {
		snap.Questionnaires = []models.Questionnaire{}
	}
	if snap.Answers == nil {
		snap.Answers = []models.Answer{}
	}
	if snap.Tasks == nil {
		snap.Tasks = []models.Task{}
	}
	if snap.Obligations == nil {
		snap.Obligations = []models.Obligation{}
	}
	if snap.Agreements == nil {
		snap.Agreements = []models.Agreement{}
	}
	s.mutate(func(models.Snapshot) (models.Snapshot, bool) {
		return snap, true
	})
}

// Subscribe registers a listener notified after every state change, with
// the full new snapshot. The persistence bridge uses this to write the
// snapshot out after every mutation, unconditionally.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// ---- Customers ----

// AddCustomer assigns an id and timestamps and appends the record.
func (s *Store) AddCustomer(c models.Customer) (models.Customer, error) {
	if err := models.Validate(c); err != nil {
		return models.Customer{}, err
	}
	now := s.now()
	c.ID = s.newID()
	c.CreatedAt = now
	c.UpdatedAt = now

	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Customers = append(append([]models.Customer{}, cur.Customers...), c)
		return next, true
	})
	return c, nil
}

// UpdateCustomer replaces the record with the same id, forcing UpdatedAt to
// the current time and preserving the stored CreatedAt. Unknown id is a
// silent no-op.
func (s *Store) UpdateCustomer(c models.Customer) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Customers = make([]models.Customer, len(cur.Customers))
		for i, existing := range cur.Customers {
			if existing.ID == c.ID {
				c.CreatedAt = existing.CreatedAt
				c.UpdatedAt = s.now()
				next.Customers[i] = c
			} else {
				next.Customers[i] = existing
			}
		}
		return next, true
	})
}

// DeleteCustomer removes the customer and cascades to every questionnaire,
// task, obligation and agreement that belongs to it, in the same atomic
// swap. Unknown id is a silent no-op.
func (s *Store) DeleteCustomer(id string) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur

		next.Customers = make([]models.Customer, 0, len(cur.Customers))
		for _, c := range cur.Customers {
			if c.ID != id {
				next.Customers = append(next.Customers, c)
			}
		}
		next.Questionnaires = make([]models.Questionnaire, 0, len(cur.Questionnaires))
		for _, q := range cur.Questionnaires {
			if q.CustomerID != id {
				next.Questionnaires = append(next.Questionnaires, q)
			}
		}
		next.Tasks = make([]models.Task, 0, len(cur.Tasks))
		for _, t := range cur.Tasks {
			if t.CustomerID != id {
				next.Tasks = append(next.Tasks, t)
			}
		}
		next.Obligations = make([]models.Obligation, 0, len(cur.Obligations))
		for _, o := range cur.Obligations {
			if o.CustomerID != id {
				next.Obligations = append(next.Obligations, o)
			}
		}
		next.Agreements = make([]models.Agreement, 0, len(cur.Agreements))
		for _, a := range cur.Agreements {
			if a.CustomerID != id {
				next.Agreements = append(next.Agreements, a)
			}
		}
		return next, true
	})
}

// ---- Questionnaires ----

// AddQuestionnaire assigns id and timestamps; embedded questions without an
// id get one assigned too.
func (s *Store) AddQuestionnaire(q models.Questionnaire) (models.Questionnaire, error) {
	if err := models.Validate(q); err != nil {
		return models.Questionnaire{}, err
	}
	now := s.now()
	q.ID = s.newID()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.Questions == nil {
		q.Questions = []models.Question{}
	}
	questions := make([]models.Question, len(q.Questions))
	for i, question := range q.Questions {
		if question.ID == "" {
			question.ID = s.newID()
		}
		questions[i] = question
	}
	q.Questions = questions

	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Questionnaires = append(append([]models.Questionnaire{}, cur.Questionnaires...), q)
		return next, true
	})
	return q, nil
}

func (s *Store) UpdateQuestionnaire(q models.Questionnaire) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Questionnaires = make([]models.Questionnaire, len(cur.Questionnaires))
		for i, existing := range cur.Questionnaires {
			if existing.ID == q.ID {
				q.CreatedAt = existing.CreatedAt
				q.UpdatedAt = s.now()
				next.Questionnaires[i] = q
			} else {
				next.Questionnaires[i] = existing
			}
		}
		return next, true
	})
}

func (s *Store) DeleteQuestionnaire(id string) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Questionnaires = make([]models.Questionnaire, 0, len(cur.Questionnaires))
		for _, q := range cur.Questionnaires {
			if q.ID != id {
				next.Questionnaires = append(next.Questionnaires, q)
			}
		}
		return next, true
	})
}

// ---- Answers ----

// AddAnswer assigns id and timestamps and starts the usage counter at 1.
func (s *Store) AddAnswer(a models.Answer) (models.Answer, error) {
	if err := models.Validate(a); err != nil {
		return models.Answer{}, err
	}
	now := s.now()
	a.ID = s.newID()
	a.UsageCount = 1
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Keywords == nil {
		a.Keywords = []string{}
	}

	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Answers = append(append([]models.Answer{}, cur.Answers...), a)
		return next, true
	})
	return a, nil
}

func (s *Store) UpdateAnswer(a models.Answer) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Answers = make([]models.Answer, len(cur.Answers))
		for i, existing := range cur.Answers {
			if existing.ID == a.ID {
				a.CreatedAt = existing.CreatedAt
				a.UpdatedAt = s.now()
				next.Answers[i] = a
			} else {
				next.Answers[i] = existing
			}
		}
		return next, true
	})
}

func (s *Store) DeleteAnswer(id string) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Answers = make([]models.Answer, 0, len(cur.Answers))
		for _, a := range cur.Answers {
			if a.ID != id {
				next.Answers = append(next.Answers, a)
			}
		}
		return next, true
	})
}

// ---- Tasks ----

func (s *Store) AddTask(t models.Task) (models.Task, error) {
	if err := models.Validate(t); err != nil {
		return models.Task{}, err
	}
	now := s.now()
	t.ID = s.newID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Evidence == nil {
		t.Evidence = []models.Evidence{}
	}

	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Tasks = append(append([]models.Task{}, cur.Tasks...), t)
		return next, true
	})
	return t, nil
}

func (s *Store) UpdateTask(t models.Task) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Tasks = make([]models.Task, len(cur.Tasks))
		for i, existing := range cur.Tasks {
			if existing.ID == t.ID {
				t.CreatedAt = existing.CreatedAt
				t.UpdatedAt = s.now()
				next.Tasks[i] = t
			} else {
				next.Tasks[i] = existing
			}
		}
		return next, true
	})
}

func (s *Store) DeleteTask(id string) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Tasks = make([]models.Task, 0, len(cur.Tasks))
		for _, t := range cur.Tasks {
			if t.ID != id {
				next.Tasks = append(next.Tasks, t)
			}
		}
		return next, true
	})
}

// AddEvidence attaches a piece of evidence to a task, assigning its id and
// added-at timestamp and bumping the task's UpdatedAt.
func (s *Store) AddEvidence(taskID string, ev models.Evidence) (models.Evidence, error) {
	if err := models.Validate(ev); err != nil {
		return models.Evidence{}, err
	}
	now := s.now()
	ev.ID = s.newID()
	ev.AddedAt = now

	found := false
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Tasks = make([]models.Task, len(cur.Tasks))
		for i, t := range cur.Tasks {
			if t.ID == taskID {
				found = true
				t.Evidence = append(append([]models.Evidence{}, t.Evidence...), ev)
				t.UpdatedAt = now
			}
			next.Tasks[i] = t
		}
		return next, found
	})
	if !found {
		return models.Evidence{}, common.ErrorNotFound
	}
	return ev, nil
}

// ---- Obligations ----

func (s *Store) AddObligation(o models.Obligation) (models.Obligation, error) {
	if err := models.Validate(o); err != nil {
		return models.Obligation{}, err
	}
	now := s.now()
	o.ID = s.newID()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.ReminderDays == nil {
		o.ReminderDays = []int{}
	}

	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Obligations = append(append([]models.Obligation{}, cur.Obligations...), o)
		return next, true
	})
	return o, nil
}

func (s *Store) UpdateObligation(o models.Obligation) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Obligations = make([]models.Obligation, len(cur.Obligations))
		for i, existing := range cur.Obligations {
			if existing.ID == o.ID {
				o.CreatedAt = existing.CreatedAt
				o.UpdatedAt = s.now()
				next.Obligations[i] = o
			} else {
				next.Obligations[i] = existing
			}
		}
		return next, true
	})
}

func (s *Store) DeleteObligation(id string) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Obligations = make([]models.Obligation, 0, len(cur.Obligations))
		for _, o := range cur.Obligations {
			if o.ID != id {
				next.Obligations = append(next.Obligations, o)
			}
		}
		return next, true
	})
}

// ---- Agreements ----

func (s *Store) AddAgreement(a models.Agreement) (models.Agreement, error) {
	if err := models.Validate(a); err != nil {
		return models.Agreement{}, err
	}
	now := s.now()
	a.ID = s.newID()
	a.CreatedAt = now
	a.UpdatedAt = now

	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Agreements = append(append([]models.Agreement{}, cur.Agreements...), a)
		return next, true
	})
	return a, nil
}

func (s *Store) UpdateAgreement(a models.Agreement) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Agreements = make([]models.Agreement, len(cur.Agreements))
		for i, existing := range cur.Agreements {
			if existing.ID == a.ID {
				a.CreatedAt = existing.CreatedAt
				a.UpdatedAt = s.now()
				next.Agreements[i] = a
			} else {
				next.Agreements[i] = existing
			}
		}
		return next, true
	})
}

func (s *Store) DeleteAgreement(id string) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Agreements = make([]models.Agreement, 0, len(cur.Agreements))
		for _, a := range cur.Agreements {
			if a.ID != id {
				next.Agreements = append(next.Agreements, a)
			}
		}
		return next, true
	})
}

// ---- Embedded questions ----

// UpdateQuestion replaces a question by id inside its owning questionnaire
// and bumps the questionnaire's UpdatedAt. Unknown questionnaire or
// question id is a silent no-op.
func (s *Store) UpdateQuestion(questionnaireID string, question models.Question) {
	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		next.Questionnaires = make([]models.Questionnaire, len(cur.Questionnaires))
		for i, qn := range cur.Questionnaires {
			if qn.ID == questionnaireID {
				questions := make([]models.Question, len(qn.Questions))
				for j, existing := range qn.Questions {
					if existing.ID == question.ID {
						questions[j] = question
					} else {
						questions[j] = existing
					}
				}
				qn.Questions = questions
				qn.UpdatedAt = s.now()
			}
			next.Questionnaires[i] = qn
		}
		return next, true
	})
}

// FinalizeQuestion saves a question's answer to the library: it extracts
// keywords from the question text, creates the Answer record, and marks the
// question done and final in one atomic swap. The question must already
// carry answer text that is not blank.
func (s *Store) FinalizeQuestion(ctx context.Context, questionnaireID, questionID string) (models.Answer, error) {
	now := s.now()

	var answer models.Answer
	var ferr error

	s.mutate(func(cur models.Snapshot) (models.Snapshot, bool) {
		next := cur
		found := false

		next.Questionnaires = make([]models.Questionnaire, len(cur.Questionnaires))
		for i, qn := range cur.Questionnaires {
			if qn.ID == questionnaireID {
				questions := make([]models.Question, len(qn.Questions))
				for j, q := range qn.Questions {
					if q.ID == questionID {
						if strings.TrimSpace(q.Answer) == "" {
							ferr = common.ErrorEmptyAnswer
							return cur, false
						}
						found = true
						answer = models.Answer{
							ID:           s.newID(),
							QuestionText: q.Text,
							AnswerText:   q.Answer,
							Keywords:     suggest.ExtractKeywords(q.Text),
							UsageCount:   1,
							CreatedAt:    now,
							UpdatedAt:    now,
						}
						q.IsFinal = true
						q.Status = models.QuestionDone
					}
					questions[j] = q
				}
				qn.Questions = questions
				qn.UpdatedAt = now
			}
			next.Questionnaires[i] = qn
		}

		if !found {
			ferr = common.ErrorNotFound
			return cur, false
		}

		next.Answers = append(append([]models.Answer{}, cur.Answers...), answer)
		return next, true
	})

	if ferr != nil {
		return models.Answer{}, ferr
	}

	s.logger.Info(ctx, "question finalized into answer library",
		"questionnaire", questionnaireID, "question", questionID, "answer", answer.ID)
	return answer, nil
}
