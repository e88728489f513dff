package models

import "time"

// QuestionnaireStatus tracks overall questionnaire completion.
type QuestionnaireStatus string

const (
	QuestionnaireNotStarted QuestionnaireStatus = "not_started"
	QuestionnaireInProgress QuestionnaireStatus = "in_progress"
	QuestionnaireCompleted  QuestionnaireStatus = "completed"
)

// QuestionStatus tracks the state of a single question.
type QuestionStatus string

const (
	QuestionNotStarted QuestionStatus = "not_started"
	QuestionInProgress QuestionStatus = "in_progress"
	QuestionDone       QuestionStatus = "done"
)

// Questionnaire is a security questionnaire received from a customer.
// Questions exist only inside their owning questionnaire; they have no
// collection of their own.
type Questionnaire struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customerId" validate:"required"`
	Name       string              `json:"name" validate:"required"`
	DueDate    *time.Time          `json:"dueDate,omitempty"`
	Status     QuestionnaireStatus `json:"status" validate:"oneof=not_started in_progress completed"`
	Questions  []Question          `json:"questions"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// Question is a single line item of a questionnaire. Once finalized it
// gives rise to a library Answer; IsFinal marks that hand-off.
type Question struct {
	ID       string         `json:"id"`
	Text     string         `json:"text" validate:"required"`
	Category string         `json:"category,omitempty"`
	Owner    string         `json:"owner,omitempty"`
	DueDate  *time.Time     `json:"dueDate,omitempty"`
	Status   QuestionStatus `json:"status" validate:"oneof=not_started in_progress done"`
	Answer   string         `json:"answer,omitempty"`
	IsFinal  bool           `json:"isFinal"`
}

// Progress summarizes questionnaire completion for display.
type Progress struct {
	Total      int `json:"total"`
	Done       int `json:"done"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
	Percent    int `json:"percent"`
}

// Progress computes completion counts and a rounded percentage.
func (q Questionnaire) Progress() Progress {
	p := Progress{Total: len(q.Questions)}
	for _, question := range q.Questions {
		switch question.Status {
		case QuestionDone:
			p.Done++
		case QuestionInProgress:
			p.InProgress++
		default:
			p.NotStarted++
		}
	}
	if p.Total > 0 {
		p.Percent = int(float64(p.Done)/float64(p.Total)*100 + 0.5)
	}
	return p
}
