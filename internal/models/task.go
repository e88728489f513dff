package models

import "time"

// TaskCategory classifies a remediation task by compliance framework.
type TaskCategory string

const (
	TaskSOC2     TaskCategory = "soc2"
	TaskISO27001 TaskCategory = "iso27001"
	TaskGeneral  TaskCategory = "general"
)

// TaskStatus tracks remediation progress.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// EvidenceType classifies an attached piece of evidence.
type EvidenceType string

const (
	EvidenceLink       EvidenceType = "link"
	EvidenceFile       EvidenceType = "file"
	EvidenceScreenshot EvidenceType = "screenshot"
)

// Task is a remediation or compliance work item. An empty CustomerID means
// the task is global rather than customer-scoped.
type Task struct {
	ID          string       `json:"id"`
	CustomerID  string       `json:"customerId,omitempty"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category" validate:"oneof=soc2 iso27001 general"`
	Status      TaskStatus   `json:"status" validate:"oneof=not_started in_progress done"`
	Evidence    []Evidence   `json:"evidence"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Evidence is embedded in exactly one Task.
type Evidence struct {
	ID      string       `json:"id"`
	Type    EvidenceType `json:"type" validate:"oneof=link file screenshot"`
	Title   string       `json:"title" validate:"required"`
	URL     string       `json:"url"`
	AddedAt time.Time    `json:"addedAt"`
}
