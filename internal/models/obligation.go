package models

import (
	"math"
	"time"
)

// ObligationType enumerates the renewal/review kinds tracked on the timeline.
type ObligationType string

const (
	ObligationSOC2Renewal     ObligationType = "soc2_renewal"
	ObligationDPARenewal      ObligationType = "dpa_renewal"
	ObligationPenTest         ObligationType = "pen_test"
	ObligationSecurityReview  ObligationType = "security_review"
	ObligationContractRenewal ObligationType = "contract_renewal"
	ObligationOther           ObligationType = "other"
)

// ObligationStatus is both the stored completion state and the vocabulary of
// the date-derived urgency. The stored value is authoritative for completion;
// the derived value (see Urgency) is what gets displayed and filtered on.
type ObligationStatus string

const (
	ObligationUpcoming  ObligationStatus = "upcoming"
	ObligationDueSoon   ObligationStatus = "due_soon"
	ObligationOverdue   ObligationStatus = "overdue"
	ObligationCompleted ObligationStatus = "completed"
)

// Obligation is a recurring compliance deadline for a customer.
type Obligation struct {
	ID           string           `json:"id"`
	CustomerID   string           `json:"customerId" validate:"required"`
	Title        string           `json:"title" validate:"required"`
	Type         ObligationType   `json:"type" validate:"oneof=soc2_renewal dpa_renewal pen_test security_review contract_renewal other"`
	DueDate      time.Time        `json:"dueDate" validate:"required"`
	ReminderDays []int            `json:"reminderDays"`
	Status       ObligationStatus `json:"status" validate:"oneof=upcoming due_soon overdue completed"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// DaysUntil returns the number of whole days from now until the due date,
// rounding partial days up. Negative when the due date has passed.
func (o Obligation) DaysUntil(now time.Time) int {
	return int(math.Ceil(o.DueDate.Sub(now).Hours() / 24))
}

// Urgency recomputes the display status from the due date. The stored status
// is never reconciled with elapsed time by any background process; staleness
// is resolved here, lazily, on every read. A completed obligation stays
// completed regardless of date.
func (o Obligation) Urgency(now time.Time) ObligationStatus {
	if o.Status == ObligationCompleted {
		return ObligationCompleted
	}
	days := o.DaysUntil(now)
	switch {
	case days < 0:
		return ObligationOverdue
	case days <= 7:
		return ObligationDueSoon
	default:
		return ObligationUpcoming
	}
}
