// Package models defines the compliance-tracking record types and the
// snapshot they are persisted in. JSON field names match the snapshot
// format written by earlier versions of the application, so an existing
// data file hydrates unchanged.
package models

import "time"

// Customer is the root entity; questionnaires, tasks, obligations and
// agreements belong to a customer via CustomerID.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Logo      string    `json:"logo,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
