package models

import "time"

// AgreementType classifies a legal agreement.
type AgreementType string

const (
	AgreementDPA   AgreementType = "dpa"
	AgreementNDA   AgreementType = "nda"
	AgreementMSA   AgreementType = "msa"
	AgreementSLA   AgreementType = "sla"
	AgreementOther AgreementType = "other"
)

// AgreementStatus tracks the agreement lifecycle.
type AgreementStatus string

const (
	AgreementDraft   AgreementStatus = "draft"
	AgreementPending AgreementStatus = "pending"
	AgreementActive  AgreementStatus = "active"
	AgreementExpired AgreementStatus = "expired"
)

// Agreement is a legal agreement held with a customer.
type Agreement struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customerId" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Type        AgreementType   `json:"type" validate:"oneof=dpa nda msa sla other"`
	Status      AgreementStatus `json:"status" validate:"oneof=draft pending active expired"`
	SignedDate  *time.Time      `json:"signedDate,omitempty"`
	ExpiryDate  *time.Time      `json:"expiryDate,omitempty"`
	DocumentURL string          `json:"documentUrl,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
