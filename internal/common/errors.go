// Package common defines shared constants and sentinel errors used across
// the ComplianceOS core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store/view-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrorValidation  = errors.New("validation error")
	ErrorEmptyAnswer = errors.New("question has no answer text")

	// Storage-level errors.
	ErrorSnapshotCorrupt = errors.New("snapshot corrupt")
)
