package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/complianceos/complianceos/internal/common"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a record against its declarative validate tags. Errors
// wrap common.ErrorValidation so callers can match with errors.Is.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
