package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"lingolearn/internal/domain"
)

// Global validator instance for reuse
var validate = validator.New()

// validateInput checks struct tags and wraps failures in domain.ErrValidation
func validateInput(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, describeFieldError(fieldErrs[0]))
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "nefield":
		return "source and target languages must be different"
	default:
		return fe.Field() + " is invalid"
	}
}
