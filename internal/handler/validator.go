package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sumire/taskboard/internal/domain"
)

// AppValidator wraps go-playground/validator for echo.
type AppValidator struct {
	validate *validator.Validate
}

// NewAppValidator creates a new AppValidator.
func NewAppValidator() *AppValidator {
	return &AppValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate validates a request struct using its validate tags. The first
// failing field is reported as a ValidationError.
func (v *AppValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("failed on '%s' validation", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on '%s=%s' validation", fe.Tag(), fe.Param())
		}
		return &domain.ValidationError{Field: fe.Field(), Message: msg}
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
