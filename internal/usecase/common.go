package usecase

import (
	"errors"
	"strings"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// validateInput runs struct-tag validation and reports every offending field.
func validateInput(v *validator.Validate, payload interface{}) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return apperror.BadRequest(err.Error())
	}
	return apperror.Validation(
		strings.Join(validation.FormatValidationErrors(err), "; "),
		validation.FieldNames(err),
	)
}

// storeError passes AppErrors through and hides everything else behind a
// generic internal error. notFound is used for domain.ErrNotFound.
func storeError(err error, notFound string) error {
	var appErr *apperror.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	default:
		return apperror.Internal(err)
	}
}

// trimmed keeps nil as nil; a blank value stays blank for the validator.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
