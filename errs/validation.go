package errs

import (
	"errors"
	"net/http"
)

var ErrValidation = errors.New("validation failed")

// FieldError carries one per-field validation message, matching the
// {field, message} entries the admin UI renders next to form inputs.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError bundles per-field messages into a single 400 response.
func NewValidationError(fields ...FieldError) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Fields:     fields,
	}
}

func NewMissingRequiredFieldError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Field:      field,
		Fields:     []FieldError{{Field: field, Message: message}},
	}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
