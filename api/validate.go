package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aakanni/portfolio-backend/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names as they appear on the wire, not as Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldLabels maps wire names to the human-readable labels used in
// validation messages.
var fieldLabels = map[string]string{
	"title":         "Title",
	"description":   "Description",
	"imageUrl":      "Image URL",
	"githubUrl":     "GitHub URL",
	"demoUrl":       "Demo URL",
	"technologies":  "Technologies",
	"issuer":        "Issuer",
	"issueDate":     "Issue date",
	"credentialUrl": "Credential URL",
	"authors":       "Authors",
	"journal":       "Journal",
	"abstract":      "Abstract",
	"doi":           "DOI",
	"pdfUrl":        "PDF URL",
	"slug":          "Slug",
	"excerpt":       "Excerpt",
	"content":       "Content",
	"category":      "Category",
	"name":          "Name",
	"bio":           "Bio",
	"values":        "Values",
	"username":      "Username",
	"email":         "Email",
	"password":      "Password",
	"message":       "Message",
	"subject":       "Subject",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please enter a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// validateStruct runs declarative validation on a request payload and folds
// every failing field into one 400 response.
func validateStruct(payload any) *errs.ApiErr {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.NewBadRequestError("Invalid request payload")
	}

	fields := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errs.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return errs.NewValidationError(fields...)
}

// decodeJSON decodes a request body into dst. With strict set, unknown
// fields are rejected; partial-update payloads use this so a client typo
// cannot silently drop an intended change.
func decodeJSON(r *http.Request, dst any, strict bool) *errs.ApiErr {
	decoder := json.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewBadRequestError("Request body is required")
		}
		return errs.NewBadRequestError("Invalid request payload")
	}
	return nil
}

// decodeOptionalJSON decodes a body that may legitimately be empty. An absent
// body leaves dst zero-valued; malformed JSON is still rejected.
func decodeOptionalJSON(r *http.Request, dst any) *errs.ApiErr {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errs.NewBadRequestError("Invalid request payload")
}
