// Package validation checks typed request payloads at the HTTP boundary so
// the access layer never sees malformed input.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aidar/taskhive/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return v
}

// Struct validates a request struct by its `validate` tags. Failures wrap
// domain.ErrValidation with a readable message.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe.Field(), fe.Tag(), fe.Param()))
	}

	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(messages, ", "))
}

// Var validates a single value against a tag list such as "min=2".
func Var(field string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s", domain.ErrValidation, describe(field, fe.Tag(), fe.Param()))
	}

	return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, field)
}

func describe(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + param + " characters"
	case "max":
		return field + " must be at most " + param + " characters"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a valid id"
	case "oneof":
		return field + " must be one of: " + param
	default:
		return field + " is invalid"
	}
}

// Field returns a validation error for a field-level rule checked outside of tags.
func Field(field, message string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrValidation, field, message)
}

// ParseDueDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, Field("due_date", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}
