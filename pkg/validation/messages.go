package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMessage renders a binding failure for one field as a client-facing
// sentence keyed by the validator tag that fired.
func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", field)
	case "gte":
		return fmt.Sprintf("%s is below the allowed minimum", field)
	case "gt":
		return fmt.Sprintf("%s must be above the allowed minimum", field)
	case "lte":
		return fmt.Sprintf("%s is above the allowed maximum", field)
	case "lt":
		return fmt.Sprintf("%s must be below the allowed maximum", field)
	case "min":
		return fmt.Sprintf("%s does not meet the minimum length or value", field)
	case "max":
		return fmt.Sprintf("%s exceeds the maximum length or value", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the allowed values", field)
	case "dateformat":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

// Describe flattens a binding error into per-field messages. Errors that are
// not field validation failures (malformed JSON, wrong types) collapse to a
// single generic message so parser internals never leak to clients.
func Describe(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"request body is malformed"}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, DefaultMessage(fe.Field(), fe.Tag()))
	}
	return messages
}
