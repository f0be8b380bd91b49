package validator

import (
	"errors"
	"strings"
)

// FieldError is one message attached to one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects every failing field of a form.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields groups messages by field name for rendering.
func (v ValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, fe := range v {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

func (v *ValidationErrors) add(field string, err error) {
	if err != nil {
		*v = append(*v, FieldError{Field: field, Message: err.Error()})
	}
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	ok := errors.As(err, &ve)
	return ve, ok
}
