package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldError is a validation failure on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when local input validation fails. No request is made
// for input that fails validation.
type Error struct {
	Fields []FieldError `json:"fields"`
}

// Error joins the field messages.
func (e *Error) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the field messages in order.
func (e *Error) Messages() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Message
	}
	return out
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validator collects validation errors for checks that do not fit tags.
type Validator struct {
	errors []FieldError
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an *Error if anything failed, nil otherwise.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	return &Error{Fields: v.errors}
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, orDefault(message, "is required"))
	}
	return v
}

// Range checks that a number lies within [minVal, maxVal].
func (v *Validator) Range(field string, value, minVal, maxVal int, message string) *Validator {
	if value < minVal || value > maxVal {
		v.AddError(field, orDefault(message, fmt.Sprintf("must be between %d and %d", minVal, maxVal)))
	}
	return v
}

// Positive checks that an id or quantity is above zero.
func (v *Validator) Positive(field string, value int, message string) *Validator {
	if value <= 0 {
		v.AddError(field, orDefault(message, "must be positive"))
	}
	return v
}

// MaxRunes checks a string's length in characters.
func (v *Validator) MaxRunes(field, value string, maxLen int, message string) *Validator {
	if utf8.RuneCountInString(value) > maxLen {
		v.AddError(field, orDefault(message, fmt.Sprintf("must be %d characters or less", maxLen)))
	}
	return v
}

// OneOf checks that value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed []string, message string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, orDefault(message, "must be one of: "+strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

func orDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
