package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MobilePattern matches a mainland China mobile number.
var MobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})

		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return MobilePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Struct validates s using `validate` tags. A field's `msg` tag, when set,
// replaces the generated message. Fields are reported in declaration order.
func Struct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Fields: []FieldError{{Field: "", Message: err.Error()}}}
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	seen := make(map[string]bool, len(validationErrors))
	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		if seen[e.Field()] {
			continue
		}
		seen[e.Field()] = true
		fieldErrors = append(fieldErrors, FieldError{
			Field:   e.Field(),
			Message: messageFor(t, e),
		})
	}
	return &Error{Fields: fieldErrors}
}

func messageFor(t reflect.Type, e validator.FieldError) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(e.StructField()); ok {
			if msg := f.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}
	return formatValidationError(e)
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "mobile":
		return "must be a valid mobile number"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be " + e.Param() + " or more"
	case "lte":
		return "must be " + e.Param() + " or less"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
