package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// validationError keeps the failing field names alongside the rendered
// message. The registration response carries an errorField so the form can
// highlight the offending input.
type validationError struct {
	msg    string
	fields []string
}

func (e *validationError) Error() string { return e.msg }

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			fields := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return &validationError{msg: strings.Join(msgs, "; "), fields: fields}
		}
		return err
	}
	return nil
}

// firstFailedField returns the first failing field name, or "" when err is
// not a validation error.
func firstFailedField(err error) string {
	var ve *validationError
	if errors.As(err, &ve) && len(ve.fields) > 0 {
		return ve.fields[0]
	}
	return ""
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
