// Package validation binds and validates request payloads.
//
// Payload structs declare their rules with go-playground/validator tags and
// implement Validatable; BindAndValidate turns binding failures into 400s
// and rule violations into 412s with one FieldError per offending field.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/visited-countries/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule violation that tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

// newValidator reports fields by their wire name (json, then param tag).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "param"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return strings.ToLower(field.Name)
	})
	return v
}

// Struct validates v against its validate tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds path params, query params and the body into payload
// and validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return Failed("Validation failed", nil, err)
	}

	return nil
}

// Failed builds a 412 carrying one FieldError per violation in err.
// Payloads use it to replace the generic message.
func Failed(message string, code *string, err error) *errs.HTTPError {
	return errs.NewPreconditionFailedError(message, true, code, fieldErrors(err))
}

// bindError turns an echo binding failure into a 400.
func bindError(err error) error {
	message := "Invalid request payload"

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			message = "Unsupported content type"
		} else if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
	}

	return errs.NewBadRequestError(message, false, nil, nil)
}

func fieldErrors(err error) []errs.FieldError {
	var out []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, e := range customValidationErrors {
			out = append(out, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, e := range validationErrors {
		field := e.Field()
		var msg string

		switch e.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", e.Param())
			}

		case "max":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", e.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", e.Param())

		default:
			if e.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, e.Tag(), e.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, e.Tag())
			}
		}

		out = append(out, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return out
}
