// Package errs defines the error shapes returned to API clients.
//
// Every failure that leaves the service is an *HTTPError serialized to JSON,
// so clients can switch on a stable machine code instead of parsing text.
//
//   - Consistent error bodies for every route.
//   - Field-level validation errors for JSON and form payloads.
//   - Interop with the standard errors package (errors.As / errors.Is).
package errs

import "strings"

// FieldError is a validation problem tied to a single request field.
// Example:
//
//	{ "field": "color", "error": "is required" }
type FieldError struct {
	// Field is the payload key the error relates to (e.g. "color").
	Field string `json:"field"`

	// Error is the human-readable description.
	Error string `json:"error"`
}

// HTTPError is the error type handlers and services return.
//
// Fields:
//   - Code: machine-friendly code (e.g. "NOT_FOUND", "VISITED_COUNTRY_ALREADY_EXISTS").
//   - Message: human-friendly message, safe to show to end users.
//   - Status: HTTP status code.
//   - Override: whether the client may show Message as-is.
//   - Errors: per-field validation errors.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, if any.
	Errors []FieldError `json:"errors"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// Only the type is compared, not Code or Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Precondition Failed" into "PRECONDITION_FAILED".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
