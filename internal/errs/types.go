package errs

import (
	"net/http"
)

// statusCode builds the default machine code for an HTTP status,
// e.g. 412 => "PRECONDITION_FAILED". A non-nil custom code wins.
func statusCode(status int, custom *string) string {
	if custom != nil {
		return *custom
	}
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Used for payloads that cannot be decoded at all (malformed JSON,
// a path id that is not an integer).
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusBadRequest, code),
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusNotFound, code),
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewPreconditionFailedError creates a 412 Precondition Failed HTTPError.
//
// 412 covers both validation failures (a required field is missing) and
// conflicts (a uniqueness constraint rejected the write). The two are told
// apart by Code.
func NewPreconditionFailedError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusPreconditionFailed, code),
		Message:  message,
		Status:   http.StatusPreconditionFailed,
		Override: override,
		Errors:   errors,
	}
}

// NewInternalServerError creates a generic 500.
//
// The message is always the status text; the real cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError, nil),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError wraps a validation failure into a 412 HTTPError.
func ValidationError(err error) *HTTPError {
	return NewPreconditionFailedError("Validation failed: "+err.Error(), false, nil, nil)
}
