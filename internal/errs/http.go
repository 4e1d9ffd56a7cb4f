package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "title", "error": "title must not be empty" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "title").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Kind: what went wrong, independent of transport (see kind.go).
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Message: human-friendly message, sent to the client as-is.
//   - Status: HTTP status code, derived from Kind.
//   - Override: flag to let middleware decide whether to override the message.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Kind     Kind   `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`

	// cause is the underlying error (driver error, io error...). It is logged
	// by the global error handler and never shown to clients.
	cause error
}

// Error makes *HTTPError satisfy the built-in `error` interface.
//
// It returns the Message, so printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// A bare *HTTPError target matches any HTTPError. A target carrying a Kind
// matches only errors of that Kind, so callers can write:
//
//	errors.Is(err, &errs.HTTPError{Kind: errs.KindNotFound})
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}

	return t.Kind == "" || t.Kind == e.Kind
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithCause returns a *copy* of this HTTPError wrapping cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	cp := *e
	cp.cause = cause
	return &cp
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
