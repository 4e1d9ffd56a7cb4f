package errs

import (
	"net/http"
)

// New creates an HTTPError of the given kind.
//
// Status comes from the Kind dispatch table, Code from the status text:
//
//	New(KindConflict, "Entry already updated")
//	  => {Code: "CONFLICT", Status: 409, Message: "Entry already updated"}
func New(kind Kind, message string) *HTTPError {
	status := StatusOf(kind)

	return &HTTPError{
		Kind:    kind,
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	err := New(KindBadRequest, message)
	err.Override = override
	err.Errors = errors

	// If caller supplies custom code pointer, use it.
	if code != nil {
		err.Code = *code
	}

	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports optional custom code override similar to NewBadRequestError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	err := New(KindNotFound, message)
	err.Override = override

	if code != nil {
		err.Code = *code
	}

	return err
}

// NewConflictError creates a 409 Conflict HTTPError.
func NewConflictError(message string) *HTTPError {
	return New(KindConflict, message)
}

// NewValidationError creates a 422 Unprocessable Entity HTTPError carrying the
// flattened message and the per-field errors it was built from.
func NewValidationError(message string, fieldErrors []FieldError) *HTTPError {
	err := New(KindValidation, message)
	err.Override = true
	err.Errors = fieldErrors
	return err
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// Note:
//   - message is the generic status text, not the real internal error message.
//   - the real error can be attached with WithCause for logging.
func NewInternalServerError() *HTTPError {
	return New(KindInternal, http.StatusText(http.StatusInternalServerError))
}
