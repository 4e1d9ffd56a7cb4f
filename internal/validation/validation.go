// Package validation contains the logic for validating
// request data.
//
// Field rules are ordered lists of `validator` tags (e.g. "required")
// attached to request parameter names. A Validator applies them to the
// parameters of one request, accumulates per-field messages, and renders
// them in a form the client can understand.
package validation
