// Package errs defines the application's error taxonomy.
//
// Every failure a client can see is an *HTTPError carrying a Kind and a
// message. The Kind decides the HTTP status through a single dispatch table
// (kind.go); the global error handler renders the message in the failure
// envelope {"status": false, "message": "..."}.
//
// HTTPError plays nicely with the standard errors package: errors.As finds
// it through wrapping, errors.Is matches by Kind, and Unwrap exposes the
// cause that is logged but never sent to clients.
package errs
