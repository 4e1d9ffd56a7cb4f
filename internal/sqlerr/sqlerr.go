// Package sqlerr translates database driver errors.
//
// PostgreSQL reports failures as SQLSTATE codes; this package normalizes
// them into a Code and converts them into *errs.HTTPError values with
// client-safe messages (e.g. a not-null violation on scripts.title becomes
// a 400 "The Title is required").
package sqlerr
