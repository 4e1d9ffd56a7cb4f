package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/scripts/internal/errs"
)

// uniqueKeyPattern matches PostgreSQL's default unique constraint names,
// e.g. scripts_title_key.
var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError normalizes a pgconn.PgError, keeping it as the wrapped cause.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// errorCode builds a machine-readable code of the form <ENTITY>_<ACTION>,
// e.g. scripts + UniqueViolation => SCRIPT_ALREADY_EXISTS.
func errorCode(tableName string, code Code) string {
	entity := strings.ToUpper(singular(tableName))
	if entity == "" {
		entity = "RECORD"
	}

	action := "ERROR"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextValue, StringDataTruncation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", entity, action)
}

// clientMessage phrases a constraint failure for API clients.
func clientMessage(sqlErr *Error) string {
	entity := entityName(sqlErr.TableName, sqlErr.ColumnName)
	column := humanize(sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entity)
	case UniqueViolation:
		identifier := "identifier"
		if c := uniqueColumn(sqlErr.ConstraintName); c != "" {
			identifier = humanize(c)
		}
		return fmt.Sprintf("A %s with this %s already exists", entity, identifier)
	case NotNullViolation:
		if column == "" {
			column = "field"
		}
		return fmt.Sprintf("The %s is required", column)
	case CheckViolation:
		if column != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", column)
		}
		return "One or more values do not meet required conditions"
	case InvalidTextValue, StringDataTruncation:
		return "One or more values have an invalid format"
	default:
		return "An error occurred while processing your request"
	}
}

// entityName prefers a foreign key column ("script_id" => "Script") and
// falls back to the singular table name.
func entityName(tableName, columnName string) string {
	lower := strings.ToLower(columnName)
	if strings.HasSuffix(lower, "_id") {
		return humanize(strings.TrimSuffix(lower, "_id"))
	}
	if tableName != "" {
		return humanize(singular(tableName))
	}
	return "record"
}

func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

// humanize turns snake_case into Title Case: "first_name" => "First Name".
func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueColumn extracts the column from unique_<table>_<column> or
// <table>_<column>_key constraint names.
func uniqueColumn(constraintName string) string {
	if strings.HasPrefix(constraintName, "unique_") {
		if parts := strings.Split(constraintName, "_"); len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}
	if m := uniqueKeyPattern.FindStringSubmatch(constraintName); len(m) > 1 {
		return m[1]
	}
	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError passes through unchanged
//   - constraint and data errors become 400 with a client-safe message
//   - serialization failures and deadlocks become 409
//   - no rows becomes 404 "Entry not found"
//   - everything else is a 500 carrying the original error as its cause
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)
		code := errorCode(sqlErr.TableName, sqlErr.Code)
		message := clientMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(message, false, &code, nil).WithCause(sqlErr)
		case UniqueViolation, CheckViolation, InvalidTextValue, StringDataTruncation:
			return errs.NewBadRequestError(message, true, &code, nil).WithCause(sqlErr)
		case NotNullViolation:
			fieldErrors := []errs.FieldError{{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			}}
			return errs.NewBadRequestError(message, true, &code, fieldErrors).WithCause(sqlErr)
		case SerializationFailure, DeadlockDetected:
			return errs.NewConflictError("Entry already updated").WithCause(sqlErr)
		default:
			return errs.NewInternalServerError().WithCause(sqlErr)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Entry not found", false, nil).WithCause(err)
	}

	return errs.NewInternalServerError().WithCause(err)
}
