package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/scripts/internal/errs"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", Severity: "ERROR"}
	wrapped := fmt.Errorf("insert: %w", ConvertPgError(pgErr))

	assert.Equal(t, CheckViolation, ErrCode(wrapped))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.ErrorIs(t, wrapped, pgErr)
}

func httpError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleErrorNotNull(t *testing.T) {
	err := HandleError(fmt.Errorf("insert script: %w", &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "scripts",
		ColumnName: "title",
	}))

	he := httpError(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "SCRIPT_REQUIRED", he.Code)
	assert.Equal(t, "The Title is required", he.Message)
	assert.Equal(t, []errs.FieldError{{Field: "title", Error: "is required"}}, he.Errors)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "scripts",
		ConstraintName: "scripts_title_key",
	})

	he := httpError(t, err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "SCRIPT_ALREADY_EXISTS", he.Code)
	assert.Equal(t, "A Script with this Title already exists", he.Message)
}

func TestHandleErrorSerializationIsConflict(t *testing.T) {
	he := httpError(t, HandleError(&pgconn.PgError{Code: "40001"}))
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestHandleErrorNoRows(t *testing.T) {
	he := httpError(t, HandleError(fmt.Errorf("find: %w", sql.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Entry not found", he.Message)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	in := errs.NewConflictError("Entry already updated")
	assert.Same(t, in, HandleError(in))
}

func TestHandleErrorUnknownKeepsCause(t *testing.T) {
	boom := errors.New("connection reset by peer")
	he := httpError(t, HandleError(boom))

	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Equal(t, "Internal Server Error", he.Message)
	assert.ErrorIs(t, he, boom)
}
