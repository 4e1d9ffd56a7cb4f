package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		want int
	}{
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindValidation, http.StatusUnprocessableEntity},
		{KindInternal, http.StatusInternalServerError},
		{Kind("made_up"), http.StatusInternalServerError},
	} {
		assert.Equal(t, tc.want, StatusOf(tc.kind), "kind %q", tc.kind)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(http.StatusNotFound))
	assert.Equal(t, KindMethodNotAllowed, KindOf(http.StatusMethodNotAllowed))
	assert.Equal(t, KindInternal, KindOf(http.StatusBadGateway))
	assert.Equal(t, KindBadRequest, KindOf(http.StatusTeapot))
}

func TestNew(t *testing.T) {
	err := New(KindConflict, "Entry already updated")

	assert.Equal(t, "CONFLICT", err.Code)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, "Entry already updated", err.Error())
}

func TestNewBadRequestErrorCustomCode(t *testing.T) {
	code := "SCRIPT_INVALID"
	err := NewBadRequestError("nope", true, &code, nil)

	assert.Equal(t, "SCRIPT_INVALID", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, err.Override)
}

func TestHTTPErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("Entry not found", false, nil))

	assert.True(t, errors.Is(err, &HTTPError{}))
	assert.True(t, errors.Is(err, &HTTPError{Kind: KindNotFound}))
	assert.False(t, errors.Is(err, &HTTPError{Kind: KindConflict}))
}

func TestWithCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalServerError().WithCause(cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal Server Error", err.Message)
}
