package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/scripts/internal/errs"
)

func TestScriptID(t *testing.T) {
	for _, tc := range []struct {
		raw      string
		want     int64
		notFound bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"42", 42, false},
		{"007", 7, false},
		{"abc", 0, true},
		{"1e3", 0, true},
		{"-5", 0, true},
		{"9223372036854775808", 0, true},
	} {
		t.Run(tc.raw, func(t *testing.T) {
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues(tc.raw)

			got, err := scriptID(c)
			if tc.notFound {
				var httpErr *errs.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusNotFound, httpErr.Status)
				assert.Equal(t, "Route not found", httpErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
