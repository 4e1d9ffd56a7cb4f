package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/scripts/internal/config"
	"github.com/deppfellow/scripts/internal/server"
)

func newHealthHandler(checks map[string]CheckFunc) *HealthHandler {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	h := NewHealthHandler(s)
	h.checks = checks
	h.timeout = time.Second
	return h
}

type healthBody struct {
	Status bool         `json:"status"`
	Data   HealthReport `json:"data"`
}

func checkHealth(t *testing.T, h *HealthHandler) (int, healthBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	require.NoError(t, h.CheckHealth(c))

	var body healthBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckHealthAllPassing(t *testing.T) {
	h := newHealthHandler(map[string]CheckFunc{
		config.HealthCheckDatabase: func(context.Context) error { return nil },
	})

	code, body := checkHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Status)
	assert.Equal(t, "healthy", body.Data.Status)
	assert.Equal(t, "test", body.Data.Environment)
	assert.Equal(t, "healthy", body.Data.Checks[config.HealthCheckDatabase].Status)
}

func TestCheckHealthFailingDependency(t *testing.T) {
	h := newHealthHandler(map[string]CheckFunc{
		config.HealthCheckDatabase: func(context.Context) error { return nil },
		config.HealthCheckRedis:    func(context.Context) error { return errors.New("connection refused") },
	})

	code, body := checkHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, body.Status)
	assert.Equal(t, "unhealthy", body.Data.Status)
	assert.Equal(t, "connection refused", body.Data.Checks[config.HealthCheckRedis].Error)
	assert.Equal(t, "healthy", body.Data.Checks[config.HealthCheckDatabase].Status)
}

func TestCheckHealthHonoursTimeout(t *testing.T) {
	h := newHealthHandler(map[string]CheckFunc{
		config.HealthCheckDatabase: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	h.timeout = 10 * time.Millisecond

	code, body := checkHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, context.DeadlineExceeded.Error(), body.Data.Checks[config.HealthCheckDatabase].Error)
}
