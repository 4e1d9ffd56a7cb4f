package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/scripts/internal/config"
	"github.com/deppfellow/scripts/internal/middleware"
	"github.com/deppfellow/scripts/internal/model"
	"github.com/deppfellow/scripts/internal/server"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks  map[string]CheckFunc
	timeout time.Duration
}

// NewHealthHandler registers the dependency checks enabled in
// observability.health_checks.
func NewHealthHandler(s *server.Server) *HealthHandler {
	obs := s.Config.Observability
	checks := make(map[string]CheckFunc)

	if obs.HealthCheckEnabled(config.HealthCheckDatabase) && s.DB != nil {
		checks[config.HealthCheckDatabase] = s.DB.Pool.Ping
	}
	if obs.HealthCheckEnabled(config.HealthCheckRedis) && s.Redis != nil {
		checks[config.HealthCheckRedis] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		timeout: obs.HealthChecks.Timeout,
	}
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthReport is the data of a /status response.
type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth runs every registered check and answers 200 when all pass,
// 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := HealthReport{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(h.checks)),
	}

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check(ctx)
		cancel()

		result := CheckResult{Status: "healthy", ResponseTime: time.Since(checkStart).String()}
		if err != nil {
			result.Status = "unhealthy"
			result.Error = err.Error()
			report.Status = "unhealthy"

			logger.Error().Err(err).Str("check", name).Msg("health check failed")
			h.recordFailure(name, err, time.Since(checkStart))
		}
		report.Checks[name] = result
	}

	logger.Info().
		Str("status", report.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check completed")

	if report.Status != "healthy" {
		return c.JSON(http.StatusServiceUnavailable, model.Envelope{
			Status:  false,
			Data:    report,
			Message: "Service unavailable",
		})
	}
	return c.JSON(http.StatusOK, model.Success(report))
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
