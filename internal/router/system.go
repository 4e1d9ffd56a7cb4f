package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/scripts/internal/handler"
	"github.com/deppfellow/scripts/static"
)

// registerSystemRoutes registers endpoints outside the business API:
// health, the docs UI and the embedded docs assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
