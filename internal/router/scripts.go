package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/scripts/internal/handler"
)

// registerScriptRoutes mounts the scripts CRUD endpoints. The list route
// declares no :id, which is how Read tells list from single reads.
func registerScriptRoutes(g *echo.Group, h *handler.Handlers) {
	scripts := h.Scripts

	g.GET("/", handler.Handle(scripts.Handler, scripts.Read, http.StatusOK))
	g.POST("/", handler.HandleWithParams(scripts.Handler, scripts.Create, http.StatusCreated))
	g.GET("/:id", handler.Handle(scripts.Handler, scripts.Read, http.StatusOK))
	g.PUT("/:id", handler.HandleWithParams(scripts.Handler, scripts.Update, http.StatusOK))
	g.DELETE("/:id", handler.HandleNoData(scripts.Handler, scripts.Delete, http.StatusOK))
}
