package handler

import (
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/scripts/internal/errs"
	"github.com/deppfellow/scripts/internal/middleware"
	"github.com/deppfellow/scripts/internal/model"
	"github.com/deppfellow/scripts/internal/server"
	"github.com/deppfellow/scripts/internal/service"
	"github.com/deppfellow/scripts/internal/validation"
)

// digits is the only shape of :id a route accepts.
var digits = regexp.MustCompile(`^[0-9]+$`)

// ScriptHandler exposes ScriptService over HTTP.
type ScriptHandler struct {
	Handler
	scripts *service.ScriptService
}

func NewScriptHandler(s *server.Server, scripts *service.ScriptService) *ScriptHandler {
	return &ScriptHandler{
		Handler: NewHandler(s),
		scripts: scripts,
	}
}

// Read lists every script when the route declares no :id and returns a
// single script otherwise.
func (h *ScriptHandler) Read(c echo.Context) (any, error) {
	if len(c.ParamNames()) == 0 {
		return h.scripts.List(c.Request().Context())
	}

	id, err := scriptID(c)
	if err != nil {
		return nil, err
	}
	return h.scripts.Get(c.Request().Context(), id)
}

func (h *ScriptHandler) Create(c echo.Context, params validation.Params) (*model.Script, error) {
	return h.scripts.Create(c.Request().Context(), params)
}

func (h *ScriptHandler) Update(c echo.Context, params validation.Params) (*model.Script, error) {
	id, err := scriptID(c)
	if err != nil {
		return nil, err
	}
	return h.scripts.Update(c.Request().Context(), id, params)
}

func (h *ScriptHandler) Delete(c echo.Context) error {
	id, err := scriptID(c)
	if err != nil {
		return err
	}
	return h.scripts.Delete(c.Request().Context(), id)
}

// scriptID reads the :id path parameter. An empty value yields 0, which
// the service rejects as a missing argument; anything that is not a
// base-10 int64 does not match the route.
func scriptID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	if raw == "" {
		return 0, nil
	}

	routeNotFound := errs.NewNotFoundError(middleware.MsgRouteNotFound, false, nil)
	if !digits.MatchString(raw) {
		return 0, routeNotFound
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, routeNotFound.WithCause(err)
	}
	return id, nil
}
