// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests into validation.Params, calls the
// service layer and writes the success envelope. Failures are
// returned to the global error handler untouched.
package handler

import (
	"github.com/deppfellow/scripts/internal/server"
	"github.com/deppfellow/scripts/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one value around.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Scripts *ScriptHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Scripts: NewScriptHandler(s, services.Scripts),
	}
}
