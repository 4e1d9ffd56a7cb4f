// Package service contains the business logic.
//
// It sits between the handler and repository layers: it validates request
// parameters, orchestrates repository calls, publishes change notifications
// and returns *errs.HTTPError values the global error handler can render.
package service

import (
	"github.com/deppfellow/scripts/internal/repository"
	"github.com/deppfellow/scripts/internal/server"
)

// Services is a container for all business services.
type Services struct {
	Scripts *ScriptService
}

// NewService wires each service to its repository and to the server's
// background job service, which publishes change notifications.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier ChangeNotifier = NopNotifier{}
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Scripts: NewScriptService(repos.Scripts, notifier),
	}, nil
}
