// Package repository handles all interactions with the database.
//
// Repositories are table-scoped query objects. SQL is built with
// Masterminds/squirrel and executed over database/sql, abstracting
// SQL away from the service layer.
package repository

import (
	"github.com/deppfellow/scripts/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Scripts *ScriptRepository
}

// NewRepositories constructs the repository container over the server's
// database handle.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Scripts: NewScriptRepository(s.DB.SQL),
	}
}
