// Package db wires the server's repositories to a concrete backend and
// runs schema migrations.
package db

import (
	"context"
	"database/sql"

	"github.com/juralis/paperdrop/internal/server/repositories/documents"
	"github.com/juralis/paperdrop/internal/server/repositories/projects"
)

// RepositoryManager owns the database handle and hands out repositories.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Documents() documents.Repository
	Projects() projects.Repository
}
