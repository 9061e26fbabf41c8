package db

import (
	"context"
	"database/sql"

	"github.com/juralis/paperdrop/internal/server/repositories/documents"
	"github.com/juralis/paperdrop/internal/server/repositories/projects"
)

// InMemoryRepositoryManager backs the repositories with process memory.
// Intended for development and tests only: nothing survives a restart.
type InMemoryRepositoryManager struct {
	documents documents.Repository
	projects  projects.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Documents() documents.Repository {
	return m.documents
}

func (m InMemoryRepositoryManager) Projects() projects.Repository {
	return m.projects
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		documents: documents.NewMemoryRepository(),
		projects:  projects.NewMemoryRepository(),
	}
}
