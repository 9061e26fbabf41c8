package projects

import (
	"context"

	"github.com/juralis/paperdrop/internal/server/models"
)

// Repository describes persistence operations for Project rows.
type Repository interface {
	// Insert stores a new project.
	Insert(ctx context.Context, p *models.Project) error

	// GetByID returns a project or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// List returns projects, optionally filtered by status, newest first.
	List(ctx context.Context, status string) ([]*models.Project, error)

	// SetStatus updates the workflow status. Returns common.ErrorNotFound for
	// unknown ids.
	SetStatus(ctx context.Context, id string, status string) error

	// Exists reports whether a project with the given id exists.
	Exists(ctx context.Context, id string) (bool, error)
}
