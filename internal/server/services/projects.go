package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/server/models"
	"github.com/juralis/paperdrop/internal/server/repositories/projects"
)

// Projects implements project CRUD around the document workflow.
type Projects struct {
	repo projects.Repository
	now  func() time.Time
}

func NewProjects(repo projects.Repository) *Projects {
	return &Projects{repo: repo, now: time.Now}
}

// Create registers a new active project.
func (s *Projects) Create(ctx context.Context, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required: %w", common.ErrorValidation)
	}

	p := &models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    models.ProjectStatusActive,
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// List returns projects, optionally filtered by status ("active"/"archived",
// case-insensitive).
func (s *Projects) List(ctx context.Context, statusFilter string) ([]*models.Project, error) {
	status := strings.ToUpper(strings.TrimSpace(statusFilter))
	if status != "" && !models.ValidProjectStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", statusFilter, common.ErrorValidation)
	}
	return s.repo.List(ctx, status)
}

// Get returns one project by id.
func (s *Projects) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", id, err)
	}
	return p, nil
}

// SetStatus moves a project between ACTIVE and ARCHIVED.
func (s *Projects) SetStatus(ctx context.Context, id string, status string) (*models.Project, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !models.ValidProjectStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, common.ErrorValidation)
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("project %q: %w", id, err)
	}
	return s.repo.GetByID(ctx, id)
}
