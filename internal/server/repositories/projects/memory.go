package projects

import (
	"context"
	"sort"
	"sync"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/server/models"
)

// MemoryRepository keeps projects in a map, for tests and store=memory mode.
type MemoryRepository struct {
	mu       sync.RWMutex
	projects map[string]models.Project
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{projects: make(map[string]models.Project)}
}

func (r *MemoryRepository) Insert(ctx context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = *p
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) List(ctx context.Context, status string) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Project
	for _, p := range r.projects {
		p := p
		if status == "" || p.Status == status {
			result = append(result, &p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) SetStatus(ctx context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Status = status
	r.projects[id] = p
	return nil
}

func (r *MemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.projects[id]
	return ok, nil
}
