package documents

import (
	"context"
	"sort"
	"sync"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/server/models"
)

// MemoryRepository keeps documents in a map. It backs tests and the
// store=memory development mode.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]models.Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]models.Document)}
}

func (r *MemoryRepository) Insert(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = *doc
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) GetBySyncKey(ctx context.Context, key string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.docs {
		if d.SyncKey != nil && *d.SyncKey == key {
			d := d
			return &d, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ListInbox(ctx context.Context) ([]*models.Document, error) {
	return r.filter(func(d *models.Document) bool { return d.ProjectID == nil }), nil
}

func (r *MemoryRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Document, error) {
	return r.filter(func(d *models.Document) bool {
		return d.ProjectID != nil && *d.ProjectID == projectID
	}), nil
}

func (r *MemoryRepository) SetProject(ctx context.Context, id string, projectID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return common.ErrorNotFound
	}
	d.ProjectID = projectID
	r.docs[id] = d
	return nil
}

func (r *MemoryRepository) SetProjectAll(ctx context.Context, ids []string, projectID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// all-or-nothing: verify the batch before touching anything
	for _, id := range ids {
		if _, ok := r.docs[id]; !ok {
			return common.ErrorNotFound
		}
	}
	for _, id := range ids {
		d := r.docs[id]
		d.ProjectID = projectID
		r.docs[id] = d
	}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *MemoryRepository) filter(keep func(*models.Document) bool) []*models.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Document
	for _, d := range r.docs {
		d := d
		if keep(&d) {
			result = append(result, &d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UploadedAt.Equal(result[j].UploadedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result
}
