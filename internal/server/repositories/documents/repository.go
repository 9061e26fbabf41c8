package documents

import (
	"context"

	"github.com/juralis/paperdrop/internal/server/models"
)

// Repository describes persistence operations for Document rows.
type Repository interface {
	// Insert stores a new document row.
	Insert(ctx context.Context, doc *models.Document) error

	// GetByID returns a document or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetBySyncKey returns the document created for a client sync key, or
	// common.ErrorNotFound when the key has not been seen.
	GetBySyncKey(ctx context.Context, key string) (*models.Document, error)

	// ListInbox returns all documents with no project, newest first.
	ListInbox(ctx context.Context) ([]*models.Document, error)

	// ListByProject returns all documents assigned to a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]*models.Document, error)

	// SetProject assigns the document to a project, or moves it back to the
	// inbox when projectID is nil. Returns common.ErrorNotFound for unknown ids.
	SetProject(ctx context.Context, id string, projectID *string) error

	// SetProjectAll applies SetProject to several documents atomically: one
	// unknown id fails the whole batch and no document moves.
	SetProjectAll(ctx context.Context, ids []string, projectID *string) error

	// Delete removes the document row. Returns common.ErrorNotFound when no
	// row was deleted.
	Delete(ctx context.Context, id string) error
}
