// Package uploads is the durable local queue of captured documents.
package uploads

import (
	"context"

	"github.com/juralis/paperdrop/internal/client/models"
)

// Repository describes the durable FIFO queue backing offline capture.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Enqueue appends one captured document to the queue.
	Enqueue(ctx context.Context, u *models.PendingUpload) error

	// ListPending returns all queued uploads in capture order.
	ListPending(ctx context.Context) ([]*models.PendingUpload, error)

	// Remove deletes one upload by its local id. Removing an id that is
	// already gone is not an error.
	Remove(ctx context.Context, localID int64) error

	// Count returns the number of queued uploads.
	Count(ctx context.Context) (int, error)
}
