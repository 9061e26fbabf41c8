// Package client talks to the paperdrop server over HTTP and owns the local
// queue database.
package client

import (
	"context"

	"github.com/juralis/paperdrop/internal/client/models"
)

// DocumentInfo is the server's view of a stored document, decoded from the
// upload response.
type DocumentInfo struct {
	ID           string  `json:"id"`
	ProjectID    *string `json:"project_id"`
	FileType     string  `json:"file_type"`
	OriginalName string  `json:"original_name"`
	FileURL      string  `json:"file_url"`
}

// Client is the transport used by the sync engine.
type Client interface {
	// UploadDocument submits one queued capture. Errors wrap the transport
	// sentinels so common.ClassifyError can tell retryable from permanent.
	UploadDocument(ctx context.Context, u *models.PendingUpload) (*DocumentInfo, error)

	// Ping reports whether the server is reachable.
	Ping(ctx context.Context) error
}
