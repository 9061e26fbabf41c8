// Package storage defines the file store the intake pipeline writes to and
// the naming scheme for stored files.
package storage

import (
	"context"
	"io"
)

// FileStore persists uploaded payloads under their stored name.
type FileStore interface {
	// Save streams r to storedName and returns the number of bytes written.
	// It fails with fs.ErrExist when the name is already taken, and never
	// leaves a partial file behind on error.
	Save(ctx context.Context, storedName string, r io.Reader) (int64, error)

	// Open returns the stored bytes for reading. Names resolving outside the
	// store root are rejected.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)

	// Remove deletes a stored file. Removing a missing file is an error.
	Remove(ctx context.Context, storedName string) error
}
