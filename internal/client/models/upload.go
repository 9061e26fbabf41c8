// Package models defines the client's local data structures.
package models

import "time"

// PendingUpload is one captured document waiting in the durable local queue.
// Payload holds the raw file bytes; SyncKey makes the eventual server-side
// submission idempotent across retries.
type PendingUpload struct {
	LocalID      int64
	SyncKey      string
	OriginalName string
	ContentType  string
	ProjectID    *string
	AuthorName   *string
	Payload      []byte
	EnqueuedAt   time.Time
}
