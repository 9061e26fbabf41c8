// Package services holds the server's business logic: the streaming intake
// pipeline and the inbox/assignment workflow.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/logging"
	"github.com/juralis/paperdrop/internal/server/models"
	"github.com/juralis/paperdrop/internal/server/repositories/documents"
	"github.com/juralis/paperdrop/internal/server/repositories/projects"
	"github.com/juralis/paperdrop/internal/server/storage"
)

// storedNameAttempts bounds suffix regeneration on naming collisions.
const storedNameAttempts = 3

// UploadInput carries one document submission into the intake pipeline.
// Body is streamed to the file store and never buffered whole.
type UploadInput struct {
	OriginalName string
	ContentType  string
	ProjectID    *string
	AuthorName   *string
	SyncKey      string
	Body         io.Reader
}

// UploadResult reports the stored document. Created is false when SyncKey
// matched an earlier upload and the existing document was returned instead.
type UploadResult struct {
	Document *models.Document
	Created  bool
}

// Documents implements the intake pipeline and the document workflow.
type Documents struct {
	docs     documents.Repository
	projects projects.Repository
	store    storage.FileStore
	logger   logging.Logger
	now      func() time.Time
}

// NewDocuments wires the document service.
func NewDocuments(docs documents.Repository, prj projects.Repository, store storage.FileStore, logger logging.Logger) *Documents {
	return &Documents{
		docs:     docs,
		projects: prj,
		store:    store,
		logger:   logger.With("component", "documents"),
		now:      time.Now,
	}
}

// Upload persists one submission: the payload is streamed to the file store
// under a freshly generated name, then the document row is inserted. If the
// insert fails the stored file is removed again, so a row never references a
// file that does not fully exist.
func (s *Documents) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.Body == nil {
		return nil, fmt.Errorf("missing file part: %w", common.ErrorValidation)
	}

	// replay of an already-acknowledged upload
	if in.SyncKey != "" {
		existing, err := s.docs.GetBySyncKey(ctx, in.SyncKey)
		if err == nil {
			return &UploadResult{Document: existing, Created: false}, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("sync key lookup: %w", err)
		}
	}

	if in.ProjectID != nil {
		ok, err := s.projects.Exists(ctx, *in.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("project lookup: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("project %q: %w", *in.ProjectID, common.ErrorValidation)
		}
	}

	now := s.now()
	storedName, size, err := s.saveWithFreshName(ctx, now, in)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:           uuid.NewString(),
		ProjectID:    in.ProjectID,
		StoredName:   storedName,
		FileType:     ClassifyFileType(in.ContentType, in.OriginalName),
		OriginalName: DisplayName(in.OriginalName, now),
		AuthorName:   in.AuthorName,
		UploadedAt:   now,
	}
	if in.SyncKey != "" {
		key := in.SyncKey
		doc.SyncKey = &key
	}

	if err := s.docs.Insert(ctx, doc); err != nil {
		// write-then-commit: roll the file back so no orphan bytes remain
		if rmErr := s.store.Remove(ctx, storedName); rmErr != nil {
			s.logger.Error(ctx, "failed to remove file after insert failure", "stored_name", storedName, "error", rmErr)
		}
		return nil, fmt.Errorf("insert document: %w: %w", common.ErrorStorage, err)
	}

	s.logger.Info(ctx, "document stored", "id", doc.ID, "stored_name", storedName, "size", size, "file_type", doc.FileType)
	return &UploadResult{Document: doc, Created: true}, nil
}

// saveWithFreshName streams the body under a generated name, regenerating the
// random suffix on the rare collision. The store fails a colliding Save
// before consuming the body, so retrying with the same reader is safe.
func (s *Documents) saveWithFreshName(ctx context.Context, now time.Time, in UploadInput) (string, int64, error) {
	var lastErr error
	for attempt := 0; attempt < storedNameAttempts; attempt++ {
		storedName := storage.NewStoredName(now, in.ContentType, in.OriginalName)
		size, err := s.store.Save(ctx, storedName, in.Body)
		if err == nil {
			return storedName, size, nil
		}
		if errors.Is(err, fs.ErrExist) {
			lastErr = err
			continue
		}
		return "", 0, fmt.Errorf("store payload: %w: %w", common.ErrorStorage, err)
	}
	return "", 0, fmt.Errorf("store payload: %w: %w", common.ErrorStorage, lastErr)
}

// Get returns one document by id.
func (s *Documents) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("document %q: %w", id, err)
	}
	return doc, nil
}

// Inbox lists all unassigned documents.
func (s *Documents) Inbox(ctx context.Context) ([]*models.Document, error) {
	return s.docs.ListInbox(ctx)
}

// ByProject lists all documents assigned to a project.
func (s *Documents) ByProject(ctx context.Context, projectID string) ([]*models.Document, error) {
	return s.docs.ListByProject(ctx, projectID)
}

// Assign moves a document onto a project, or back to the inbox when
// projectID is nil. Reassigning to the current project is a no-op.
func (s *Documents) Assign(ctx context.Context, id string, projectID *string) (*models.Document, error) {
	if projectID != nil {
		ok, err := s.projects.Exists(ctx, *projectID)
		if err != nil {
			return nil, fmt.Errorf("project lookup: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("project %q: %w", *projectID, common.ErrorNotFound)
		}
	}

	if err := s.docs.SetProject(ctx, id, projectID); err != nil {
		return nil, fmt.Errorf("document %q: %w", id, err)
	}
	return s.docs.GetByID(ctx, id)
}

// BatchAssign moves several documents at once. The batch is atomic: one
// unknown id fails it and no document moves.
func (s *Documents) BatchAssign(ctx context.Context, ids []string, projectID *string) ([]*models.Document, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("document_ids is empty: %w", common.ErrorValidation)
	}
	if projectID != nil {
		ok, err := s.projects.Exists(ctx, *projectID)
		if err != nil {
			return nil, fmt.Errorf("project lookup: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("project %q: %w", *projectID, common.ErrorNotFound)
		}
	}

	if err := s.docs.SetProjectAll(ctx, ids, projectID); err != nil {
		return nil, err
	}

	result := make([]*models.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.docs.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, nil
}

// Delete removes the document row and its stored file.
func (s *Documents) Delete(ctx context.Context, id string) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("document %q: %w", id, err)
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document %q: %w", id, err)
	}
	if err := s.store.Remove(ctx, doc.StoredName); err != nil {
		s.logger.Warn(ctx, "document row deleted but file removal failed", "stored_name", doc.StoredName, "error", err)
	}
	return nil
}

// Open returns the stored bytes for a document file, for the /files route.
func (s *Documents) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	return s.store.Open(ctx, storedName)
}
