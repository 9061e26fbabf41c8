package models

import "time"

// File type categories stored in documents.file_type.
const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
	FileTypeOther = "other"
)

// Document is an uploaded file tracked by the server.
//
// A document is in one of two workflow states:
//   - Inbox: ProjectID is nil, waiting to be organized;
//   - Assigned: ProjectID references a project.
//
// Rows are immutable after creation except for ProjectID and deletion.
type Document struct {
	ID           string
	ProjectID    *string
	StoredName   string
	FileType     string
	OriginalName string
	AuthorName   *string
	SyncKey      *string
	UploadedAt   time.Time
}

// InInbox reports whether the document is unassigned.
func (d *Document) InInbox() bool {
	return d.ProjectID == nil
}
