package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// mimeExtensions maps declared content types to on-disk extensions.
var mimeExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"image/heic":      "heic",
	"image/heif":      "heif",
	"application/pdf": "pdf",
}

// NewStoredName generates a collision-resistant filename of the form
// YYYY-MM-DD_HH-MM-SS_xxxx.ext, where xxxx is a short random suffix.
// Uploads in the same second get distinct names through the suffix; the
// caller retries with a fresh name if the store still reports a collision.
func NewStoredName(now time.Time, contentType, originalName string) string {
	datePart := now.Format("2006-01-02_15-04-05")
	suffix := uuid.NewString()[:4]
	return fmt.Sprintf("%s_%s.%s", datePart, suffix, Extension(contentType, originalName))
}

// Extension derives the stored file's extension from the declared MIME type,
// falling back to the original filename's extension, then to "bin".
func Extension(contentType, originalName string) string {
	mime := contentType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(strings.ToLower(mime))
	if ext, ok := mimeExtensions[mime]; ok {
		return ext
	}
	if ext := strings.TrimPrefix(path.Ext(originalName), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "bin"
}
