package services

import (
	"path"
	"strings"
	"time"

	"github.com/juralis/paperdrop/internal/server/models"
)

// imageExtensions is the extension fallback used when the declared MIME type
// says nothing useful.
var imageExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "heic": {}, "heif": {},
}

// ClassifyFileType buckets an upload into image/pdf/other based on the
// declared MIME type, with a filename-extension fallback. Unrecognized
// payloads are still accepted as "other".
func ClassifyFileType(contentType, originalName string) string {
	mime := contentType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(strings.ToLower(mime))

	switch {
	case strings.HasPrefix(mime, "image/"):
		return models.FileTypeImage
	case mime == "application/pdf":
		return models.FileTypePDF
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(originalName), "."))
	if _, ok := imageExtensions[ext]; ok {
		return models.FileTypeImage
	}
	if ext == "pdf" {
		return models.FileTypePDF
	}
	return models.FileTypeOther
}

// DisplayName replaces generic camera filenames (image.jpg, IMG_1234.jpg and
// friends) with a readable timestamped name; anything else passes through.
func DisplayName(raw string, now time.Time) string {
	if raw == "" || isGenericName(raw) {
		return "Photo " + now.Format("02-01-2006 15:04")
	}
	return raw
}

func isGenericName(name string) bool {
	lower := strings.ToLower(name)
	switch lower {
	case "image.jpg", "image.jpeg", "image.png", "photo.jpg", "photo.jpeg", "blob", "unknown":
		return true
	}
	return strings.HasPrefix(lower, "img_") ||
		strings.HasPrefix(lower, "dsc") ||
		strings.HasPrefix(lower, "photo_")
}
