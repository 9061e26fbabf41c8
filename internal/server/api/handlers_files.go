package api

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/server/services"
)

// FileHandler serves raw stored bytes.
type FileHandler struct {
	docs *services.Documents
}

func NewFileHandler(docs *services.Documents) *FileHandler {
	return &FileHandler{docs: docs}
}

func (h *FileHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/files/:filename", h.serve)
}

func (h *FileHandler) serve(c *gin.Context) {
	name := c.Param("filename")

	rc, err := h.docs.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			writeError(c, fmt.Errorf("file %q: %w", name, common.ErrorNotFound))
			return
		}
		writeError(c, fmt.Errorf("open file %q: %w: %w", name, common.ErrorStorage, err))
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		// headers are already out, nothing to do but log via gin's recovery
		_ = c.Error(err)
	}
}
