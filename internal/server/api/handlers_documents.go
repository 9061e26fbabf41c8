package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/server/models"
	"github.com/juralis/paperdrop/internal/server/services"
)

// metadata form values are small; anything longer is a client error.
const maxFieldBytes = 1 << 10

// DocumentHandler exposes the intake endpoint and the document workflow.
type DocumentHandler struct {
	docs     *services.Documents
	maxBytes int64
}

func NewDocumentHandler(docs *services.Documents, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{docs: docs, maxBytes: maxBytes}
}

func (h *DocumentHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/upload", h.upload)
	r.GET("/documents/inbox", h.inbox)
	r.GET("/documents/:id", h.get)
	r.DELETE("/documents/:id", h.delete)
	r.PATCH("/documents/:id/assign", h.assign)
	r.PATCH("/documents/batch-assign", h.batchAssign)
}

type documentResponse struct {
	ID           string    `json:"id"`
	ProjectID    *string   `json:"project_id"`
	FileType     string    `json:"file_type"`
	OriginalName string    `json:"original_name"`
	AuthorName   *string   `json:"author_name,omitempty"`
	FileURL      string    `json:"file_url"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func toDocumentResponse(d *models.Document) documentResponse {
	return documentResponse{
		ID:           d.ID,
		ProjectID:    d.ProjectID,
		FileType:     d.FileType,
		OriginalName: d.OriginalName,
		AuthorName:   d.AuthorName,
		FileURL:      "/files/" + d.StoredName,
		UploadedAt:   d.UploadedAt,
	}
}

func toDocumentResponses(docs []*models.Document) []documentResponse {
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return out
}

// upload consumes a multipart request part by part, handing the file part's
// reader straight to the service so the payload is never buffered whole.
// Metadata fields (project_id, author_name) must precede the file part.
func (h *DocumentHandler) upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	mr, err := c.Request.MultipartReader()
	if err != nil {
		writeError(c, fmt.Errorf("expected multipart request: %w", common.ErrorValidation))
		return
	}

	in := services.UploadInput{SyncKey: c.GetHeader("X-Sync-Key")}
	var result *services.UploadResult

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			writeError(c, err)
			return
		}

		switch part.FormName() {
		case "project_id":
			v, err := readField(part)
			if err != nil {
				writeError(c, err)
				return
			}
			if v != "" {
				in.ProjectID = &v
			}
		case "author_name":
			v, err := readField(part)
			if err != nil {
				writeError(c, err)
				return
			}
			if v != "" {
				in.AuthorName = &v
			}
		case "file":
			in.OriginalName = part.FileName()
			in.ContentType = part.Header.Get("Content-Type")
			in.Body = part
			result, err = h.docs.Upload(c.Request.Context(), in)
			part.Close()
			if err != nil {
				writeError(c, err)
				return
			}
		default:
			part.Close()
		}
	}

	if result == nil {
		writeError(c, fmt.Errorf("missing file part: %w", common.ErrorValidation))
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	c.JSON(status, toDocumentResponse(result.Document))
}

func readField(part io.ReadCloser) (string, error) {
	defer part.Close()
	b, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (h *DocumentHandler) inbox(c *gin.Context) {
	docs, err := h.docs.Inbox(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponses(docs))
}

func (h *DocumentHandler) get(c *gin.Context) {
	doc, err := h.docs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

func (h *DocumentHandler) delete(c *gin.Context) {
	if err := h.docs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignRequest struct {
	ProjectID *string `json:"project_id"`
}

func (h *DocumentHandler) assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("invalid body: %w", common.ErrorValidation))
		return
	}
	doc, err := h.docs.Assign(c.Request.Context(), c.Param("id"), req.ProjectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

type batchAssignRequest struct {
	DocumentIDs []string `json:"document_ids"`
	ProjectID   *string  `json:"project_id"`
}

func (h *DocumentHandler) batchAssign(c *gin.Context) {
	var req batchAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("invalid body: %w", common.ErrorValidation))
		return
	}
	docs, err := h.docs.BatchAssign(c.Request.Context(), req.DocumentIDs, req.ProjectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponses(docs))
}
