package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juralis/paperdrop/internal/logging"
	"github.com/juralis/paperdrop/internal/server/repositories/documents"
	"github.com/juralis/paperdrop/internal/server/repositories/projects"
	"github.com/juralis/paperdrop/internal/server/services"
	"github.com/juralis/paperdrop/internal/server/storage/local"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	store, err := local.New(t.TempDir())
	require.NoError(t, err)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	docs := services.NewDocuments(documents.NewMemoryRepository(), projects.NewMemoryRepository(), store, logger)
	prj := services.NewProjects(projects.NewMemoryRepository())
	return NewRouter(docs, prj, opts)
}

// router whose document and project services share one project repository,
// so uploads can reference created projects.
func newSharedRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	store, err := local.New(t.TempDir())
	require.NoError(t, err)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	prjRepo := projects.NewMemoryRepository()
	docs := services.NewDocuments(documents.NewMemoryRepository(), prjRepo, store, logger)
	prj := services.NewProjects(prjRepo)
	return NewRouter(docs, prj, opts)
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, fileType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	hdr.Set("Content-Type", fileType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, Options{})
	w := doJSON(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadEndpoint(t *testing.T) {
	r := newTestRouter(t, Options{})

	body, ctype := multipartBody(t, map[string]string{"author_name": "Mara"}, "roof.jpg", "image/jpeg", []byte("jpegbytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	doc := decode[documentResponse](t, w)
	assert.Nil(t, doc.ProjectID)
	assert.Equal(t, "image", doc.FileType)
	assert.Equal(t, "roof.jpg", doc.OriginalName)
	require.NotNil(t, doc.AuthorName)
	assert.Equal(t, "Mara", *doc.AuthorName)
	assert.True(t, strings.HasPrefix(doc.FileURL, "/files/"), doc.FileURL)

	// the stored bytes are served back unchanged
	w = doJSON(r, http.MethodGet, doc.FileURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpegbytes", w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))

	// and the document is in the inbox
	w = doJSON(r, http.MethodGet, "/documents/inbox", nil)
	require.Equal(t, http.StatusOK, w.Code)
	inbox := decode[[]documentResponse](t, w)
	require.Len(t, inbox, 1)
	assert.Equal(t, doc.ID, inbox[0].ID)
}

func TestUploadEndpoint_SyncKeyReplay(t *testing.T) {
	r := newTestRouter(t, Options{})

	send := func() *httptest.ResponseRecorder {
		body, ctype := multipartBody(t, nil, "roof.jpg", "image/jpeg", []byte("jpegbytes"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ctype)
		req.Header.Set("X-Sync-Key", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	require.Equal(t, http.StatusCreated, first.Code)
	second := send()
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, decode[documentResponse](t, first).ID, decode[documentResponse](t, second).ID)
}

func TestUploadEndpoint_MissingFilePart(t *testing.T) {
	r := newTestRouter(t, Options{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("author_name", "Mara"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decode[errorResponse](t, rec).Error)
}

func TestUploadEndpoint_PayloadTooLarge(t *testing.T) {
	r := newTestRouter(t, Options{MaxUploadBytes: 256})

	body, ctype := multipartBody(t, nil, "big.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "payload_too_large", decode[errorResponse](t, w).Error)
}

func TestUploadEndpoint_UnknownProject(t *testing.T) {
	r := newTestRouter(t, Options{})

	body, ctype := multipartBody(t, map[string]string{"project_id": "ghost"}, "a.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectLifecycle(t *testing.T) {
	r := newSharedRouter(t, Options{})

	w := doJSON(r, http.MethodPost, "/projects", map[string]string{"name": "Barn"})
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[projectResponse](t, w)
	assert.Equal(t, "Barn", p.Name)
	assert.Equal(t, "ACTIVE", p.Status)

	w = doJSON(r, http.MethodGet, "/projects/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPatch, "/projects/"+p.ID+"/status", map[string]string{"status": "archived"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ARCHIVED", decode[projectResponse](t, w).Status)

	w = doJSON(r, http.MethodGet, "/projects?status=archived", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]projectResponse](t, w), 1)

	w = doJSON(r, http.MethodPost, "/projects", map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/projects/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[errorResponse](t, w).Error)
}

func TestAssignEndpoints(t *testing.T) {
	r := newSharedRouter(t, Options{})

	w := doJSON(r, http.MethodPost, "/projects", map[string]string{"name": "Barn"})
	require.Equal(t, http.StatusCreated, w.Code)
	project := decode[projectResponse](t, w)

	body, ctype := multipartBody(t, nil, "roof.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	doc := decode[documentResponse](t, rec)

	// inbox -> project
	w = doJSON(r, http.MethodPatch, "/documents/"+doc.ID+"/assign", map[string]any{"project_id": project.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assigned := decode[documentResponse](t, w)
	require.NotNil(t, assigned.ProjectID)
	assert.Equal(t, project.ID, *assigned.ProjectID)

	w = doJSON(r, http.MethodGet, "/projects/"+project.ID+"/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]documentResponse](t, w), 1)

	w = doJSON(r, http.MethodGet, "/documents/inbox", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]documentResponse](t, w))

	// back to the inbox
	w = doJSON(r, http.MethodPatch, "/documents/"+doc.ID+"/assign", map[string]any{"project_id": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[documentResponse](t, w).ProjectID)

	// delete
	w = doJSON(r, http.MethodDelete, "/documents/"+doc.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodGet, "/documents/"+doc.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBatchAssignEndpoint(t *testing.T) {
	r := newSharedRouter(t, Options{})

	w := doJSON(r, http.MethodPost, "/projects", map[string]string{"name": "Barn"})
	project := decode[projectResponse](t, w)

	var ids []string
	for range 3 {
		body, ctype := multipartBody(t, nil, "a.jpg", "image/jpeg", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ctype)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[documentResponse](t, rec).ID)
	}

	w = doJSON(r, http.MethodPatch, "/documents/batch-assign", map[string]any{
		"document_ids": ids, "project_id": project.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]documentResponse](t, w), 3)

	w = doJSON(r, http.MethodPatch, "/documents/batch-assign", map[string]any{
		"document_ids": []string{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileEndpoint_TraversalRejected(t *testing.T) {
	r := newTestRouter(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/files/..%2Fsecrets.txt", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/files/unknown.jpg", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := newTestRouter(t, Options{APIKey: "s3cret"})

	// health stays open for the reachability probe
	w := doJSON(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/documents/inbox", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/documents/inbox", nil)
	req.Header.Set("X-Api-Key", "s3cret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
