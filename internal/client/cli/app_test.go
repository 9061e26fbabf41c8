package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juralis/paperdrop/internal/client/config"
)

func newTestApp(t *testing.T, serverURL string) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerURL = serverURL
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "queue.db")
	cfg.UploadTimeout = 5 * time.Second

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func run(t *testing.T, app *App, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(app)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestEnqueuePendingSync(t *testing.T) {
	var uploads int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.WriteHeader(http.StatusOK)
			return
		}
		uploads++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "doc-1", "file_type": "image", "original_name": "note.jpg"})
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL)

	file := filepath.Join(t.TempDir(), "note.jpg")
	require.NoError(t, os.WriteFile(file, []byte("jpegbytes"), 0o600))

	out := run(t, app, "enqueue", file, "--author", "Mara")
	assert.Contains(t, out, "queued note.jpg")
	assert.Contains(t, out, "1 pending")

	out = run(t, app, "pending")
	assert.Contains(t, out, "note.jpg")
	assert.Contains(t, out, "inbox")

	out = run(t, app, "sync")
	assert.Contains(t, out, "sent 1, evicted 0, 0 remaining")
	assert.Equal(t, 1, uploads)

	out = run(t, app, "pending")
	assert.Contains(t, out, "queue is empty")
}

func TestSync_ServerDownKeepsQueue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	app := newTestApp(t, srv.URL)

	file := filepath.Join(t.TempDir(), "note.jpg")
	require.NoError(t, os.WriteFile(file, []byte("jpegbytes"), 0o600))

	run(t, app, "enqueue", file)
	out := run(t, app, "sync")
	assert.Contains(t, out, "sent 0, evicted 0, 1 remaining")

	out = run(t, app, "pending")
	assert.Contains(t, out, "note.jpg")
}
