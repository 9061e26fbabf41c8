package local

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAndOpen_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	payload := bytes.Repeat([]byte{0xAB, 0x01, 0x7F}, 1000)

	n, err := s.Save(ctx, "2026-01-02_10-11-12_ab3f.jpg", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)

	rc, err := s.Open(ctx, "2026-01-02_10-11-12_ab3f.jpg")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSave_Collision(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "a.jpg", strings.NewReader("one"))
	require.NoError(t, err)

	_, err = s.Save(ctx, "a.jpg", strings.NewReader("two"))
	require.ErrorIs(t, err, fs.ErrExist)

	// first write untouched
	rc, err := s.Open(ctx, "a.jpg")
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "one", string(got))
}

func TestSave_PartialWriteRemoved(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	broken := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(io.ErrUnexpectedEOF))
	_, err = s.Save(context.Background(), "broken.pdf", broken)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "broken.pdf"))
	assert.True(t, os.IsNotExist(statErr), "partial file must be deleted")
}

func TestOpen_RejectsTraversal(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, name := range []string{"../etc/passwd", "a/../../b", "/abs/path", ".hidden", ""} {
		_, err := s.Open(ctx, name)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}

func TestRemove_Missing(t *testing.T) {
	s := newStore(t)
	assert.Error(t, s.Remove(context.Background(), "never-written.jpg"))
}
