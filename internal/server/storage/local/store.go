// Package local implements the file store on the local filesystem.
package local

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/juralis/paperdrop/internal/filex"
)

// Store writes uploaded files into a single flat directory.
type Store struct {
	root string
}

// New creates a local store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("init file store: %w", err)
	}
	return &Store{root: root}, nil
}

// Save streams r into a new file. O_EXCL surfaces naming collisions as
// fs.ErrExist so the caller can regenerate the name. A partial file left by a
// failed write is removed before returning.
func (s *Store) Save(ctx context.Context, storedName string, r io.Reader) (int64, error) {
	path, err := s.resolve(storedName)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", storedName, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("close %s: %w", storedName, err)
	}
	return written, nil
}

func (s *Store) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	path, err := s.resolve(storedName)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *Store) Remove(ctx context.Context, storedName string) error {
	path, err := s.resolve(storedName)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// resolve maps a stored name to an absolute path, rejecting anything that
// would escape the store root.
func (s *Store) resolve(storedName string) (string, error) {
	if storedName == "" || storedName != filepath.Base(storedName) ||
		strings.HasPrefix(storedName, ".") {
		return "", fmt.Errorf("invalid stored name %q: %w", storedName, fs.ErrInvalid)
	}
	return filepath.Join(s.root, storedName), nil
}
