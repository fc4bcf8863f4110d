package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"filmix-backend/internal/model"
)

// Local keeps blobs as files in a single directory.
type Local struct {
	dir string
}

// NewLocal creates dir if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Save writes to a temporary file first so readers never see a partial photo.
func (l *Local) Save(_ context.Context, name string, data []byte, _ string) error {
	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close photo: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path(name)); err != nil {
		return fmt.Errorf("failed to store photo: %w", err)
	}
	return nil
}

func (l *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(l.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}

	// directories are never photos
	if info, err := f.Stat(); err != nil || info.IsDir() {
		f.Close()
		return nil, model.ErrPhotoNotFound
	}

	return f, nil
}

func (l *Local) Delete(_ context.Context, name string) error {
	err := os.Remove(l.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func (l *Local) path(name string) string {
	return filepath.Join(l.dir, filepath.Base(name))
}
