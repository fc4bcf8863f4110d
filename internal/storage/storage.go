// Package storage holds the blob backends behind profile photos.
package storage

import (
	"context"
	"fmt"
	"io"

	"filmix-backend/internal/config"
)

// Blobs stores opaque objects by flat name. Implementations must report a
// missing object from Open as model.ErrPhotoNotFound and treat Delete of a
// missing object as success.
type Blobs interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// New returns the backend selected by cfg.PhotoStorage.
func New(ctx context.Context, cfg *config.Config) (Blobs, error) {
	switch cfg.PhotoStorage {
	case config.StorageLocal:
		return NewLocal(cfg.UploadDir)
	case config.StorageR2:
		return NewR2(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown photo storage %q", cfg.PhotoStorage)
	}
}
