// Package storage provides the image store backends used for product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	catalogapp "github.com/swiftsupply/backend/internal/application/catalog"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrInvalidName is returned for names that could escape the store
var ErrInvalidName = errors.New("invalid image name")

// ErrNotFound is returned when an image does not exist
var ErrNotFound = errors.New("image not found")

// Location tells the HTTP layer how to serve an image: either a file on disk
// or a URL to redirect to.
type Location struct {
	Path        string
	RedirectURL string
}

// Store is an image store that can also locate images for serving
type Store interface {
	catalogapp.ImageStore
	Locate(ctx context.Context, name string) (Location, error)
}

// New returns the backend selected by cfg.Driver
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.UploadDir)
	case "s3":
		s, err := NewS3ImageStore(&cfg.S3, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// cleanName rejects names with path components. Stored names are flat
// "<uuid>.<ext>" keys.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	return name, nil
}
