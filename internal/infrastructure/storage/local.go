package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps images as files in one directory
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory when missing
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid upload directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: abs}, nil
}

// Save writes the image, replacing an existing file of the same name
func (s *LocalStore) Save(_ context.Context, name string, data []byte, _ string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

// Delete removes the image. Missing files are not an error.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// Locate returns the file path of an existing image
func (s *LocalStore) Locate(_ context.Context, name string) (Location, error) {
	name, err := cleanName(name)
	if err != nil {
		return Location{}, err
	}
	p := filepath.Join(s.dir, name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return Location{}, ErrNotFound
	}
	return Location{Path: p}, nil
}

// Dir returns the absolute upload directory
func (s *LocalStore) Dir() string {
	return s.dir
}

var _ Store = (*LocalStore)(nil)
