package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements Store on a local directory, used for LAN-only
// sessions where no bucket is available.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocal creates a blob store backed by a local directory
func NewLocal(dir, baseURL string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}

	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Put writes data to the directory and returns its serving path
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.baseURL + "/" + key, nil
}
