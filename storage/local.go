package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance. A relative basePath
// is resolved against the working directory. The directory is created by
// the first Upload, never on the read path.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: abs,
	}, nil
}

// Upload stores a file locally
func (s *LocalStorage) Upload(ctx context.Context, key string, contentType string, data io.Reader) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	// Create directory structure
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // Clean up on error
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download retrieves a file from local storage
func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			if _, statErr := os.Stat(s.basePath); os.IsNotExist(statErr) {
				return nil, fmt.Errorf("storage directory %s does not exist (check STORAGE_LOCAL_PATH and the working directory)", s.basePath)
			}
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}
