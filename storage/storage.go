package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when an object does not exist
var ErrNotFound = errors.New("object not found")

// Storage interface for the static assets served by the page
type Storage interface {
	// Upload stores an object under key
	Upload(ctx context.Context, key string, contentType string, data io.Reader) error

	// Download retrieves an object by key
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	S3Prefix     string // Optional key prefix in the bucket
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// ConfigFromEnv reads the storage configuration from environment variables
func ConfigFromEnv() (StorageConfig, error) {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = string(StorageTypeLocal)
	}

	cfg := StorageConfig{
		Type: StorageType(storageType),
	}

	switch cfg.Type {
	case StorageTypeLocal:
		cfg.LocalPath = os.Getenv("STORAGE_LOCAL_PATH")
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./static"
		}

	case StorageTypeS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		cfg.S3Prefix = os.Getenv("AWS_S3_PREFIX")
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

		if cfg.S3Bucket == "" {
			return cfg, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}

	default:
		return cfg, fmt.Errorf("unknown storage type: %s", storageType)
	}

	return cfg, nil
}

// NewStorageFromEnv creates a storage instance from environment variables
func NewStorageFromEnv() (Storage, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewStorage(cfg)
}

// cleanKey normalizes an object key and rejects keys escaping the root
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid object key: %q", key)
		}
	}
	return cleaned, nil
}
