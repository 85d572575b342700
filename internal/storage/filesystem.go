package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileStore persists objects on the local filesystem under a base path.
// Locators are relative keys, optionally prefixed with "file://". Keys are
// sanitized so a locator can never escape the storage root.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath, creating the
// directory if needed.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string { return s.basePath }

// FetchBytes reads the object at the given key.
func (s *FileStore) FetchBytes(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(locator)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, locator)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", locator, err)
	}
	return data, nil
}

// FetchText reads the object at the given key as a string.
func (s *FileStore) FetchText(ctx context.Context, locator string) (string, error) {
	data, err := s.FetchBytes(ctx, locator)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// StoreBytes writes data under folder/filename and returns the stored
// object's locator. The content type is recorded by extension only; the
// filesystem store has no metadata side channel.
func (s *FileStore) StoreBytes(ctx context.Context, data []byte, folder, filename, _ string) (StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return StoredObject{}, err
	}
	key, err := sanitizeKey(path.Join(folder, filename))
	if err != nil {
		return StoredObject{}, err
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return StoredObject{}, fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return StoredObject{}, fmt.Errorf("storage: write %q: %w", key, err)
	}
	return StoredObject{
		Location:       key,
		PublicLocation: full,
		ByteSize:       int64(len(data)),
	}, nil
}

func (s *FileStore) resolve(locator string) (string, error) {
	locator = strings.TrimPrefix(locator, "file://")
	key, err := sanitizeKey(locator)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(key)), nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyLocator
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return cleaned, nil
}
