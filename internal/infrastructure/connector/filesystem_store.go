package connector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
)

// FilesystemStore is an implementation of ArtifactStore backed by a local
// directory.
type FilesystemStore struct {
	root   string
	logger logger.Logger
}

// NewFilesystemStore creates a FilesystemStore rooted at the given directory,
// creating it if necessary.
func NewFilesystemStore(root string, logger logger.Logger) (*FilesystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create root directory '%s': %w", root, err)
	}
	return &FilesystemStore{root: root, logger: logger}, nil
}

// resolve maps a storage key to a path under the root, rejecting keys that
// would escape it.
func (s *FilesystemStore) resolve(storageKey string) (string, error) {
	if storageKey == "" {
		return "", fmt.Errorf("storage key is required")
	}
	if filepath.IsAbs(storageKey) {
		return "", fmt.Errorf("storage key must be relative: %s", storageKey)
	}
	cleaned := filepath.Clean(filepath.FromSlash(storageKey))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("storage key escapes the store root: %s", storageKey)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Put stores the artifact bytes under the storage key. The write goes to a
// temp file first and is renamed into place so readers never see partial
// content.
func (s *FilesystemStore) Put(ctx context.Context, storageKey string, data []byte) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	s.logger.Info(fmt.Sprintf("stored artifact '%s' (%d bytes)", storageKey, len(data)))
	return nil
}

// Get retrieves the artifact bytes by storage key.
func (s *FilesystemStore) Get(ctx context.Context, storageKey string) ([]byte, error) {
	path, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: artifact '%s'", datasets.ErrNotFound, storageKey)
		}
		return nil, fmt.Errorf("failed to read artifact '%s': %w", storageKey, err)
	}
	return data, nil
}

// Delete removes the artifact at the storage key. Deleting a missing
// artifact is not an error.
func (s *FilesystemStore) Delete(ctx context.Context, storageKey string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete artifact '%s': %w", storageKey, err)
	}

	// Prune the per-dataset directory if it is now empty.
	_ = os.Remove(filepath.Dir(path))

	s.logger.Info(fmt.Sprintf("deleted artifact '%s'", storageKey))
	return nil
}
