// Package storage provides the stores for uploaded recipe images.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// publicPrefix is the URL prefix the router serves the media directory under.
const publicPrefix = "/media/"

// LocalStore keeps uploads on the local filesystem under a media directory.
type LocalStore struct {
	mediaDir string
}

// NewLocalStore creates a store rooted at mediaDir.
func NewLocalStore(mediaDir string) *LocalStore {
	return &LocalStore{mediaDir: mediaDir}
}

// Save writes the object under the media directory and returns the public
// path it is served from.
func (s *LocalStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	rel, err := s.safeRelPath(name)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return publicPrefix + filepath.ToSlash(rel), nil
}

// Delete removes a previously stored object by its public path. Unknown
// paths are ignored, the object is already gone.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	name, ok := strings.CutPrefix(path, publicPrefix)
	if !ok {
		return nil
	}
	rel, err := s.safeRelPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.mediaDir, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// safeRelPath rejects names that would escape the media directory.
func (s *LocalStore) safeRelPath(name string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(name))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return rel, nil
}
