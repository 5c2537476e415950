// Package file implements ports.StateStore on the local filesystem, one
// JSON blob per key. Writes go through a temp file, fsync, and rename so a
// crash mid-write never leaves a torn value behind.
package file

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"flightdesk/pkg/domain"
)

const fileExt = ".json"

// Store implements ports.StateStore using a configured directory.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath. An empty basePath defaults to
// ".flightdesk/state".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".flightdesk", "state")
	}
	return &Store{BasePath: basePath}
}

// path maps a key to a file name. Keys contain "/" (conversation/slot), so
// they are escaped rather than treated as directories.
func (s *Store) path(key string) string {
	return filepath.Join(s.BasePath, url.PathEscape(key)+fileExt)
}

// Get reads the stored value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return data, nil
}

// Set persists one value atomically: temp file, fsync, rename.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("ensure state directory: %w", err)
	}

	destPath := s.path(key)

	// The temp file lives in the same directory so the rename stays on one
	// filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(value); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file into place: %w", err)
	}
	return nil
}

// SetMulti writes each value atomically in turn. The filesystem offers no
// multi-file transaction; per-key atomicity is the guarantee here.
func (s *Store) SetMulti(ctx context.Context, values map[string][]byte) error {
	for key, value := range values {
		if err := s.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the key's file. An absent file is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete state file: %w", err)
	}
	return nil
}

// List returns every stored key.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
