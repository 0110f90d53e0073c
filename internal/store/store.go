// Package store provides the persistent draft store: a file-backed JSON
// key-value namespace standing in for the browser's local storage. All
// component persistence goes through this one interface so serialization and
// corruption handling live in a single place.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Well-known storage keys.
const (
	KeyExperiences  = "starExperiences"
	KeyBuilderState = "starBuilderState"
	KeyBuilderData  = "starBuilderData"
	KeyPersonas     = "personas"
)

// VersionsKey returns the storage key for an experience's bullet history.
func VersionsKey(experienceID int64) string {
	return fmt.Sprintf("bulletVersions_%d", experienceID)
}

// Store is a file-backed JSON key-value store. One Store owns one directory;
// each key maps to a single file. Writes are atomic (temp file + rename) and
// serialized by an internal mutex, preserving last-write-wins ordering.
//
// A Store is owned by one logical session at a time; concurrent processes on
// the same directory may silently overwrite each other, which is accepted.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the value for key into dst. A missing key returns false with
// dst untouched. Corrupt data is recovered locally: it is logged and treated
// as missing, never propagated to the caller.
func (s *Store) Load(key string, dst any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[store] read error for %q, falling back to default: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[store] corrupt data for %q, falling back to default: %v", key, err)
		return false
	}
	return true
}

// Save writes the JSON encoding of v under key. The write is atomic from the
// caller's perspective: the value file is replaced in a single rename.
func (s *Store) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write value for %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %q: %w", key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace value for %q: %w", key, err)
	}
	return nil
}

// Clear removes the value for key. Clearing a missing key is a no-op.
func (s *Store) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear %q: %w", key, err)
	}
	return nil
}

// path maps a key to its backing file. Path separators are flattened so a
// key can never escape the store directory.
func (s *Store) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}
