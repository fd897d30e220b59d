package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const tempFilePrefix = "loop-tmp-"

// Store persists a single JSON document to disk. All access is serialized
// through the store's mutex, and writes are atomic with respect to crashes:
// the document is written to a temp file in the same directory and renamed
// over the target, so readers never observe a partial write.
type Store struct {
	path       string
	defaultDoc map[string]interface{}
	mu         sync.Mutex
}

// New creates a store backed by path. If the file does not exist yet it is
// seeded with defaultDoc before the first read.
func New(path string, defaultDoc map[string]interface{}) (*Store, error) {
	if defaultDoc == nil {
		defaultDoc = map[string]interface{}{}
	}

	s := &Store{
		path:       path,
		defaultDoc: defaultDoc,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.writeLocked(defaultDoc); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Read returns the current document. Malformed on-disk JSON is an error, not
// something to silently recover from.
func (s *Store) Read() (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return cloneDocument(s.defaultDoc), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt document at %s: %w", s.path, err)
	}
	return doc, nil
}

// Write replaces the stored document.
func (s *Store) Write(doc map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(doc)
}

func (s *Store) writeLocked(doc map[string]interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return writeFileAtomic(s.path, data, 0o644)
}

// writeFileAtomic writes data to a temp file in the target's directory and
// renames it over the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

func cloneDocument(doc map[string]interface{}) map[string]interface{} {
	data, err := json.Marshal(doc)
	if err != nil {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}
