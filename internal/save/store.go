package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the key-value port the engine persists through. Load reports
// ok=false when nothing has been saved yet.
type Store interface {
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
}

// MemoryStore keeps the save in memory. Useful for tests and ephemeral sessions.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns a store, optionally pre-seeded with data.
func NewMemoryStore(data []byte) *MemoryStore {
	m := &MemoryStore{}
	if data != nil {
		m.data = append([]byte(nil), data...)
	}
	return m
}

func (m *MemoryStore) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

func (m *MemoryStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

// FileStore keeps the save in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read save %s: %w", f.path, err)
	}
	return data, true, nil
}

// Save replaces the file atomically: write a temp file, then rename.
func (f *FileStore) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace save %s: %w", f.path, err)
	}
	return nil
}
