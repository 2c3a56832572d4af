package kioskstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend persists the key/value map as a single JSON document on disk.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated document behind.
type FileBackend struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend opens (or creates) the JSON document at path. An unreadable
// or malformed document is treated as empty rather than failing the open;
// the first write replaces it.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("file backend requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	b := &FileBackend{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err == nil {
		var stored map[string]string
		if json.Unmarshal(data, &stored) == nil && stored != nil {
			b.values = stored
		}
	}

	return b, nil
}

func (b *FileBackend) Get(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok
}

func (b *FileBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return b.flushLocked()
}

func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.values[key]; !ok {
		return nil
	}
	delete(b.values, key)
	return b.flushLocked()
}

func (b *FileBackend) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	return keys
}

// flushLocked writes the current map to disk. Callers must hold b.mu.
func (b *FileBackend) flushLocked() error {
	data, err := json.MarshalIndent(b.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage document: %w", err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write storage document: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("failed to replace storage document: %w", err)
	}
	return nil
}
