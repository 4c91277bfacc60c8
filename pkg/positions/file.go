package positions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// FileStore keeps the position map in a JSON file.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a file-backed store in baseDir.
// If baseDir is empty, defaults to ~/.config/orbitmap/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "orbitmap")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create position dir: %w", err)
	}
	return &FileStore{path: filepath.Join(baseDir, "positions.json")}, nil
}

// Load reads the saved position map. A missing or unparseable file is an
// empty map: the caller recomputes a fresh layout either way.
func (s *FileStore) Load(ctx context.Context) (map[string]model.PersistedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]model.PersistedEntry{}, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.Entries == nil {
		return map[string]model.PersistedEntry{}, nil
	}
	return snap.Entries, nil
}

// Save writes the position map atomically (write temp, rename).
func (s *FileStore) Save(ctx context.Context, entries map[string]model.PersistedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(newSnapshot(entries), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace positions: %w", err)
	}
	return nil
}

// Clear removes the position file.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }
