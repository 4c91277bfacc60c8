package positions

import (
	"context"
	"sync"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// MemStore is an in-memory store for tests and for running without
// persistence.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]model.PersistedEntry
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: map[string]model.PersistedEntry{}}
}

func (s *MemStore) Load(ctx context.Context) (map[string]model.PersistedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.PersistedEntry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

func (s *MemStore) Save(ctx context.Context, entries map[string]model.PersistedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]model.PersistedEntry, len(entries))
	for k, v := range entries {
		s.entries[k] = v
	}
	return nil
}

func (s *MemStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]model.PersistedEntry{}
	return nil
}

func (s *MemStore) Close() error { return nil }
