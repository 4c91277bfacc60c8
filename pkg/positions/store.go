// Package positions persists card and region coordinates between runs.
//
// The persisted state is one map under a fixed storage key: record ids (or
// "_cat_"+regionName for regions) to {x, y, pinned?} entries. Two backends
// are provided:
//   - FileStore: a JSON file in the user config directory, for CLI use
//   - RedisStore: a single Redis key, for shared or remote setups
//
// Restoration is attempted at the start of every layout rebuild; malformed or
// absent data is treated as "no saved positions" rather than an error. Saves
// are debounced through Saver: two seconds after the last mutating
// interaction, implemented as a cancel-and-reschedule timer.
package positions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// StorageKey is the fixed key the position map is stored under.
const StorageKey = "orbitmap:positions"

// Store persists the position map.
type Store interface {
	// Load returns the saved position map. Absent or corrupted data yields
	// an empty map and no error; errors are reserved for backend failures
	// (e.g. an unreachable server).
	Load(ctx context.Context) (map[string]model.PersistedEntry, error)

	// Save replaces the position map.
	Save(ctx context.Context, entries map[string]model.PersistedEntry) error

	// Clear removes all saved positions.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// snapshot is the serialized envelope. The id and timestamp identify one
// save for debugging; only Entries matters for restoration.
type snapshot struct {
	ID      string                          `json:"id" bson:"id"`
	SavedAt time.Time                       `json:"saved_at" bson:"saved_at"`
	Entries map[string]model.PersistedEntry `json:"entries" bson:"entries"`
}

func newSnapshot(entries map[string]model.PersistedEntry) snapshot {
	return snapshot{
		ID:      uuid.NewString(),
		SavedAt: time.Now().UTC(),
		Entries: entries,
	}
}
