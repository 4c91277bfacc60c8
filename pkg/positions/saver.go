package positions

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// DefaultDebounce is how long the saver waits after the last mutating
// interaction before writing.
const DefaultDebounce = 2 * time.Second

// Saver debounces position saves: every Schedule cancels the pending timer
// and arms a new one. Saving is the only deferred operation in the system;
// everything else is synchronous within a tick.
type Saver struct {
	store  Store
	delay  time.Duration
	logger *log.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewSaver creates a saver writing to store after delay.
// If delay is zero, DefaultDebounce is used. If logger is nil, the default
// logger is used.
func NewSaver(store Store, delay time.Duration, logger *log.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Saver{store: store, delay: delay, logger: logger}
}

// Schedule arms (or re-arms) the save timer with the given entries, captured
// on the caller's goroutine. The timer goroutine only writes the captured map,
// never touching live layout state: any mutation after this call schedules
// again with a fresh snapshot, so the final write carries the final state.
// The caller hands over the map and must not mutate it afterward. Save
// failures are logged, never propagated: the next interaction simply
// schedules another attempt.
func (s *Saver) Schedule(entries map[string]model.PersistedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.store.Save(context.Background(), entries); err != nil {
			s.logger.Warn("position save failed", "err", err)
			return
		}
		s.logger.Debug("positions saved", "entries", len(entries))
	})
}

// Flush cancels any pending timer and saves the given entries immediately.
// Used on shutdown.
func (s *Saver) Flush(ctx context.Context, entries map[string]model.PersistedEntry) error {
	s.Stop()
	return s.store.Save(ctx, entries)
}

// Stop cancels any pending save.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
