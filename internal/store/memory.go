// internal/store/memory.go
//
// In-memory implementation of the snapshot Store interface.
// This is a lightweight persistence layer used for ephemeral sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Holds the single active-game snapshot as a value.
//   - Concurrency-safe via RWMutex (the core itself is sequential; the
//     guard only protects against careless callers).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/deejott23/binokel-count/internal/game"
)

// Store defines the persistence interface for the active-game snapshot.
// Implementations may be backed by memory (this package), SQLite, etc.
type Store interface {
	// Save persists the snapshot, replacing any previous one.
	Save(ctx context.Context, sn game.Snapshot) error

	// Load retrieves the last saved snapshot.
	// ok is false when nothing has been saved yet.
	Load(ctx context.Context) (sn game.Snapshot, ok bool, err error)

	// Clear removes any saved snapshot.
	Clear(ctx context.Context) error
}

// memory is an in-memory Store implementation.
type memory struct {
	mu    sync.RWMutex
	sn    game.Snapshot
	saved bool
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Save(ctx context.Context, sn game.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sn, m.saved = sn, true
	return nil
}

func (m *memory) Load(ctx context.Context) (game.Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sn, m.saved, nil
}

func (m *memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sn, m.saved = game.Snapshot{}, false
	return nil
}
