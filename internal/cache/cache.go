// ABOUTME: Thread-safe snapshot cache for the lead display projection.
// ABOUTME: Owned by the presentation layer; invalidated after every mutating call.

package cache

import (
	"context"
	"sync"

	"github.com/2389/leadbook/internal/view"
)

// RefreshFunc re-derives the projection from the store, typically
// Desk.ListProjection.
type RefreshFunc func(ctx context.Context) ([]view.Row, error)

// Snapshot caches the display projection between redraws so a consumer
// does not requery the store on every read. It holds no hidden state
// inside the core: the owner invalidates it after each mutating call and
// the next Rows call re-derives the projection.
type Snapshot struct {
	mu      sync.RWMutex
	rows    []view.Row
	fresh   bool
	refresh RefreshFunc
}

// New creates an empty, stale snapshot backed by the given refresh function.
func New(refresh RefreshFunc) *Snapshot {
	return &Snapshot{refresh: refresh}
}

// Rows returns the cached projection, re-deriving it first if the
// snapshot is stale. On refresh failure the cache stays stale and the
// error is returned.
func (s *Snapshot) Rows(ctx context.Context) ([]view.Row, error) {
	s.mu.RLock()
	if s.fresh {
		rows := s.rows
		s.mu.RUnlock()
		return rows, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	if s.fresh {
		return s.rows, nil
	}

	rows, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	s.rows = rows
	s.fresh = true
	return rows, nil
}

// Invalidate marks the snapshot stale. Call it after every mutating core
// operation; the cached rows remain readable until the next Rows call.
func (s *Snapshot) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fresh = false
}

// Fresh reports whether the snapshot currently reflects the store.
func (s *Snapshot) Fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fresh
}
