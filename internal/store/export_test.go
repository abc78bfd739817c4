package store

import (
	"context"
	"time"

	"remdex/internal/item"
)

// SetReadFunc swaps the sidecar read function so tests can count and fail
// disk reads deterministically.
func (s *Store) SetReadFunc(fn func(base string, id item.ID) (item.Item, error)) {
	s.read = fn
}

// PutItem inserts an item directly, bypassing disk.
func (s *Store) PutItem(it item.Item) {
	s.items.put(it)
}

// HasItem reports whether an identifier is currently indexed.
func (s *Store) HasItem(id item.ID) bool {
	_, ok := s.items.get(id)

	return ok
}

// TestResolve exposes path resolution.
var TestResolve = (*Store).resolve

// ApplyPending exposes one debounce-window flush.
func (s *Store) ApplyPending(ctx context.Context, toDelete, toUpdate map[item.ID]struct{}) {
	s.applyPending(ctx, toDelete, toUpdate)
}

// RunDebounceLoop runs the debounce loop against a test-owned change feed,
// without a live fsnotify session. It returns when the feed is closed or
// ctx is cancelled.
func (s *Store) RunDebounceLoop(ctx context.Context, changes <-chan Change, interval time.Duration) {
	internal := make(chan change, changeBuffer)

	go func() {
		defer close(internal)

		for c := range changes {
			internal <- change{id: c.ID, remove: c.Remove}
		}
	}()

	s.debounceLoop(ctx, internal, interval)
}

// Change is the exported shape of a classified notification for tests.
type Change struct {
	ID     item.ID
	Remove bool
}
