// Package store maintains a live, queryable index over a flat reMarkable
// document store. The index maps identifiers to typed items, presents the
// flat store as a navigable hierarchy, and stays synchronized with on-disk
// changes through a debounced filesystem watcher.
//
// The index is the only mutable state in the package and is safe for
// concurrent use: queries, the watcher's refresh loop, and rebuilds may
// all run at once.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"remdex/internal/item"
	"remdex/internal/sidecar"
)

// Reserved virtual directory names. TrashName doubles as the wire-adjacent
// spelling used in parent-chain verification; PinnedName is a pure virtual
// view that exists nowhere on disk.
const (
	TrashName  = "Trash"
	PinnedName = "Favorites"
)

// readConcurrency bounds sidecar-read fan-out during rebuilds and debounce
// flushes so a large store cannot exhaust file descriptors.
const readConcurrency = 16

// readFunc reads one item's sidecars; swapped out in tests.
type readFunc func(base string, id item.ID) (item.Item, error)

// Store is the live index. The zero value is not usable; construct with New.
type Store struct {
	base  string
	log   *slog.Logger
	items *shardedMap
	read  readFunc
}

// New returns an empty index over the document store rooted at base.
// A nil logger discards all output. Call Rebuild to populate the index.
func New(base string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Store{
		base:  base,
		log:   log,
		items: newShardedMap(),
		read:  sidecar.Read,
	}
}

// Rebuild enumerates the base directory and replaces the entire index
// contents with the items read from it. Items whose sidecars cannot be
// read are logged and skipped; a partial store still yields a serving
// index. Rebuild is idempotent against an unchanged store.
func (s *Store) Rebuild(ctx context.Context) error {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return fmt.Errorf("rebuild: read document directory: %w", err)
	}

	var (
		mu    sync.Mutex
		fresh []item.Item
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, sidecar.MetadataExt) {
			continue
		}

		id, ok := sidecar.ClassifyPath(name)
		if !ok {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			it, err := s.read(s.base, id)
			if err != nil {
				s.log.Warn("skipping unreadable item", "id", id, "err", err)

				return nil
			}

			mu.Lock()
			fresh = append(fresh, it)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	s.items.replaceAll(fresh)
	s.log.Info("index rebuilt", "dir", s.base, "items", len(fresh))

	return nil
}

// List returns the children of the directory at path, sorted by name.
// The root (empty path or "/") lists items whose parent is the store root.
// The reserved names TrashName and PinnedName select the corresponding
// virtual views. Listing a document is an error.
func (s *Store) List(path string) ([]item.Item, error) {
	switch cleanPath(path) {
	case "":
		return s.childrenOf(item.RootParent()), nil
	case TrashName:
		return s.Trash(), nil
	case PinnedName:
		return s.Pinned(), nil
	}

	id, err := s.resolve(path)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", path, err)
	}

	if it, ok := s.items.get(id); ok && !it.IsDir() {
		return nil, fmt.Errorf("list %q: %w", path, ErrNotDirectory)
	}

	return s.childrenOf(item.DirectoryParent(id)), nil
}

// Pinned returns every pinned item, regardless of its real location.
func (s *Store) Pinned() []item.Item {
	return s.filter(func(it item.Item) bool { return it.Pinned })
}

// Trash returns every item whose parent is the trash.
func (s *Store) Trash() []item.Item {
	return s.childrenOf(item.TrashParent())
}

// Items returns a point-in-time snapshot of the whole index, sorted by
// name. The snapshot is a copy; mutating it does not affect the index.
func (s *Store) Items() []item.Item {
	return s.sorted(s.items.snapshot())
}

// Len returns the number of indexed items.
func (s *Store) Len() int { return s.items.len() }

func (s *Store) childrenOf(parent item.Parent) []item.Item {
	return s.filter(func(it item.Item) bool { return it.Parent == parent })
}

func (s *Store) filter(keep func(item.Item) bool) []item.Item {
	var out []item.Item

	for _, it := range s.items.snapshot() {
		if keep(it) {
			out = append(out, it)
		}
	}

	return s.sorted(out)
}

// sorted orders items by name, then identifier for equal names, so query
// results are stable across map iteration order.
func (s *Store) sorted(items []item.Item) []item.Item {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}

		return items[i].ID.String() < items[j].ID.String()
	})

	return items
}
