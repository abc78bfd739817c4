package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"remdex/internal/item"
	"remdex/internal/sidecar"
)

// defaultInterval is the debounce window between flushes of pending
// changes into the index.
const defaultInterval = 2 * time.Second

// changeBuffer sizes the classified-event channel. The delivery goroutine
// never blocks; an overflowing burst drops notifications, which at worst
// leaves the index stale until the next event or rebuild.
const changeBuffer = 256

// WatchConfig tunes a watch session.
type WatchConfig struct {
	// Interval is the debounce window. Zero or negative selects the
	// default of two seconds.
	Interval time.Duration
}

// change is one classified filesystem notification.
type change struct {
	id     item.ID
	remove bool
}

// Watch subscribes to filesystem notifications under the base directory
// and keeps the index synchronized until ctx is cancelled. It returns once
// the subscription is established; a setup failure returns an error
// wrapping ErrWatchSetup and leaves the last full index serving queries.
//
// Raw notifications are classified on the delivery goroutine (no disk
// I/O), debounced into per-identifier update and delete sets, and flushed
// every interval: deletions first, then re-reads. However many events an
// identifier produces within one window, it is read from disk at most
// once per flush.
func (s *Store) Watch(ctx context.Context, cfg WatchConfig) error {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatchSetup, err)
	}

	if err := w.Add(s.base); err != nil {
		_ = w.Close()

		return fmt.Errorf("%w: %s: %v", ErrWatchSetup, s.base, err)
	}

	// fsnotify watches are not recursive; cover the subdirectories that
	// exist now. The store keeps its sidecars flat, so directories that
	// appear later hold no classifiable paths.
	if entries, err := os.ReadDir(s.base); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			sub := filepath.Join(s.base, entry.Name())
			if err := w.Add(sub); err != nil {
				s.log.Warn("cannot watch subdirectory", "dir", sub, "err", err)
			}
		}
	}

	changes := make(chan change, changeBuffer)

	go s.forwardEvents(w, changes)
	go s.logWatchErrors(w)
	go s.debounceLoop(ctx, changes, interval)

	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()

	s.log.Info("watching document directory", "dir", s.base, "interval", interval)

	return nil
}

// forwardEvents classifies raw notifications and hands them to the
// debounce loop. It runs on the delivery side and must never block: the
// send is non-blocking and classification is pure string work.
func (s *Store) forwardEvents(w *fsnotify.Watcher, changes chan<- change) {
	defer close(changes)

	for ev := range w.Events {
		if ev.Op == fsnotify.Chmod {
			// Access-only, nothing to reindex.
			continue
		}

		id, ok := sidecar.ClassifyPath(ev.Name)
		if !ok {
			continue
		}

		c := change{id: id, remove: ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)}

		select {
		case changes <- c:
		default:
			s.log.Warn("dropping change notification", "id", id, "op", ev.Op)
		}
	}
}

func (s *Store) logWatchErrors(w *fsnotify.Watcher) {
	for err := range w.Errors {
		s.log.Warn("watch error", "err", err)
	}
}

// debounceLoop is the sole owner of the pending change sets. It
// accumulates classified events between ticks and applies one batch per
// tick. Events that arrive mid-flush wait in the channel and land in the
// next window.
func (s *Store) debounceLoop(ctx context.Context, changes <-chan change, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	toUpdate := make(map[item.ID]struct{})
	toDelete := make(map[item.ID]struct{})

	for {
		select {
		case <-ctx.Done():
			s.log.Info("watch session ended", "dir", s.base)

			return
		case c, ok := <-changes:
			if !ok {
				return
			}

			if c.remove {
				toDelete[c.id] = struct{}{}
			} else {
				toUpdate[c.id] = struct{}{}
			}
		case <-ticker.C:
			if len(toUpdate) == 0 && len(toDelete) == 0 {
				continue
			}

			s.applyPending(ctx, toDelete, toUpdate)

			toUpdate = make(map[item.ID]struct{})
			toDelete = make(map[item.ID]struct{})
		}
	}
}

// applyPending flushes one debounce window into the index: deletions
// first, then re-reads with bounded fan-out. An identifier marked both
// deleted and updated within the window is therefore present afterwards
// as long as its sidecars read back. A failed re-read leaves the previous
// entry untouched; it is never force-deleted.
func (s *Store) applyPending(ctx context.Context, toDelete, toUpdate map[item.ID]struct{}) {
	for id := range toDelete {
		s.items.delete(id)
		s.log.Debug("removed item", "id", id)
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)

	for id := range toUpdate {
		g.Go(func() error {
			it, err := s.read(s.base, id)
			if err != nil {
				s.log.Warn("could not refresh item", "id", id, "err", err)

				return nil
			}

			s.items.put(it)
			s.log.Debug("refreshed item", "id", id, "name", it.Name)

			return nil
		})
	}

	_ = g.Wait()
}
