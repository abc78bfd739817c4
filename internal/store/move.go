package store

import (
	"fmt"

	"remdex/internal/item"
	"remdex/internal/sidecar"
)

// Move relocates the item at itemPath into the directory at targetDirPath.
// The empty path (or "/") targets the store root, and the reserved trash
// name targets the trash. The new parent is written through to the
// metadata sidecar before the index entry is replaced; no other item is
// touched.
//
// A failed re-read after a successful write-through is logged, not
// returned: the stale entry is healed by the watcher's next flush.
func (s *Store) Move(itemPath, targetDirPath string) error {
	id, err := s.resolve(itemPath)
	if err != nil {
		return fmt.Errorf("move %q: %w", itemPath, err)
	}

	parent, err := s.resolveParent(targetDirPath)
	if err != nil {
		return fmt.Errorf("move %q to %q: %w", itemPath, targetDirPath, err)
	}

	if err := sidecar.RewriteParent(s.base, id, parent); err != nil {
		return fmt.Errorf("move %q: %w", itemPath, err)
	}

	it, err := s.read(s.base, id)
	if err != nil {
		s.log.Warn("moved item could not be re-read", "id", id, "err", err)

		return nil
	}

	s.items.put(it)
	s.log.Info("moved item", "id", id, "name", it.Name, "parent", parent)

	return nil
}

// resolveParent maps a move target path to a parent reference.
func (s *Store) resolveParent(path string) (item.Parent, error) {
	switch cleanPath(path) {
	case "":
		return item.RootParent(), nil
	case TrashName:
		return item.TrashParent(), nil
	}

	id, err := s.resolve(path)
	if err != nil {
		return item.Parent{}, err
	}

	if dir, ok := s.items.get(id); ok && !dir.IsDir() {
		return item.Parent{}, ErrNotDirectory
	}

	return item.DirectoryParent(id), nil
}
