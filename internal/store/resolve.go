package store

import (
	"fmt"

	"remdex/internal/item"
)

// resolve maps a virtual path to the identifier of the item it names.
//
// Candidates are every indexed item whose display name equals the final
// path segment. A unique name resolves immediately. Colliding names fall
// back to parent-chain verification: the first candidate whose actual
// parent chain spells out the path's parent segments wins. Collisions
// that verification cannot settle surface as ErrAmbiguousPath.
func (s *Store) resolve(path string) (item.ID, error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return item.ID{}, fmt.Errorf("resolve %q: %w", path, ErrNotFound)
	}

	name := segs[len(segs)-1]

	var candidates []item.Item

	for _, it := range s.items.snapshot() {
		if it.Name == name {
			candidates = append(candidates, it)
		}
	}

	switch len(candidates) {
	case 0:
		return item.ID{}, fmt.Errorf("resolve %q: %w", path, ErrNotFound)
	case 1:
		// Unique name, no verification needed. This is the common case
		// and keeps resolution a single index scan.
		return candidates[0].ID, nil
	}

	for _, cand := range candidates {
		if s.chainMatches(segs[:len(segs)-1], cand) {
			return cand.ID, nil
		}
	}

	return item.ID{}, fmt.Errorf("resolve %q: %d items named %q: %w", path, len(candidates), name, ErrAmbiguousPath)
}

// chainMatches verifies that cand's actual parent chain matches the given
// parent path segments. The walk follows directory references upward,
// consuming one segment per hop, and terminates at a root or trash parent:
//
//   - parent Directory(x): x must be indexed, be a directory, and carry the
//     final remaining segment as its name; the check then continues on x.
//   - parent Trash: the remaining path must be exactly the trash name.
//   - parent Root: no path segments may remain.
//
// Any other combination is a non-match. A live, externally mutated store
// can hold dangling or even cyclic parent references, so the walk keeps a
// visited set and treats a revisit as a non-match instead of spinning.
func (s *Store) chainMatches(parents []string, cand item.Item) bool {
	seen := make(map[item.ID]bool)
	cur := cand

	for {
		seen[cur.ID] = true

		dirID, ok := cur.Parent.Directory()
		if !ok {
			break
		}

		if len(parents) == 0 || seen[dirID] {
			return false
		}

		dir, found := s.items.get(dirID)
		if !found || !dir.IsDir() || dir.Name != parents[len(parents)-1] {
			return false
		}

		cur, parents = dir, parents[:len(parents)-1]
	}

	if cur.Parent.IsTrash() {
		return len(parents) == 1 && parents[0] == TrashName
	}

	return len(parents) == 0
}
