package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"remdex/internal/item"
	"remdex/internal/store"
)

// Contract: a move writes through to disk; a later rebuild of a fresh
// store observes the new parent.
func Test_Move_Writes_Through_To_Disk(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.collection("Books", "", false)
	f.document("Alice", "", false)

	s := f.open()

	require.NoError(t, s.Move("/Alice", "/Books"))

	got, err := s.List("/Books")
	require.NoError(t, err)
	require.Equal(t, []string{"Alice"}, names(got))

	// A completely fresh index must agree, proving the sidecar changed.
	fresh := f.open()

	got, err = fresh.List("/Books")
	require.NoError(t, err)
	require.Equal(t, []string{"Alice"}, names(got))

	root, err := fresh.List("")
	require.NoError(t, err)
	require.Equal(t, []string{"Books"}, names(root))
}

func Test_Move_Targets_Root_And_Trash_By_Reserved_Names(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	books := f.collection("Books", "", false)
	f.document("Alice", books.String(), false)

	s := f.open()

	require.NoError(t, s.Move("/Books/Alice", ""))

	root, err := s.List("")
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "Books"}, names(root))

	require.NoError(t, s.Move("/Alice", store.TrashName))
	require.Equal(t, []string{"Alice"}, names(s.Trash()))
}

func Test_Move_Touches_Only_The_Moved_Item(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.collection("Books", "", false)
	f.document("Alice", "", false)
	f.document("Bystander", "", true)

	s := f.open()
	before := s.Items()

	require.NoError(t, s.Move("/Alice", "/Books"))

	for _, it := range s.Items() {
		if it.Name == "Alice" {
			continue
		}

		require.Contains(t, before, it)
	}
}

func Test_Move_Fails_When_Paths_Do_Not_Resolve(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.collection("Books", "", false)
	f.document("Alice", "", false)

	s := f.open()

	require.ErrorIs(t, s.Move("/Nope", "/Books"), store.ErrNotFound)
	require.ErrorIs(t, s.Move("/Alice", "/Nope"), store.ErrNotFound)

	// Moving into a document is refused.
	f.document("Target Doc", "", false)
	require.NoError(t, s.Rebuild(t.Context()))
	require.ErrorIs(t, s.Move("/Alice", "/Target Doc"), store.ErrNotDirectory)
}

// A failed re-read after the write-through keeps the move successful; the
// index entry stays at its previous value until the watcher heals it.
func Test_Move_Tolerates_Failed_ReRead(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.collection("Books", "", false)
	id := f.document("Alice", "", false)

	s := f.open()
	s.SetReadFunc(func(string, item.ID) (item.Item, error) {
		return item.Item{}, errors.New("disk unplugged")
	})

	require.NoError(t, s.Move("/Alice", "/Books"))

	require.True(t, s.HasItem(id))

	// The stale entry still carries the old parent.
	root, err := s.List("")
	require.NoError(t, err)
	require.Contains(t, names(root), "Alice")
}
