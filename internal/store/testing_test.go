package store_test

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"remdex/internal/item"
	"remdex/internal/sidecar"
	"remdex/internal/store"
)

// fixture builds an on-disk document store for tests.
type fixture struct {
	t   *testing.T
	dir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	return &fixture{t: t, dir: t.TempDir()}
}

// open builds a rebuilt store over the fixture directory.
func (f *fixture) open() *store.Store {
	f.t.Helper()

	s := store.New(f.dir, slog.New(slog.DiscardHandler))
	require.NoError(f.t, s.Rebuild(f.t.Context()))

	return s
}

func (f *fixture) write(name, contents string) {
	f.t.Helper()

	err := os.WriteFile(filepath.Join(f.dir, name), []byte(contents), 0o600)
	require.NoError(f.t, err)
}

// document creates a notebook document and returns its identifier.
func (f *fixture) document(name, parent string, pinned bool) item.ID {
	f.t.Helper()

	id := uuid.New()
	f.write(id.String()+sidecar.MetadataExt, fmt.Sprintf(
		`{"type":"DocumentType","visibleName":%q,"parent":%q,"pinned":%t}`, name, parent, pinned))
	f.write(id.String()+sidecar.ContentExt, `{"fileType":"notebook"}`)

	return id
}

// collection creates a directory and returns its identifier.
func (f *fixture) collection(name, parent string, pinned bool) item.ID {
	f.t.Helper()

	id := uuid.New()
	f.write(id.String()+sidecar.MetadataExt, fmt.Sprintf(
		`{"type":"CollectionType","visibleName":%q,"parent":%q,"pinned":%t}`, name, parent, pinned))

	return id
}

func (f *fixture) remove(id item.ID, ext string) {
	f.t.Helper()

	require.NoError(f.t, os.Remove(filepath.Join(f.dir, id.String()+ext)))
}

// names projects items onto their display names for compact assertions.
func names(items []item.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}

	return out
}
