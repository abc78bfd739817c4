package sidecar

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"remdex/internal/item"
)

// ClassifyPath reports the identifier encoded in a filesystem path: the
// file stem, when the extension is a sidecar extension and the stem parses
// as a UUID. Anything else - subdirectories, page data, thumbnails, partial
// downloads - is not classified.
//
// It is pure string work and safe to call on a notification-delivery
// goroutine.
func ClassifyPath(path string) (item.ID, bool) {
	ext := filepath.Ext(path)
	if ext != MetadataExt && ext != ContentExt {
		return item.ID{}, false
	}

	stem := strings.TrimSuffix(filepath.Base(path), ext)

	id, err := uuid.Parse(stem)
	if err != nil {
		return item.ID{}, false
	}

	return id, true
}
