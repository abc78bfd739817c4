// Package sidecar reads and edits the per-item sidecar files of a flat
// reMarkable document store. Every item <id> is described by <id>.metadata
// (type, display name, parent, pinned flag) and, for documents, <id>.content
// (payload format). The package never enumerates the store itself; callers
// hand it a base directory and an identifier.
package sidecar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"remdex/internal/item"
)

// Sidecar file extensions, including the dot.
const (
	MetadataExt = ".metadata"
	ContentExt  = ".content"
)

// Wire values of the metadata "type" field.
const (
	typeDocument   = "DocumentType"
	typeCollection = "CollectionType"
)

// metadataFile is the subset of <id>.metadata that remdex consumes. The
// device writes more fields; they are ignored here and preserved by
// RewriteParent.
type metadataFile struct {
	Type   string      `json:"type"`
	Name   string      `json:"visibleName"`
	Parent item.Parent `json:"parent"`
	Pinned bool        `json:"pinned"`
}

// contentFile is the subset of <id>.content that remdex consumes.
type contentFile struct {
	FileType item.Format `json:"fileType"`
}

// Read parses the sidecar files of one item into a typed record.
// Missing sidecars yield an error wrapping ErrNotFound; malformed or
// schema-mismatched sidecars yield an error wrapping ErrParse.
func Read(base string, id item.ID) (item.Item, error) {
	var meta metadataFile
	if err := readSidecar(MetadataPath(base, id), &meta); err != nil {
		return item.Item{}, err
	}

	it := item.Item{
		ID:     id,
		Name:   meta.Name,
		Parent: meta.Parent,
		Pinned: meta.Pinned,
	}

	switch meta.Type {
	case typeCollection:
		it.Kind = item.KindDirectory
	case typeDocument:
		var content contentFile
		if err := readSidecar(ContentPath(base, id), &content); err != nil {
			return item.Item{}, err
		}

		it.Kind = item.KindDocument
		it.Format = content.FileType
	default:
		return item.Item{}, fmt.Errorf("%s: unknown item type %q: %w", MetadataPath(base, id), meta.Type, ErrParse)
	}

	return it, nil
}

// readSidecar reads one JSON sidecar file into dst, mapping the underlying
// failure onto the package error taxonomy.
func readSidecar(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return fmt.Errorf("read sidecar %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, ErrParse)
	}

	return nil
}

// MetadataPath returns the path of the metadata sidecar for id.
func MetadataPath(base string, id item.ID) string {
	return filepath.Join(base, id.String()+MetadataExt)
}

// ContentPath returns the path of the content sidecar for id.
func ContentPath(base string, id item.ID) string {
	return filepath.Join(base, id.String()+ContentExt)
}
