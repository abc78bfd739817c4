// Package item defines the data model for entries in a reMarkable document
// store: documents and directories, identified by stable UUIDs and located
// by a parent reference (root, trash, or an enclosing directory).
//
// All types in this package are comparable value types so that callers can
// compare items and index snapshots with ==.
package item

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ID is the stable identifier the device assigns to an item. It never
// changes for the lifetime of the underlying files.
type ID = uuid.UUID

// Kind distinguishes directories from documents.
type Kind uint8

// Kind values.
const (
	KindDirectory Kind = iota
	KindDocument
)

// Format is the payload format of a document.
type Format uint8

// Format values. FormatNone is the zero value carried by directories.
const (
	FormatNone Format = iota
	FormatNotebook
	FormatPdf
	FormatEpub
)

// UnmarshalJSON parses the "fileType" wire values used by <id>.content.
func (f *Format) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("file format: %w", err)
	}

	switch s {
	case "notebook":
		*f = FormatNotebook
	case "pdf":
		*f = FormatPdf
	case "epub":
		*f = FormatEpub
	default:
		return fmt.Errorf("unknown file format %q", s)
	}

	return nil
}

// String returns the wire spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatNotebook:
		return "notebook"
	case FormatPdf:
		return "pdf"
	case FormatEpub:
		return "epub"
	default:
		return ""
	}
}

type parentKind uint8

const (
	parentRoot parentKind = iota
	parentTrash
	parentDirectory
)

// Parent is the logical location of an item: the store root, the trash, or
// a directory named by identifier. A directory reference may dangle; that
// only makes the item unresolvable by path, never an error by itself.
//
// The wire form (the "parent" field of <id>.metadata) is "" for root,
// "trash" for trash, and a UUID string for a directory.
type Parent struct {
	kind parentKind
	dir  ID
}

// RootParent returns the parent reference for top-level items.
func RootParent() Parent { return Parent{kind: parentRoot} }

// TrashParent returns the parent reference for trashed items.
func TrashParent() Parent { return Parent{kind: parentTrash} }

// DirectoryParent returns a parent reference to the directory with the
// given identifier.
func DirectoryParent(dir ID) Parent { return Parent{kind: parentDirectory, dir: dir} }

// IsRoot reports whether the item lives at the store root.
func (p Parent) IsRoot() bool { return p.kind == parentRoot }

// IsTrash reports whether the item is in the trash.
func (p Parent) IsTrash() bool { return p.kind == parentTrash }

// Directory returns the enclosing directory's identifier, if any.
func (p Parent) Directory() (ID, bool) {
	return p.dir, p.kind == parentDirectory
}

// Equal reports whether two parent references are the same. Parent is
// comparable, so this is ==; the method exists for go-cmp, which refuses
// to look at unexported fields on its own.
func (p Parent) Equal(q Parent) bool { return p == q }

// MarshalJSON writes the wire form of the parent reference.
func (p Parent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON parses the wire form of the parent reference.
func (p *Parent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parent reference: %w", err)
	}

	switch s {
	case "":
		*p = RootParent()
	case "trash":
		*p = TrashParent()
	default:
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("parent reference %q: %w", s, err)
		}

		*p = DirectoryParent(id)
	}

	return nil
}

// String returns the wire spelling of the parent reference.
func (p Parent) String() string {
	switch p.kind {
	case parentTrash:
		return "trash"
	case parentDirectory:
		return p.dir.String()
	default:
		return ""
	}
}

// Item is one entry in the store: a directory or a document.
type Item struct {
	ID     ID
	Name   string // display name, not unique across the store
	Parent Parent
	Pinned bool
	Kind   Kind
	Format Format // FormatNone unless Kind == KindDocument
}

// IsDir reports whether the item is a directory.
func (it Item) IsDir() bool { return it.Kind == KindDirectory }
