package store

import "errors"

var (
	// ErrNotFound reports a path that resolves to no item.
	ErrNotFound = errors.New("no item at path")
	// ErrAmbiguousPath reports a display-name collision that parent-chain
	// verification could not settle. It is surfaced rather than silently
	// resolved to an arbitrary candidate.
	ErrAmbiguousPath = errors.New("ambiguous path")
	// ErrNotDirectory reports a directory operation aimed at a document.
	ErrNotDirectory = errors.New("not a directory")
	// ErrWatchSetup reports that the filesystem-notification subscription
	// could not be established. Queries keep serving the last full index.
	ErrWatchSetup = errors.New("cannot watch document directory")
)
