package sidecar

import "errors"

var (
	// ErrNotFound reports a missing sidecar file.
	ErrNotFound = errors.New("sidecar file not found")
	// ErrParse reports a sidecar file that exists but cannot be decoded.
	ErrParse = errors.New("malformed sidecar file")
)
