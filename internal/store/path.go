package store

import "strings"

// Virtual paths use forward slashes regardless of platform; they name
// positions in the item hierarchy, not real filesystem locations.

// cleanPath normalizes a virtual path: surrounding whitespace and slashes
// are stripped, and the result is "" for any spelling of the root.
func cleanPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "." {
		return ""
	}

	return path
}

// splitPath returns the non-empty segments of a virtual path, nil for the
// root.
func splitPath(path string) []string {
	path = cleanPath(path)
	if path == "" {
		return nil
	}

	parts := strings.Split(path, "/")
	segs := parts[:0]

	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}

	return segs
}
