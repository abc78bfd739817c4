package sidecar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"

	"remdex/internal/item"
)

// RewriteParent performs a read-modify-write of the metadata sidecar,
// replacing only the "parent" field. The edit is structural: every other
// field survives verbatim, including fields this package does not model,
// so the device's own software never loses data to a remdex move.
//
// The write is atomic (write to a temp file, then rename), so a watcher
// observing the store never sees a half-written sidecar.
func RewriteParent(base string, id item.ID, parent item.Parent) error {
	path := MetadataPath(base, id)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("rewrite parent: %s: %w", path, ErrNotFound)
		}

		return fmt.Errorf("rewrite parent: read %s: %w", path, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("rewrite parent: %s: %v: %w", path, err, ErrParse)
	}

	encoded, err := json.Marshal(parent)
	if err != nil {
		return fmt.Errorf("rewrite parent: encode %q: %w", parent, err)
	}

	fields["parent"] = encoded

	out, err := json.MarshalIndent(fields, "", "    ")
	if err != nil {
		return fmt.Errorf("rewrite parent: encode %s: %w", path, err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("rewrite parent: write %s: %w", path, err)
	}

	return nil
}
