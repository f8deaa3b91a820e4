// Package store defines the interface for the remote content store that
// durably persists published files. The GitHub implementation works against
// the Contents API of any GitHub-compatible host (github.com or Enterprise) —
// swap the concrete type injected at startup to target something else.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the interface for looking up and writing versioned files.
type Store interface {
	// FileSHA returns the current content SHA of the file at path on the
	// configured branch, or "" when no file exists there.
	FileSHA(ctx context.Context, path string) (string, error)
	// PutFile creates or updates the file at path with base64-encoded content.
	// A non-empty sha makes the write conditional on the file still being at
	// that version; the store rejects the write if a concurrent writer moved it.
	// On success it returns the store's write result verbatim.
	PutFile(ctx context.Context, path, contentB64, message, sha string) (json.RawMessage, error)
}

// StoreError reports a non-success response from the remote store.
type StoreError struct {
	StatusCode int
	Message    string // upstream error detail, or the raw response body
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("remote store: %s (status %d)", e.Message, e.StatusCode)
}
