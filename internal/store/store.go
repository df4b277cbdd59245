// Package store abstracts the realtime key-value database backing the
// booking core. Two backends exist: Firebase Realtime Database for
// production and an in-memory tree for tests and local development,
// selected by config.
package store

import (
	"context"
	"errors"
)

// ErrAlreadyExists is returned by CreateIfAbsent when a value is already
// present at the path. Blocked-date writes rely on it as their uniqueness
// constraint.
var ErrAlreadyExists = errors.New("value already exists at path")

// Store is the external realtime database collaborator. Paths are
// slash-separated ("reservations/abc123"). MultiUpdate is a single
// best-effort multi-path write — atomic across its paths, but not a
// general transaction.
type Store interface {
	// Get unmarshals the value at path into v. A missing path leaves v at
	// its zero value and returns nil.
	Get(ctx context.Context, path string, v any) error

	// Set writes v at path; a nil v deletes the path.
	Set(ctx context.Context, path string, v any) error

	// MultiUpdate applies every path→value entry in one write. Nil values
	// delete their paths.
	MultiUpdate(ctx context.Context, updates map[string]any) error

	// Query returns the children of path whose child field equals value,
	// unmarshalled into out (a *map[string]T).
	Query(ctx context.Context, path, field string, value any, out any) error

	// CreateIfAbsent writes v at path only when nothing is stored there,
	// as a single conditional operation. Returns ErrAlreadyExists when the
	// path is occupied.
	CreateIfAbsent(ctx context.Context, path string, v any) error
}
