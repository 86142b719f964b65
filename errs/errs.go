// Package errs contains sentinel errors shared across layers for stable
// error mapping in handlers.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist, or is not
	// visible to the caller (owner-scoped lookups report both the same way).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation
	// (e.g. email or tracking number taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoResult indicates the geocoder returned no match for a query.
	ErrNoResult = errors.New("no result")
)
