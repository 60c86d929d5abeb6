package store

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a unique constraint was violated, e.g. a
	// duplicate email or username at registration.
	ErrConflict = errors.New("record already exists")
)
