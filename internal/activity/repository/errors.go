package repository

import "errors"

var (
	// ErrNotFound is returned by point operations when no document has the
	// requested id inside the requested user partition.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned by Insert when the id is already taken.
	ErrDuplicate = errors.New("document already exists")
	// ErrNotConfigured is returned by every operation of Unconfigured.
	ErrNotConfigured = errors.New("document store connection not configured")
)
