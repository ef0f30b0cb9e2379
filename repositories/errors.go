package repositories

import "errors"

var (
	// ErrNotFound is returned by GetByID when no summary exists for the id.
	ErrNotFound = errors.New("summary not found")
	// ErrConflict is returned by Create when a summary with the same id or url already exists.
	ErrConflict = errors.New("summary already exists")
	// ErrStorageUnavailable wraps connectivity failures of the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
