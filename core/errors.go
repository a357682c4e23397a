package core

import (
	"errors"
)

var (
	// ErrNotFound is returned when a platform object (message, channel) no longer exists
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedReaction is returned for custom or uncatalogued reactions
	ErrUnsupportedReaction = errors.New("unsupported reaction")

	// ErrConflict is returned when a uniqueness constraint rejects a write
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable wraps every store failure that is not a conflict
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError checks if an error was caused by a uniqueness violation
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}
