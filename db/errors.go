package db

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"starboard/core"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}

// wrapStoreError classifies a driver error as core.ErrConflict or core.ErrStoreUnavailable
func wrapStoreError(action string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to %s: %w", action, core.ErrConflict)
	}
	return fmt.Errorf("failed to %s: %w: %w", action, core.ErrStoreUnavailable, err)
}
