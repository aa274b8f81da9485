package importers

import (
	"errors"
	"fmt"
)

// ErrFetch indicates the source document could not be retrieved.
var ErrFetch = errors.New("failed to fetch source document")

// ErrMalformedDocument indicates the source document is not valid JSON for
// the bookstore schema.
var ErrMalformedDocument = errors.New("malformed source document")

// ErrStorage indicates a batch could not be written to the store. Batches
// committed before the failure remain in place.
var ErrStorage = errors.New("store write failed")

// StatusError represents a non-2xx response from the source server.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source server responded with HTTP %d", e.StatusCode)
}

func storageError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, stage, err)
}
