package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across stores and services. Callers match them
// with errors.Is.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the caller supplied invalid data
	// (empty note content, unsupported export format).
	ErrInvalidInput = errors.New("invalid input")
)

// StorageError wraps an underlying database failure. Local file I/O
// failures are non-transient, so nothing retries a StorageError; the CLI
// reports it and exits non-zero.
type StorageError struct {
	Op  string // failing store operation, e.g. "upsert progress"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storagef wraps err with the failing operation name.
func Storagef(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
