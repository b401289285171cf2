package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports that a lookup by key matched no row.
type NotFoundError struct {
	// Entity is the lower-case name of what was looked up, e.g. "account".
	Entity string
	// Key is the lookup key as received.
	Key any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// Is lets errors.Is(err, ErrNotFound) match regardless of entity.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError wraps a driver-level or connectivity failure.
//
// Op names the gateway operation (e.g. "account.get_by_id"). Err keeps the
// full cause chain for logging; none of it is shown to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorage reports whether err is, or wraps, a *StorageError.
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
