package storage

import "errors"

var (
	// ErrStorageUnavailable is returned when the backing store cannot be
	// opened or provisioned.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrWriteFailed is returned when a put, delete or settings save did
	// not commit. Nothing of the failed write is visible afterwards.
	ErrWriteFailed = errors.New("storage write failed")

	// ErrNotOpen is returned by every read and write on a store whose Open
	// has not succeeded.
	ErrNotOpen = errors.New("storage not open")
)
