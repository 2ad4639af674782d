package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyncInProgress indicates another run holds the sync lock.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrInvalidState indicates persisted sync state could not be decoded.
	ErrInvalidState = errors.New("invalid sync state")

	// ErrStoreUnavailable indicates the durable store could not be opened.
	// A run cannot proceed without cursor state.
	ErrStoreUnavailable = errors.New("state store unavailable")
)
