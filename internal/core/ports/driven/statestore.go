package driven

import "context"

// StateStore is a durable key-value store for sync state.
// Values are opaque bytes; callers own the encoding.
type StateStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetAll stores every entry atomically: either all are written or none.
	SetAll(ctx context.Context, entries map[string][]byte) error
}

// RunLocker serialises runs against a store.
// Stores that can be shared between processes implement it.
type RunLocker interface {
	// AcquireRunLock claims the run lock for owner.
	// Returns domain.ErrSyncInProgress if another owner holds it.
	AcquireRunLock(ctx context.Context, owner string) error

	// RefreshRunLock marks a lock held by owner as alive so it is not
	// taken over as stale. Returns domain.ErrSyncInProgress if owner no
	// longer holds it.
	RefreshRunLock(ctx context.Context, owner string) error

	// ReleaseRunLock releases a lock held by owner.
	ReleaseRunLock(ctx context.Context, owner string) error
}
