package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Ensure StateStore implements the interfaces.
var (
	_ driven.StateStore = (*StateStore)(nil)
	_ driven.RunLocker  = (*StateStore)(nil)
)

// StateStore is an in-memory implementation of driven.StateStore.
// Used by tests and by dry runs, which start from a snapshot of the
// durable store and discard their writes.
type StateStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	lockedBy string
	writes   int
}

// NewStateStore creates a new empty in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		values: make(map[string][]byte),
	}
}

// Get retrieves the value stored under key.
func (s *StateStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(val), nil
}

// Set stores value under key.
func (s *StateStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = clone(value)
	s.writes++
	return nil
}

// SetAll stores every entry under one lock.
func (s *StateStore) SetAll(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.values[k] = clone(v)
	}
	s.writes++
	return nil
}

// Writes returns how many Set/SetAll calls have been made.
func (s *StateStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// AcquireRunLock claims the run lock for owner.
func (s *StateStore) AcquireRunLock(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lockedBy != "" && s.lockedBy != owner {
		return domain.ErrSyncInProgress
	}
	s.lockedBy = owner
	return nil
}

// RefreshRunLock checks that owner still holds the lock.
func (s *StateStore) RefreshRunLock(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lockedBy != owner {
		return domain.ErrSyncInProgress
	}
	return nil
}

// ReleaseRunLock releases a lock held by owner.
func (s *StateStore) ReleaseRunLock(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lockedBy == owner {
		s.lockedBy = ""
	}
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
