package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// LoadState reads the cursor and open set from the store.
// Absent keys yield a zero cursor and an empty set.
func LoadState(ctx context.Context, store driven.StateStore) (*domain.SyncState, error) {
	state := domain.NewSyncState()

	raw, err := store.Get(ctx, domain.KeyCursor)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load %s: %w", domain.KeyCursor, err)
	default:
		if err := json.Unmarshal(raw, &state.Cursor); err != nil {
			return nil, fmt.Errorf("decode %s: %w: %w", domain.KeyCursor, domain.ErrInvalidState, err)
		}
	}

	raw, err = store.Get(ctx, domain.KeyOpenSet)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load %s: %w", domain.KeyOpenSet, err)
	default:
		var items []domain.OpenItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w: %w", domain.KeyOpenSet, domain.ErrInvalidState, err)
		}
		state.Open = domain.NewOpenSet(items...)
	}

	return state, nil
}

// encodeState renders state as the store entries written by SetAll.
func encodeState(state *domain.SyncState) (map[string][]byte, error) {
	cursor, err := json.Marshal(state.Cursor)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", domain.KeyCursor, err)
	}
	open, err := json.Marshal(state.Open.Items())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", domain.KeyOpenSet, err)
	}
	return map[string][]byte{
		domain.KeyCursor:  cursor,
		domain.KeyOpenSet: open,
	}, nil
}

// CopyState copies the persisted sync keys from src into dst.
// Dry runs use it to work on a snapshot of the durable store.
func CopyState(ctx context.Context, dst, src driven.StateStore) error {
	entries := make(map[string][]byte)
	for _, key := range []string{domain.KeyCursor, domain.KeyOpenSet} {
		value, err := src.Get(ctx, key)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("copy %s: %w", key, err)
		}
		entries[key] = value
	}
	if len(entries) == 0 {
		return nil
	}
	return dst.SetAll(ctx, entries)
}
