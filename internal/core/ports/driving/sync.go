package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

// SyncRunner drives one incremental ingestion run.
type SyncRunner interface {
	// Run reconciles tracked open pull requests, then syncs new ones,
	// and persists the resulting state.
	Run(ctx context.Context) (*RunReport, error)

	// Status returns the persisted sync state.
	Status(ctx context.Context) (*domain.SyncState, error)
}

// RunReport summarises a completed run.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string

	// PreviousCursor is the cursor loaded at the start of the run.
	PreviousCursor int64

	// Cursor is the cursor persisted at the end of the run.
	Cursor int64

	// Reconciled is the number of open pull requests re-checked.
	Reconciled int

	// Closed is the number of tracked pull requests found closed.
	Closed int

	// PagesFetched is the number of listing pages requested.
	PagesFetched int

	// Seen is the number of new pull requests examined.
	Seen int

	// Emitted is the number of records emitted.
	Emitted int

	// OpenTracked is the size of the persisted open set.
	OpenTracked int

	// DryRun is true when state was not persisted.
	DryRun bool

	// Duration is the wall time of the run.
	Duration time.Duration
}
