package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
	"github.com/custodia-labs/sectrack/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.SyncRunner = (*Orchestrator)(nil)

// DefaultLockHeartbeat is how often a run refreshes its run lock.
const DefaultLockHeartbeat = 10 * time.Minute

// Orchestrator runs one ingestion pass: reconcile tracked open pull
// requests, sync new ones, then persist cursor and open set together.
type Orchestrator struct {
	fetcher   driven.PullRequestFetcher
	states    driven.StateStore
	sink      driven.RecordSink
	filter    *RelevanceFilter
	extractor *Extractor
	dryRun    bool

	// heartbeat is how often a held run lock is refreshed.
	heartbeat time.Duration

	now      func() time.Time
	newRunID func() string
}

// NewOrchestrator creates an orchestrator. The state store is read once
// and written once per run.
func NewOrchestrator(
	fetcher driven.PullRequestFetcher,
	states driven.StateStore,
	sink driven.RecordSink,
	filter *RelevanceFilter,
) *Orchestrator {
	if filter == nil {
		filter = NewRelevanceFilter("")
	}
	return &Orchestrator{
		fetcher:   fetcher,
		states:    states,
		sink:      sink,
		filter:    filter,
		extractor: NewExtractor(),
		heartbeat: DefaultLockHeartbeat,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// SetDryRun marks reports as dry runs. The caller is responsible for
// handing the orchestrator a disposable state store.
func (o *Orchestrator) SetDryRun(dryRun bool) {
	o.dryRun = dryRun
}

// Run performs one ingestion pass. If any phase fails nothing is
// persisted, so the next run repeats the whole pass.
func (o *Orchestrator) Run(ctx context.Context) (*driving.RunReport, error) {
	start := o.now()
	runID := o.newRunID()

	if locker, ok := o.states.(driven.RunLocker); ok {
		if err := locker.AcquireRunLock(ctx, runID); err != nil {
			return nil, err
		}
		defer func() {
			if err := locker.ReleaseRunLock(context.WithoutCancel(ctx), runID); err != nil {
				logger.Warn("releasing run lock: %v", err)
			}
		}()

		runCtx, cancel := context.WithCancelCause(ctx)
		defer cancel(nil)
		stop := o.keepLock(runCtx, locker, runID, cancel)
		defer stop()

		report, err := o.run(runCtx, runID, start)
		if err != nil && ctx.Err() == nil {
			if cause := context.Cause(runCtx); cause != nil && !errors.Is(cause, context.Canceled) {
				return nil, cause
			}
		}
		return report, err
	}

	return o.run(ctx, runID, start)
}

// keepLock refreshes the run lock every heartbeat until the returned stop
// func is called. Losing the lock cancels the run with the refresh error.
func (o *Orchestrator) keepLock(
	ctx context.Context,
	locker driven.RunLocker,
	runID string,
	cancel context.CancelCauseFunc,
) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(o.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := locker.RefreshRunLock(ctx, runID)
				switch {
				case err == nil:
				case errors.Is(err, domain.ErrSyncInProgress):
					logger.Error("run %s: %v", runID, err)
					cancel(err)
					return
				default:
					logger.Warn("refreshing run lock: %v", err)
				}
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

func (o *Orchestrator) run(ctx context.Context, runID string, start time.Time) (*driving.RunReport, error) {

	state, err := LoadState(ctx, o.states)
	if err != nil {
		return nil, err
	}
	logger.Info("run %s: cursor %d, %d open pull requests tracked", runID, state.Cursor, state.Open.Len())

	sink := &stampingSink{next: o.sink, runID: runID, now: o.now}

	logger.Section("Reconcile")
	stillOpen, err := NewReconciler(o.fetcher, o.extractor, sink).Run(ctx, state.Open)
	if err != nil {
		return nil, err
	}

	logger.Section("Sync")
	synced, err := NewPageSync(o.fetcher, o.filter, o.extractor, sink).Run(ctx, state.Cursor)
	if err != nil {
		return nil, err
	}

	next := &domain.SyncState{
		Cursor: synced.HighWatermark,
		Open:   stillOpen.Union(synced.Discovered),
	}
	entries, err := encodeState(next)
	if err != nil {
		return nil, err
	}
	if err := o.states.SetAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("save sync state: %w", err)
	}

	report := &driving.RunReport{
		RunID:          runID,
		PreviousCursor: state.Cursor,
		Cursor:         next.Cursor,
		Reconciled:     state.Open.Len(),
		Closed:         state.Open.Len() - stillOpen.Len(),
		PagesFetched:   synced.Pages,
		Seen:           synced.Seen,
		Emitted:        sink.Count(),
		OpenTracked:    next.Open.Len(),
		DryRun:         o.dryRun,
		Duration:       o.now().Sub(start),
	}
	logger.Info("run %s complete: %d records, cursor %d, %d open", runID, report.Emitted, report.Cursor, report.OpenTracked)

	return report, nil
}

// Status returns the persisted sync state.
func (o *Orchestrator) Status(ctx context.Context) (*domain.SyncState, error) {
	return LoadState(ctx, o.states)
}

// stampingSink sets run metadata on records and counts them.
type stampingSink struct {
	next  driven.RecordSink
	runID string
	now   func() time.Time

	mu    sync.Mutex
	count int
}

func (s *stampingSink) Emit(ctx context.Context, record domain.Record) error {
	record.RunID = s.runID
	record.ExtractedAt = s.now().UTC()
	if err := s.next.Emit(ctx, record); err != nil {
		return err
	}
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
	return nil
}

func (s *stampingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
