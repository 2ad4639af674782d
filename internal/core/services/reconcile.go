package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/logger"
)

// Reconciler re-fetches tracked open pull requests, re-emits their
// records and drops the ones that have closed.
type Reconciler struct {
	fetcher   driven.PullRequestFetcher
	extractor *Extractor
	sink      driven.RecordSink
}

// NewReconciler creates a reconciler.
func NewReconciler(fetcher driven.PullRequestFetcher, extractor *Extractor, sink driven.RecordSink) *Reconciler {
	return &Reconciler{
		fetcher:   fetcher,
		extractor: extractor,
		sink:      sink,
	}
}

// Run visits open in stored order, one at a time, and returns the
// members still open. Pull requests that no longer exist upstream are
// dropped. Any other failure aborts the run.
func (r *Reconciler) Run(ctx context.Context, open *domain.OpenSet) (*domain.OpenSet, error) {
	kept := domain.NewOpenSet()

	for _, item := range open.Items() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pr, err := r.fetcher.FetchPullRequest(ctx, item.Number)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("pull request #%d (id %d) no longer exists, dropping it", item.Number, item.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reconcile pull request #%d: %w", item.Number, err)
		}

		record := r.extractor.Extract(pr)
		if err := r.sink.Emit(ctx, record); err != nil {
			return nil, fmt.Errorf("emit pull request %d: %w", pr.ID, err)
		}

		if pr.IsClosed() {
			logger.Debug("pull request #%d closed", item.Number)
			continue
		}
		kept.Add(item)
	}

	logger.Info("reconciled %d open pull requests, %d still open", open.Len(), kept.Len())
	return kept, nil
}
