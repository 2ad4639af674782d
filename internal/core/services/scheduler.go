package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
	"github.com/custodia-labs/sectrack/internal/logger"
)

// Scheduler repeats sync runs at a fixed interval.
// Runs never overlap: the next one is timed from the end of the previous.
type Scheduler struct {
	runner   driving.SyncRunner
	interval time.Duration
	onReport func(*driving.RunReport)

	mu      sync.Mutex
	running bool
	runs    int
	failed  int
}

// NewScheduler creates a scheduler. onReport, if set, receives every
// successful report.
func NewScheduler(runner driving.SyncRunner, interval time.Duration, onReport func(*driving.RunReport)) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		onReport: onReport,
	}
}

// Start runs immediately, then once per interval. It blocks until ctx is
// cancelled and returns its error. A failed run is logged and retried on
// the next tick. Start on a scheduler that is already running returns nil.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			s.runOnce(ctx)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Info("next run in %s", s.interval)
			timer.Reset(s.interval)
		}
	}
}

// Stats returns how many runs were attempted and how many failed.
func (s *Scheduler) Stats() (runs, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs, s.failed
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.runner.Run(ctx)

	s.mu.Lock()
	s.runs++
	if err != nil {
		s.failed++
	}
	s.mu.Unlock()

	switch {
	case err == nil:
		if s.onReport != nil {
			s.onReport(report)
		}
	case errors.Is(err, context.Canceled):
	case errors.Is(err, domain.ErrSyncInProgress):
		logger.Warn("skipping scheduled run: %v", err)
	default:
		logger.Error("scheduled run failed: %v", err)
	}
}
