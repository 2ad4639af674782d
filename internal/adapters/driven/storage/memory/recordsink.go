package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Ensure RecordSink implements the interface.
var _ driven.RecordSink = (*RecordSink)(nil)

// RecordSink collects emitted records in memory.
type RecordSink struct {
	mu      sync.Mutex
	records []domain.Record
	err     error
}

// NewRecordSink creates an empty collecting sink.
func NewRecordSink() *RecordSink {
	return &RecordSink{}
}

// NewFailingRecordSink creates a sink whose Emit always returns err.
func NewFailingRecordSink(err error) *RecordSink {
	return &RecordSink{err: err}
}

// Emit appends the record.
func (s *RecordSink) Emit(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of everything emitted so far.
func (s *RecordSink) Records() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// IDs returns the pull request IDs of emitted records, in emit order.
func (s *RecordSink) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.records))
	for _, r := range s.records {
		ids = append(ids, r.PullRequest.ID)
	}
	return ids
}

// Ensure RecordSink can be read back like a durable sink.
var _ driven.RecordReader = (*RecordSink)(nil)

// CountRecords returns the number of distinct pull requests emitted.
func (s *RecordSink) CountRecords(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int64]struct{}, len(s.records))
	for _, r := range s.records {
		seen[r.PullRequest.ID] = struct{}{}
	}
	return len(seen), nil
}

// ListRecords returns the latest record per pull request, newest first.
func (s *RecordSink) ListRecords(_ context.Context, limit int) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int64]struct{}, len(s.records))
	var out []domain.Record
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if _, ok := seen[r.PullRequest.ID]; ok {
			continue
		}
		seen[r.PullRequest.ID] = struct{}{}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
