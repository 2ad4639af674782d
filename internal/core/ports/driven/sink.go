package driven

import (
	"context"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

// RecordSink receives records extracted from relevant pull requests.
// A record is emitted every time a relevant pull request is processed,
// so the same pull request may be emitted again on later runs while open.
type RecordSink interface {
	// Emit delivers one record.
	Emit(ctx context.Context, record domain.Record) error
}

// RecordReader reads back records persisted by a durable sink.
type RecordReader interface {
	// CountRecords returns how many pull requests have a stored record.
	CountRecords(ctx context.Context) (int, error)

	// ListRecords returns the latest record per pull request, most
	// recently extracted first. A limit <= 0 returns all of them.
	ListRecords(ctx context.Context, limit int) ([]domain.Record, error)
}
