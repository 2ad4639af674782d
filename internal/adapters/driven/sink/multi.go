package sink

import (
	"context"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Ensure MultiSink implements the interface.
var _ driven.RecordSink = (MultiSink)(nil)

// MultiSink emits every record to each sink in order.
// It stops at the first failing sink and returns its error.
type MultiSink []driven.RecordSink

// NewMultiSink combines sinks, skipping nil entries.
func NewMultiSink(sinks ...driven.RecordSink) MultiSink {
	m := make(MultiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

// Emit forwards record to every sink.
func (m MultiSink) Emit(ctx context.Context, record domain.Record) error {
	for _, s := range m {
		if err := s.Emit(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
