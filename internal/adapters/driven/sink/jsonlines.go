package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Ensure JSONLinesSink implements the interface.
var _ driven.RecordSink = (*JSONLinesSink)(nil)

// JSONLinesSink writes each record as a single JSON line.
type JSONLinesSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLinesSink creates a sink writing to w.
func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	enc := json.NewEncoder(w)
	// Titles such as "foo: 1.0 -> 1.1" must stay readable.
	enc.SetEscapeHTML(false)
	return &JSONLinesSink{enc: enc}
}

// Emit writes one line.
func (s *JSONLinesSink) Emit(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.CVEs == nil {
		record.CVEs = []string{}
	}
	if record.AffectedVersions == nil {
		record.AffectedVersions = []string{}
	}

	if err := s.enc.Encode(record); err != nil {
		return fmt.Errorf("writing record for pull request %d: %w", record.PullRequest.ID, err)
	}
	return nil
}
