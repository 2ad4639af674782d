package sink

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Ensure TextSink implements the interface.
var _ driven.RecordSink = (*TextSink)(nil)

// TextSink writes records as indented blocks for terminals.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSink creates a sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit writes one block followed by a blank line.
func (s *TextSink) Emit(_ context.Context, record domain.Record) error {
	var b strings.Builder

	fmt.Fprintf(&b, "#%d %s\n", record.PullRequest.Number, record.PullRequest.Title)
	fmt.Fprintf(&b, "  url:      %s\n", record.PullRequest.URL)
	fmt.Fprintf(&b, "  cves:     %s\n", orNone(strings.Join(record.CVEs, ", ")))
	if record.HasVersions() {
		fmt.Fprintf(&b, "  package:  %s\n", record.Package)
		fmt.Fprintf(&b, "  affected: %s\n", orNone(strings.Join(record.AffectedVersions, ", ")))
		fmt.Fprintf(&b, "  fixed:    %s\n", orNone(record.FixedVersion))
	}
	b.WriteString("\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("writing record for pull request %d: %w", record.PullRequest.ID, err)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
