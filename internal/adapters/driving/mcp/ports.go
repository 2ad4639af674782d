package mcp

import (
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// RecordExtractor turns a pull request into a record without side effects.
type RecordExtractor interface {
	Extract(pr *domain.PullRequest) domain.Record
}

// Ports aggregates the services the MCP server exposes.
type Ports struct {
	// Runner performs sync runs and reads persisted state.
	Runner driving.SyncRunner

	// Records reads back stored records. Optional.
	Records driven.RecordReader

	// Extractor backs the extract_record tool. Optional.
	Extractor RecordExtractor
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Runner == nil {
		return ErrMissingRunner
	}
	return nil
}
