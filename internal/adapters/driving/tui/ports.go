// Package tui provides an interactive terminal browser for stored security records.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// Ports aggregates the services the TUI needs.
type Ports struct {
	// Runner triggers runs and reads the saved state.
	Runner driving.SyncRunner

	// Records reads stored records back.
	Records driven.RecordReader
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Runner == nil {
		return ErrMissingRunner
	}
	if p.Records == nil {
		return ErrMissingRecords
	}
	return nil
}
