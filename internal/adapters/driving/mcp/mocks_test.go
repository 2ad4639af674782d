package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// mockRunner is a mock implementation of driving.SyncRunner.
type mockRunner struct {
	report *driving.RunReport
	state  *domain.SyncState
	err    error
}

func (m *mockRunner) Run(_ context.Context) (*driving.RunReport, error) {
	return m.report, m.err
}

func (m *mockRunner) Status(_ context.Context) (*domain.SyncState, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.state == nil {
		return &domain.SyncState{Open: domain.NewOpenSet()}, nil
	}
	return m.state, nil
}

func newRecordStore(records ...domain.Record) *memory.RecordSink {
	store := memory.NewRecordSink()
	for _, r := range records {
		_ = store.Emit(context.Background(), r)
	}
	return store
}

func sampleRecord(id int64) domain.Record {
	return domain.Record{
		PullRequest: domain.PullRequestRef{
			ID:     id,
			Number: int(id) + 1000,
			URL:    "https://github.com/NixOS/nixpkgs/pull/1",
			Title:  "openssl: 3.0.1 -> 3.0.2",
		},
		CVEs:             []string{"CVE-2024-0001"},
		Package:          "openssl",
		AffectedVersions: []string{"3.0.1"},
		FixedVersion:     "3.0.2",
		RunID:            "run-1",
		ExtractedAt:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
