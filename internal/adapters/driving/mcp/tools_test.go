package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
	"github.com/custodia-labs/sectrack/internal/core/services"
)

func TestServer_handleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("returns cursor and open items", func(t *testing.T) {
		runner := &mockRunner{state: &domain.SyncState{
			Cursor: 150,
			Open:   domain.NewOpenSet(domain.OpenItem{ID: 120, Number: 1120}),
		}}
		server, err := NewServer(&Ports{Runner: runner})
		require.NoError(t, err)

		_, output, err := server.handleStatus(ctx, nil, StatusInput{})

		require.NoError(t, err)
		assert.Equal(t, int64(150), output.Cursor)
		assert.Equal(t, []domain.OpenItem{{ID: 120, Number: 1120}}, output.Open)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Runner: &mockRunner{err: errors.New("disk gone")}})
		require.NoError(t, err)

		_, _, err = server.handleStatus(ctx, nil, StatusInput{})

		assert.ErrorContains(t, err, "disk gone")
	})
}

func TestServer_handleRun(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report", func(t *testing.T) {
		runner := &mockRunner{report: &driving.RunReport{
			RunID:          "run-9",
			PreviousCursor: 100,
			Cursor:         150,
			Emitted:        2,
			Duration:       1234567 * time.Microsecond,
		}}
		server, err := NewServer(&Ports{Runner: runner})
		require.NoError(t, err)

		_, output, err := server.handleRun(ctx, nil, RunInput{})

		require.NoError(t, err)
		assert.Equal(t, "run-9", output.RunID)
		assert.Equal(t, int64(100), output.PreviousCursor)
		assert.Equal(t, int64(150), output.Cursor)
		assert.Equal(t, 2, output.Emitted)
		assert.Equal(t, "1.235s", output.Duration)
	})

	t.Run("sync in progress", func(t *testing.T) {
		runner := &mockRunner{err: fmt.Errorf("lock: %w", domain.ErrSyncInProgress)}
		server, err := NewServer(&Ports{Runner: runner})
		require.NoError(t, err)

		_, _, err = server.handleRun(ctx, nil, RunInput{})

		assert.EqualError(t, err, "another run is in progress")
	})
}

func TestServer_handleListRecords(t *testing.T) {
	ctx := context.Background()
	store := newRecordStore(sampleRecord(1), sampleRecord(2), sampleRecord(3))
	server, err := NewServer(&Ports{Runner: &mockRunner{}, Records: store})
	require.NoError(t, err)

	t.Run("newest first with limit", func(t *testing.T) {
		_, output, err := server.handleListRecords(ctx, nil, ListRecordsInput{Limit: 2})

		require.NoError(t, err)
		require.Equal(t, 2, output.Count)
		assert.Equal(t, int64(3), output.Records[0].PullRequestID)
		assert.Equal(t, 1003, output.Records[0].PullRequestNumber)
		assert.Equal(t, "2024-03-01T12:00:00Z", output.Records[0].ExtractedAt)
		assert.Equal(t, int64(2), output.Records[1].PullRequestID)
	})

	t.Run("default limit", func(t *testing.T) {
		_, output, err := server.handleListRecords(ctx, nil, ListRecordsInput{})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
	})
}

func TestServer_handleExtract(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Runner: &mockRunner{}, Extractor: services.NewExtractor()})
	require.NoError(t, err)

	t.Run("extracts title and body", func(t *testing.T) {
		_, output, err := server.handleExtract(ctx, nil, ExtractInput{
			Title: "libwebp: 1.3.1 -> 1.3.2",
			Body:  "Fixes cve-2023-4863",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"CVE-2023-4863"}, output.CVEs)
		assert.Equal(t, "libwebp", output.Package)
		assert.Equal(t, []string{"1.3.1"}, output.AffectedVersions)
		assert.Equal(t, "1.3.2", output.FixedVersion)
		assert.Empty(t, output.ExtractedAt)
	})

	t.Run("no versions gives empty lists", func(t *testing.T) {
		_, output, err := server.handleExtract(ctx, nil, ExtractInput{Title: "docs: fix typo"})

		require.NoError(t, err)
		assert.Equal(t, []string{}, output.CVEs)
		assert.Equal(t, []string{}, output.AffectedVersions)
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, err := server.handleExtract(ctx, nil, ExtractInput{})

		assert.Error(t, err)
	})
}
