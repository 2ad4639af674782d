package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

const defaultRecordLimit = 20

// RecordOutput is one extracted security record.
type RecordOutput struct {
	PullRequestID     int64    `json:"pr_id"`
	PullRequestNumber int      `json:"pr_number"`
	URL               string   `json:"url,omitempty"`
	Title             string   `json:"title"`
	CVEs              []string `json:"cves"`
	Package           string   `json:"package,omitempty"`
	AffectedVersions  []string `json:"affected_versions"`
	FixedVersion      string   `json:"fixed_version,omitempty"`
	RunID             string   `json:"run_id,omitempty"`
	ExtractedAt       string   `json:"extracted_at,omitempty"`
}

// ListRecordsInput is the input schema for the list_records tool.
type ListRecordsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 20)"`
}

// ListRecordsOutput is the output schema for the list_records tool.
type ListRecordsOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
}

// ExtractInput is the input schema for the extract_record tool.
type ExtractInput struct {
	Title string `json:"title" jsonschema:"pull request title, e.g. openssl: 3.0.1 -> 3.0.2"`
	Body  string `json:"body,omitempty" jsonschema:"pull request description"`
}

// StatusInput is the (empty) input schema for the sync_status tool.
type StatusInput struct{}

// StatusOutput is the persisted sync state.
type StatusOutput struct {
	Cursor int64             `json:"cursor"`
	Open   []domain.OpenItem `json:"open"`
}

// RunInput is the (empty) input schema for the run_sync tool.
type RunInput struct{}

// RunOutput summarises a completed run.
type RunOutput struct {
	RunID          string `json:"run_id"`
	PreviousCursor int64  `json:"previous_cursor"`
	Cursor         int64  `json:"cursor"`
	Reconciled     int    `json:"reconciled"`
	Closed         int    `json:"closed"`
	Seen           int    `json:"seen"`
	Emitted        int    `json:"emitted"`
	OpenTracked    int    `json:"open_tracked"`
	Duration       string `json:"duration"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_status",
		Description: "Show the saved cursor and the open security pull requests still tracked",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_sync",
		Description: "Run one ingestion pass and persist the new cursor",
	}, s.handleRun)

	if s.ports.Records != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_records",
			Description: "List stored security records, most recent first",
		}, s.handleListRecords)
	}

	if s.ports.Extractor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "extract_record",
			Description: "Extract CVE identifiers and package versions from a pull request title and body",
		}, s.handleExtract)
	}
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	state, err := s.ports.Runner.Status(ctx)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Cursor: state.Cursor, Open: state.Open.Items()}, nil
}

func (s *Server) handleRun(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RunInput,
) (*mcp.CallToolResult, RunOutput, error) {
	report, err := s.ports.Runner.Run(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			return nil, RunOutput{}, errors.New("another run is in progress")
		}
		return nil, RunOutput{}, err
	}
	return nil, toRunOutput(report), nil
}

func (s *Server) handleListRecords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRecordsInput,
) (*mcp.CallToolResult, ListRecordsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecordLimit
	}

	records, err := s.ports.Records.ListRecords(ctx, limit)
	if err != nil {
		return nil, ListRecordsOutput{}, err
	}

	output := ListRecordsOutput{
		Records: make([]RecordOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Records[i] = toRecordOutput(&records[i])
	}
	return nil, output, nil
}

func (s *Server) handleExtract(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	if input.Title == "" && input.Body == "" {
		return nil, RecordOutput{}, errors.New("title or body is required")
	}
	record := s.ports.Extractor.Extract(&domain.PullRequest{Title: input.Title, Body: input.Body})
	return nil, toRecordOutput(&record), nil
}

func toRecordOutput(r *domain.Record) RecordOutput {
	out := RecordOutput{
		PullRequestID:     r.PullRequest.ID,
		PullRequestNumber: r.PullRequest.Number,
		URL:               r.PullRequest.URL,
		Title:             r.PullRequest.Title,
		CVEs:              r.CVEs,
		Package:           r.Package,
		AffectedVersions:  r.AffectedVersions,
		FixedVersion:      r.FixedVersion,
		RunID:             r.RunID,
	}
	if out.CVEs == nil {
		out.CVEs = []string{}
	}
	if out.AffectedVersions == nil {
		out.AffectedVersions = []string{}
	}
	if !r.ExtractedAt.IsZero() {
		out.ExtractedAt = r.ExtractedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toRunOutput(r *driving.RunReport) RunOutput {
	return RunOutput{
		RunID:          r.RunID,
		PreviousCursor: r.PreviousCursor,
		Cursor:         r.Cursor,
		Reconciled:     r.Reconciled,
		Closed:         r.Closed,
		Seen:           r.Seen,
		Emitted:        r.Emitted,
		OpenTracked:    r.OpenTracked,
		Duration:       r.Duration.Round(time.Millisecond).String(),
	}
}
