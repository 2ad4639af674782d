package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "sectrack://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "state",
		Name:        "state",
		Description: "Saved sync cursor and tracked open pull requests",
		MIMEType:    "application/json",
	}, s.handleStateResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "records/{pullRequestId}",
		Name:        "pull-request-record",
		Description: "Latest record stored for a pull request, by upstream ID",
		MIMEType:    "application/json",
	}, s.handleRecordResource)
}

func (s *Server) handleStateResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	state, err := s.ports.Runner.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	return jsonResource(req.Params.URI, StatusOutput{Cursor: state.Cursor, Open: state.Open.Items()})
}

func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Records == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id, ok := extractPullRequestID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Records.ListRecords(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	for i := range records {
		if records[i].PullRequest.ID == id {
			return jsonResource(req.Params.URI, toRecordOutput(&records[i]))
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPullRequestID parses sectrack://records/{pullRequestId}.
func extractPullRequestID(uri string) (int64, bool) {
	const prefix = uriScheme + "records/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
