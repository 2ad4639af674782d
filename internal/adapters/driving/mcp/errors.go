// Package mcp provides an MCP (Model Context Protocol) server adapter for sectrack.
// It lets AI assistants read tracked security records, inspect sync state
// and trigger ingestion runs.
package mcp

import "errors"

// ErrMissingRunner is returned when the sync runner is not provided.
var ErrMissingRunner = errors.New("mcp: sync runner is required")
