// Package driving holds the ports the CLI, MCP server and terminal browser
// call into. SyncRunner is implemented by services.Orchestrator.
package driving
