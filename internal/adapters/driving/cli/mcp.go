package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sectrack/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sectrack/internal/core/services"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can read stored
security records, inspect the sync state and trigger runs.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  sectrack mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sectrack mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	// Stdout carries the protocol, so records from runs are not printed.
	session, err := openSession(ctx, SessionOptions{Out: io.Discard})
	if err != nil {
		return err
	}
	defer session.close()

	server, err := mcp.NewServer(&mcp.Ports{
		Runner:    session.Runner,
		Records:   session.Records,
		Extractor: services.NewExtractor(),
	})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
