package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wsbridge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an assistant can read
Drive, Calendar, Gmail, Contacts and Tasks through wsbridge.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead. HTTP mode serves:
  /mcp      the MCP endpoint
  /healthz  200 once the workspace is initialised
  /metrics  Prometheus metrics, when metrics.enabled is set

The token file written by 'wsbridge auth login' is watched while the server
runs, so a refreshed token takes effect without a restart.

Examples:
  # Stdio mode (default)
  wsbridge mcp serve

  # HTTP mode
  wsbridge mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if lifecycle == nil {
		return errors.New("workspace not configured")
	}

	ports := &mcp.Ports{
		Lifecycle: lifecycle,
		Drive:     driveService,
		Calendar:  calendarService,
		Mail:      mailService,
		Contacts:  contactsService,
		Tasks:     tasksService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	// A failed Init is retried on the first tool call.
	if err := lifecycle.Init(cmd.Context()); err != nil {
		logger.Warn("workspace not ready: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if watchTokens != nil {
		g.Go(func() error {
			return watchTokens(ctx)
		})
	}

	g.Go(func() error {
		defer cancel()
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s/mcp\n", addr)
			return server.RunHTTP(ctx, addr, metricsHandler)
		}
		return server.Run(ctx)
	})

	return g.Wait()
}
