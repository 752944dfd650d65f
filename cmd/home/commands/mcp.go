// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use Binary Home via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/binary-home/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Binary Home as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to log observations, leave notes, nudge the
Love-O-Meter, and check on Fox via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  home mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "binary-home": {
  #       "command": "home",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for cloud keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	svc, err := openServices()
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Binary Home",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, mcp.RegisterConfig{
		Ledger:     svc.ledger,
		Aggregator: svc.aggregator,
		Emotions:   svc.emotions,
		States:     svc.states,
		Cloud:      svc.cloud,
		UplinkDir:  svc.cfg.UplinkDir,
		DyadID:     svc.cfg.DyadID,
	})

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Binary Home MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
		svc.Close()
		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		svc.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
