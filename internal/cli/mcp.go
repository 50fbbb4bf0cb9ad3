package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants read and add notes, events and tasks, and ask
for the daily suggestion.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "hub": {
      "command": "/path/to/hub",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}
	if cfg.MCP.Transport != "stdio" {
		return fmt.Errorf("unsupported MCP transport %q (only stdio)", cfg.MCP.Transport)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	server := mcp.New(db, cfg, newGenerator(cfg))

	// Handle interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return server.Start(ctx)
}
