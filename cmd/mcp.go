package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/keydoro/keydoro/internal/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI
assistants. The server exposes tools for pressing and holding timer
keys, reading timer state and updating settings, over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "Starting MCP server (stdio). Press Ctrl+C to stop.")

		ctx := context.Background()

		// The MCP client owns stdout, so rendered frames go nowhere.
		reg := newRegistry(discardSink{})
		defer reg.Close()

		server := mcp.NewServer(reg)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
