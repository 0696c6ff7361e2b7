package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/receipta/internal/adapters/driving/mcp"
)

var mcpAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Let an AI assistant read your receipts over the Model Context Protocol.

Tools: list_categories, list_products, product_history, spending_summary.
Resources: receipta://receipts and receipta://receipts/{receiptId}.

The server speaks JSON-RPC over stdio unless --addr is given, in which case
it serves streamable HTTP on that address (useful with MCP Inspector).

Examples:
  receipta mcp serve
  receipta mcp serve --addr :8081

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "receipta": {
        "command": "/path/to/receipta",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVarP(&mcpAddr, "addr", "a", "", "serve HTTP on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Analysis: analysisService,
		Receipt:  receiptService,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mcpAddr == "" {
		return server.Run(ctx)
	}
	// Stdout belongs to JSON-RPC in stdio mode, so this is only printed here.
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", mcpAddr)
	return server.RunHTTP(ctx, mcpAddr)
}
