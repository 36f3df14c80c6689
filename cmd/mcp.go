package cmd

import (
	"github.com/fredline/fredline/core"
	"github.com/fredline/fredline/internal/fredclient"
	"github.com/fredline/fredline/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Fredline MCP server",
	Long:  `Launch an MCP server that allows AI agents to fetch, inspect, and probe economic time series via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// No positional series here; tools carry their own IDs.
		return sharedSetup(rootCtx, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		client := fredclient.New(cfg.APIKey)
		return mcp.StartMCPServer(rootCtx, cfg, client, core.DefaultStoreManager())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
