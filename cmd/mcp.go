package cmd

import (
	"github.com/huangsam/picklist/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the pick-list MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents generate pick lists,
validate weights and list strategies via standard tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager, statsSource())
	},
}
