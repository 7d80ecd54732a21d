package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NishizukaKoichi/score-function/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the scorefn MCP server over stdio",
	Long: `Launch an MCP server that allows AI agents to score metrics via standard tools.

The --score-config, --profile and --merge flags set the defaults every tool call merges over.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, engine, version)
	},
}
