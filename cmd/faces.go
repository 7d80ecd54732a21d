package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NishizukaKoichi/score-function/core"
)

// facesCmd displays the formal definitions of all faces.
var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Display formulas, weights and penalties for all faces",
	Long: `Show the linear terms, logistic penalties and profile multipliers of every face,
plus how faces are aggregated and gated.

No metrics are read - this is purely informational.

Examples:
  # Show the default formulas
  scorefn faces

  # View with a tuned config
  scorefn faces --score-config tuned.yaml --profile speed`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot display faces", core.ExecuteFaces)
	},
}
