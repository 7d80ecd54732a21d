package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NishizukaKoichi/score-function/core"
)

// computeCmd scores a single metrics document.
var computeCmd = &cobra.Command{
	Use:   "compute <metrics-file>",
	Short: "Score a metrics document across all six faces.",
	Long: `Score a YAML or JSON metrics document and print the per-face scores,
the profile-weighted geometric mean, the uncertainty-discounted final score
and the gate outcome.

Faces: spec, code, test, sec, pr, dep

Examples:
  # Score with the default sre profile
  scorefn compute metrics.yaml

  # Favor delivery speed and show how every face was built
  scorefn compute metrics.yaml --profile speed --explain

  # Override part of the config and export as JSON
  scorefn compute metrics.json --score-config tuned.yaml --merge deep --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot compute score", core.ExecuteCompute)
	},
}
