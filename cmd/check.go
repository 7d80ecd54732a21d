package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NishizukaKoichi/score-function/core"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <metrics-file>",
	Short: "Enforce the score gate for CI/CD pipelines (fails build on violations)",
	Long: `Score a metrics document and enforce the gate: every raw face must reach
min_each and the weighted geometric mean must reach min_geo.

Designed specifically for CI/CD integration - fails with non-zero exit code when the
gate rejects the metrics.

Default gate: min_each 70.0, min_geo 80.0, floor_each 5.0

Examples:
  # Check the metrics produced by the pipeline
  scorefn check metrics.yaml

  # Tighten the gate for a release branch
  scorefn check metrics.yaml --gate-override "min_each:80,min_geo:85"

  # Record the outcome as CSV
  scorefn check metrics.yaml --output csv --output-file gate.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Policy check failed", core.ExecuteCheck)
	},
}
