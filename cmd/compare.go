package cmd

import (
	"github.com/spf13/cobra"

	"github.com/NishizukaKoichi/score-function/core"
)

// compareCmd looks at face deltas between two metrics documents.
var compareCmd = &cobra.Command{
	Use:   "compare <base-metrics> <target-metrics>",
	Short: "Compare scores between two metrics documents.",
	Long: `Score two metrics documents under the same config and show how every face moved.

Ideal for:
- Release comparisons - see which faces improved between versions
- Pre-merge checks - ensure a change does not break the gate

The comparison shows before/after scores, deltas and the gate transition.

Examples:
  # Compare last release against the current build
  scorefn compare release.yaml current.yaml

  # Compare under the speed profile and export as JSON
  scorefn compare before.json after.json --profile speed --output json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run comparison", core.ExecuteCompare)
	},
}
