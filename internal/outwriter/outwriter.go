// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteResult prints a score result using the configured output format.
// Breakdowns are rendered only when non-empty.
func (ow *OutWriter) WriteResult(result schema.ScoreFunctionResult, breakdowns []schema.FaceBreakdown, cfg *contract.Config) error {
	return PrintResult(result, breakdowns, cfg)
}

// WriteCheck prints a gate check report using the configured output format.
func (ow *OutWriter) WriteCheck(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCheckResult(result, cfg, duration)
}

// WriteComparison prints per-face deltas using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config) error {
	return PrintComparisonResult(result, cfg)
}

// WriteFaces prints face definitions using the configured output format.
func (ow *OutWriter) WriteFaces(defs []schema.FaceDefinition, scoreCfg schema.ScoreFunctionConfig, cfg *contract.Config) error {
	return PrintFaceDefinitions(defs, scoreCfg, cfg)
}
