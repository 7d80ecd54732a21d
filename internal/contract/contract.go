// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/NishizukaKoichi/score-function/schema"
)

// ScoreEvaluator turns a transport-level request into a score result.
// This allows the HTTP and MCP surfaces to be tested without the real engine.
type ScoreEvaluator interface {
	// Evaluate resolves the request config over the defaults, decodes the metrics and scores them.
	// A request without metrics fails with ErrMissingMetrics.
	Evaluate(ctx context.Context, req schema.ScoreRequest) (schema.ScoreFunctionResult, error)

	// Defaults returns the configuration that request overrides are merged over.
	Defaults() schema.ScoreFunctionConfig
}
