package core

import (
	"context"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("scorefn/core")
	meter  = otel.GetMeterProvider().Meter("scorefn/core")
)

// Engine evaluates transport-level score requests against a fixed set of defaults.
// It is safe for concurrent use: every call works on its own copy of the config.
type Engine struct {
	defaults schema.ScoreFunctionConfig
	merge    schema.MergeMode
}

// NewEngine creates an engine that merges request overrides over defaults using merge.
func NewEngine(defaults schema.ScoreFunctionConfig, merge schema.MergeMode) *Engine {
	if merge == "" {
		merge = schema.MergeShallow
	}
	return &Engine{defaults: defaults.Clone(), merge: merge}
}

// Defaults returns a copy of the configuration overrides are merged over.
func (e *Engine) Defaults() schema.ScoreFunctionConfig {
	return e.defaults.Clone()
}

// Evaluate resolves the request config, decodes the metrics and computes the score.
// The metrics presence check comes first so that a missing payload is reported
// even when the config override is also malformed.
func (e *Engine) Evaluate(ctx context.Context, req schema.ScoreRequest) (schema.ScoreFunctionResult, error) {
	ctx, span := tracer.Start(ctx, "scorefn.evaluate")
	defer span.End()

	result, err := e.evaluate(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return schema.ScoreFunctionResult{}, err
	}

	attrs := []attribute.KeyValue{
		attribute.String("scorefn.profile", result.Profile),
		attribute.Bool("scorefn.gate_ok", result.GateOK),
	}
	span.SetAttributes(append(attrs, attribute.Float64("scorefn.final", result.Final))...)
	if counter, err := meter.Int64Counter("scorefn.evaluations"); err == nil {
		counter.Add(ctx, 1, otelmetric.WithAttributes(attrs...))
	}
	return result, nil
}

func (e *Engine) evaluate(req schema.ScoreRequest) (schema.ScoreFunctionResult, error) {
	if req.Metrics == nil {
		return schema.ScoreFunctionResult{}, contract.ErrMissingMetrics
	}
	cfg, err := ResolveConfig(e.defaults, req.Config, e.merge)
	if err != nil {
		return schema.ScoreFunctionResult{}, err
	}
	m, err := contract.DecodeMetrics(req.Metrics)
	if err != nil {
		return schema.ScoreFunctionResult{}, err
	}
	return Compute(cfg, m), nil
}
