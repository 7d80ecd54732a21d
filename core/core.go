// Package core has core logic for face scoring, aggregation and the gate.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/internal/outwriter"
	"github.com/NishizukaKoichi/score-function/schema"
)

// ErrGateFailed is returned by ExecuteCheck when the gate rejects the metrics.
var ErrGateFailed = errors.New("gate failed")

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ResolveRuntimeConfig resolves the score config override of cfg over the defaults,
// then applies the profile and gate overrides from the command line.
// A warning is printed when a face's weights do not sum to 1, and when a
// shallow override replaces the gate without all of its fields.
func ResolveRuntimeConfig(cfg *contract.Config) (schema.ScoreFunctionConfig, error) {
	scoreCfg, err := ResolveConfig(schema.DefaultConfig(), cfg.ScoreOverride, cfg.Merge)
	if err != nil {
		return schema.ScoreFunctionConfig{}, err
	}
	if missing := MissingGateKeys(cfg.ScoreOverride, cfg.Merge); len(missing) > 0 {
		contract.LogWarn("Partial gate override", fmt.Errorf(
			"shallow merge sets gate.%s to 0 and loosens the gate; set them or use --merge deep",
			strings.Join(missing, ", gate.")))
	}
	if cfg.ProfileOverride != "" {
		scoreCfg.Profile = cfg.ProfileOverride
	}
	scoreCfg.Gate = contract.ApplyGateOverride(scoreCfg.Gate, cfg.GateOverride)

	if err := contract.CheckWeightSums(scoreCfg.Weights); err != nil {
		contract.LogWarn("Weights do not sum to 1", err)
	}
	return scoreCfg, nil
}

// ExecuteCompute scores one metrics document and prints the result.
// It serves as the main entry point for the 'compute' command.
func ExecuteCompute(_ context.Context, cfg *contract.Config) error {
	scoreCfg, err := ResolveRuntimeConfig(cfg)
	if err != nil {
		return err
	}
	m, err := contract.LoadMetricsFile(cfg.MetricsPath)
	if err != nil {
		return err
	}

	result := Compute(scoreCfg, m)
	var breakdowns []schema.FaceBreakdown
	if cfg.Explain {
		breakdowns = Explain(scoreCfg, m)
	}
	return outwriter.NewOutWriter().WriteResult(result, breakdowns, cfg)
}

// ExecuteCheck evaluates the gate for one metrics document for CI/CD gating.
// It returns ErrGateFailed when the gate rejects the metrics.
func ExecuteCheck(_ context.Context, cfg *contract.Config) error {
	start := time.Now()

	scoreCfg, err := ResolveRuntimeConfig(cfg)
	if err != nil {
		return err
	}
	m, err := contract.LoadMetricsFile(cfg.MetricsPath)
	if err != nil {
		return err
	}

	result := BuildCheckResult(scoreCfg, m)
	if err := outwriter.NewOutWriter().WriteCheck(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("%w: %d face(s) below %.1f, geo %.4f vs %.1f",
			ErrGateFailed, len(result.FailedFaces), result.Gate.MinEach, result.Geo, result.Gate.MinGeo)
	}
	return nil
}

// ExecuteCompare scores two metrics documents under the same config and prints the deltas.
func ExecuteCompare(_ context.Context, cfg *contract.Config) error {
	if cfg.TargetMetricsPath == "" {
		return errors.New("compare requires a base and a target metrics document")
	}

	scoreCfg, err := ResolveRuntimeConfig(cfg)
	if err != nil {
		return err
	}
	base, err := contract.LoadMetricsFile(cfg.MetricsPath)
	if err != nil {
		return fmt.Errorf("base: %w", err)
	}
	target, err := contract.LoadMetricsFile(cfg.TargetMetricsPath)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	comparison := Compare(Compute(scoreCfg, base), Compute(scoreCfg, target))
	return outwriter.NewOutWriter().WriteComparison(comparison, cfg)
}

// ExecuteFaces prints the formula of every face under the effective config.
// No metrics are read - this is purely informational.
func ExecuteFaces(_ context.Context, cfg *contract.Config) error {
	scoreCfg, err := ResolveRuntimeConfig(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteFaces(FaceDefinitions(scoreCfg), scoreCfg, cfg)
}
