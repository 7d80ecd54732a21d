package core

import (
	"context"
	"sync"
	"testing"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineEvaluate(t *testing.T) {
	engine := NewEngine(schema.DefaultConfig(), "")
	ctx := context.Background()

	t.Run("default config", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, schema.ScoreRequest{Metrics: sampleMetricsMap()})
		require.NoError(t, err)
		assert.Equal(t, Compute(schema.DefaultConfig(), sampleMetrics()), result)
		assert.InDelta(t, 90.5895, result.Geo, 1e-4)
	})

	t.Run("config override", func(t *testing.T) {
		req := schema.ScoreRequest{
			Config:  map[string]any{"profile": "speed"},
			Metrics: sampleMetricsMap(),
		}
		result, err := engine.Evaluate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, schema.ProfileSpeed, result.Profile)
		assert.InDelta(t, 90.3435, result.Geo, 1e-4)
	})

	t.Run("missing metrics wins over bad config", func(t *testing.T) {
		_, err := engine.Evaluate(ctx, schema.ScoreRequest{Config: map[string]any{"gate": "x"}})
		assert.ErrorIs(t, err, contract.ErrMissingMetrics)
	})

	t.Run("bad config", func(t *testing.T) {
		req := schema.ScoreRequest{Config: map[string]any{"gate": "x"}, Metrics: sampleMetricsMap()}
		_, err := engine.Evaluate(ctx, req)
		require.Error(t, err)
		assert.NotErrorIs(t, err, contract.ErrMissingMetrics)
	})

	t.Run("incomplete metrics", func(t *testing.T) {
		metrics := sampleMetricsMap()
		delete(metrics, "dep")
		_, err := engine.Evaluate(ctx, schema.ScoreRequest{Metrics: metrics})
		assert.EqualError(t, err, `missing face "dep" in metrics`)
	})
}

func TestEngineCriticalCountMagnitude(t *testing.T) {
	engine := NewEngine(schema.DefaultConfig(), "")

	tests := []struct {
		name     string
		critical any
		sec      float64
		gateOK   bool
	}{
		{"one", 1.0, 21.7, false},
		{"beyond int64", 1e19, 21.7, false},
		{"huge", 1e300, 21.7, false},
		{"fraction below one", 0.5, 86.8, true},
		{"zero", 0, 86.8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := sampleMetricsMap()
			metrics["sec"].(map[string]any)["critical_count"] = tt.critical
			result, err := engine.Evaluate(context.Background(), schema.ScoreRequest{Metrics: metrics})
			require.NoError(t, err)
			assert.InDelta(t, tt.sec, result.Faces.Sec, 1e-9)
			assert.Equal(t, tt.gateOK, result.GateOK)
		})
	}
}

func TestEngineDeepMerge(t *testing.T) {
	engine := NewEngine(schema.DefaultConfig(), schema.MergeDeep)
	req := schema.ScoreRequest{
		Config:  map[string]any{"gate": map[string]any{"min_geo": 95}},
		Metrics: sampleMetricsMap(),
	}
	result, err := engine.Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.GateOK)

	shallow := NewEngine(schema.DefaultConfig(), schema.MergeShallow)
	result, err = shallow.Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.GateOK)

	req.Config = map[string]any{"gate": map[string]any{"min_geo": 50}}
	result, err = shallow.Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.GateOK, "shallow gate zeroes min_each")
}

func TestEngineDefaultsAreCopies(t *testing.T) {
	defaults := schema.DefaultConfig()
	engine := NewEngine(defaults, schema.MergeShallow)

	defaults.ExternalWeights["sre"] = schema.ProfileWeights{}
	got := engine.Defaults()
	assert.Equal(t, schema.DefaultConfig(), got)

	got.ExternalWeights["speed"] = schema.ProfileWeights{}
	assert.Equal(t, schema.DefaultConfig(), engine.Defaults())
}

func TestEngineConcurrentEvaluate(t *testing.T) {
	engine := NewEngine(schema.DefaultConfig(), schema.MergeDeep)
	want := Compute(schema.DefaultConfig(), sampleMetrics())

	var wg sync.WaitGroup
	results := make([]schema.ScoreFunctionResult, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Evaluate(context.Background(), schema.ScoreRequest{
				Config:  map[string]any{"k_steep": 14},
				Metrics: sampleMetricsMap(),
			})
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
