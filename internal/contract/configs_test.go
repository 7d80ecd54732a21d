package contract

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, for tests to tweak.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Precision:       DefaultPrecision,
		Output:          "text",
		Color:           "no",
		Merge:           "shallow",
		Addr:            ":9000",
		MaxBodyBytes:    DefaultMaxBodyBytes,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name: "parquet with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "result.parquet"
			},
		},
		{
			name:        "precision too low",
			mutate:      func(in *ConfigRawInput) { in.Precision = 0 },
			expectError: true,
		},
		{
			name:        "precision too high",
			mutate:      func(in *ConfigRawInput) { in.Precision = 5 },
			expectError: true,
		},
		{
			name:        "invalid merge mode",
			mutate:      func(in *ConfigRawInput) { in.Merge = "recursive" },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "gate override out of range",
			mutate:      func(in *ConfigRawInput) { in.GateOverrideStr = "min_each:120" },
			expectError: true,
		},
		{
			name:        "gate override unknown field",
			mutate:      func(in *ConfigRawInput) { in.GateOverrideStr = "max_each:10" },
			expectError: true,
		},
		{
			name:        "zero body limit",
			mutate:      func(in *ConfigRawInput) { in.MaxBodyBytes = 0 },
			expectError: true,
		},
		{
			name:        "negative timeout",
			mutate:      func(in *ConfigRawInput) { in.ReadTimeout = -time.Second },
			expectError: true,
		},
		{
			name:        "invalid log level",
			mutate:      func(in *ConfigRawInput) { in.LogLevel = "verbose" },
			expectError: true,
		},
		{
			name:        "invalid log format",
			mutate:      func(in *ConfigRawInput) { in.LogFormat = "xml" },
			expectError: true,
		},
		{
			name:        "missing score config file",
			mutate:      func(in *ConfigRawInput) { in.ScoreConfig = "does-not-exist.yaml" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidatePopulatesConfig(t *testing.T) {
	dir := t.TempDir()
	scorePath := filepath.Join(dir, "score.yaml")
	require.NoError(t, os.WriteFile(scorePath, []byte("profile: speed\ngate:\n  min_each: 60\n"), 0o644))

	input := validInput()
	input.MetricsPathStr = " metrics.json "
	input.ScoreConfig = scorePath
	input.Profile = "sre"
	input.Merge = "DEEP"
	input.Output = "JSON"
	input.Explain = true
	input.GateOverrideStr = "min_geo:75"
	input.LogLevel = "debug"
	input.LogFormat = ""
	input.Addr = ""
	input.ServiceName = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "metrics.json", cfg.MetricsPath)
	assert.Equal(t, schema.MergeDeep, cfg.Merge)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.True(t, cfg.Explain)
	assert.False(t, cfg.UseColors)
	assert.Equal(t, "sre", cfg.ProfileOverride)
	assert.Equal(t, map[string]float64{"min_geo": 75}, cfg.GateOverride)
	assert.Equal(t, "speed", cfg.ScoreOverride["profile"])
	assert.Equal(t, map[string]any{"min_each": 60}, cfg.ScoreOverride["gate"])
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
}

func TestParseGateOverrideString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[string]float64
		expectError bool
	}{
		{
			name:     "empty string",
			input:    "",
			expected: map[string]float64{},
		},
		{
			name:     "all fields",
			input:    "min_each:70,min_geo:80,floor_each:5",
			expected: map[string]float64{"min_each": 70, "min_geo": 80, "floor_each": 5},
		},
		{
			name:     "whitespace and case",
			input:    " MIN_EACH : 65.5 , ,min_geo:81",
			expected: map[string]float64{"min_each": 65.5, "min_geo": 81},
		},
		{
			name:        "missing value",
			input:       "min_each",
			expectError: true,
		},
		{
			name:        "non numeric",
			input:       "min_each:high",
			expectError: true,
		},
		{
			name:        "unknown field",
			input:       "min_face:10",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseGateOverrideString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestApplyGateOverride(t *testing.T) {
	gate := schema.GateConfig{MinEach: 70, MinGeo: 80, FloorEach: 5}

	assert.Equal(t, gate, ApplyGateOverride(gate, nil))
	assert.Equal(t,
		schema.GateConfig{MinEach: 50, MinGeo: 80, FloorEach: 1},
		ApplyGateOverride(gate, map[string]float64{"min_each": 50, "floor_each": 1}),
	)
}

func TestParseMergeMode(t *testing.T) {
	mode, err := ParseMergeMode("")
	require.NoError(t, err)
	assert.Equal(t, schema.MergeShallow, mode)

	mode, err = ParseMergeMode(" Deep ")
	require.NoError(t, err)
	assert.Equal(t, schema.MergeDeep, mode)

	_, err = ParseMergeMode("none")
	assert.Error(t, err)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "scorefn"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "scorefn", profile.Prefix)
}
