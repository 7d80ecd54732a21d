package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullMetrics returns a generic metrics object with every required key set.
func fullMetrics() map[string]any {
	return map[string]any{
		"spec": map[string]any{"RC": 0.9, "TR": 0.8, "AM": 0.1, "CN": 0.05, "EX": 0.7},
		"code": map[string]any{"SA": 0.85, "CC": 0.3, "DP": 0.1, "DE": 0.8, "DT": 0.6, "PF": 0.9},
		"test": map[string]any{"CV": 0.8, "MT": 0.7, "FL": 0.02, "SK": 0.01, "ST": 0.95},
		"sec":  map[string]any{"CVSS_sum": 0.1, "SE": 0.9, "dep_vulns": 0.05, "AT": 0.8, "ML": 0.7},
		"pr":   map[string]any{"RR": 0.9, "risk": 0.2, "DV": 0.8, "RB": 0.05, "CI": 0.97},
		"dep":  map[string]any{"SR": 0.98, "CFR": 0.1, "MT": 0.2, "RBK": 0.05, "PRG": 0.1, "EB": 0.2},
	}
}

func TestDecodeMetrics(t *testing.T) {
	raw := fullMetrics()
	raw["sec"].(map[string]any)["critical_count"] = 2
	raw["uncertainty_sigma"] = 0.25
	raw["extra"] = "ignored"

	m, err := DecodeMetrics(raw)
	require.NoError(t, err)

	assert.Equal(t, 0.9, m.Spec.RC)
	assert.Equal(t, 0.3, m.Code.CC)
	assert.Equal(t, 0.7, m.Test.MT)
	assert.Equal(t, 0.1, m.Sec.CVSSSum)
	assert.Equal(t, 0.05, m.Sec.DepVulns)
	assert.Equal(t, 0.2, m.PR.Risk)
	assert.Equal(t, 0.2, m.Dep.EB)
	assert.Equal(t, 2.0, m.Sec.Critical())
	assert.Equal(t, 0.25, m.Sigma())
}

func TestDecodeMetricsOptionalFields(t *testing.T) {
	m, err := DecodeMetrics(fullMetrics())
	require.NoError(t, err)

	assert.Nil(t, m.Sec.CriticalCount)
	assert.Nil(t, m.UncertaintySigma)
	assert.Equal(t, 0.0, m.Sec.Critical())
	assert.Equal(t, 0.0, m.Sigma())
}

func TestDecodeMetricsErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any) map[string]any
		expected string
	}{
		{
			name:     "nil payload",
			mutate:   func(map[string]any) map[string]any { return nil },
			expected: ErrMissingMetrics.Error(),
		},
		{
			name: "missing face",
			mutate: func(raw map[string]any) map[string]any {
				delete(raw, "test")
				return raw
			},
			expected: `missing face "test" in metrics`,
		},
		{
			name: "null face",
			mutate: func(raw map[string]any) map[string]any {
				raw["spec"] = nil
				return raw
			},
			expected: `missing face "spec" in metrics`,
		},
		{
			name: "face not an object",
			mutate: func(raw map[string]any) map[string]any {
				raw["pr"] = 5.0
				return raw
			},
			expected: `face "pr" in metrics must be an object, got float64`,
		},
		{
			name: "missing metric",
			mutate: func(raw map[string]any) map[string]any {
				delete(raw["sec"].(map[string]any), "dep_vulns")
				return raw
			},
			expected: `missing metric "sec.dep_vulns"`,
		},
		{
			name: "first gap in face order wins",
			mutate: func(raw map[string]any) map[string]any {
				delete(raw["dep"].(map[string]any), "EB")
				delete(raw["code"].(map[string]any), "SA")
				return raw
			},
			expected: `missing metric "code.SA"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMetrics(tt.mutate(fullMetrics()))
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestDecodeMetricsRejectsNonNumeric(t *testing.T) {
	raw := fullMetrics()
	raw["code"].(map[string]any)["CC"] = "high"

	_, err := DecodeMetrics(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid metrics")
}

func TestLoadMetricsFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "metrics.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "spec": {"RC": 1, "TR": 1, "AM": 0, "CN": 0, "EX": 1},
  "code": {"SA": 1, "CC": 0, "DP": 0, "DE": 1, "DT": 1, "PF": 1},
  "test": {"CV": 1, "MT": 1, "FL": 0, "SK": 0, "ST": 1},
  "sec": {"CVSS_sum": 0, "SE": 1, "dep_vulns": 0, "AT": 1, "ML": 1, "critical_count": 1},
  "pr": {"RR": 1, "risk": 0, "DV": 1, "RB": 0, "CI": 1},
  "dep": {"SR": 1, "CFR": 0, "MT": 0, "RBK": 0, "PRG": 0, "EB": 0},
  "uncertainty_sigma": 0.5
	}`), 0o644))

	m, err := LoadMetricsFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Spec.RC)
	assert.Equal(t, 1.0, m.Sec.Critical())
	assert.Equal(t, 0.5, m.Sigma())

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadMetricsFile("")
		assert.ErrorIs(t, err, ErrMissingMetrics)
	})

	t.Run("empty document", func(t *testing.T) {
		emptyPath := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(emptyPath, nil, 0o644))
		_, err := LoadMetricsFile(emptyPath)
		assert.ErrorIs(t, err, ErrMissingMetrics)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMetricsFile(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed document", func(t *testing.T) {
		badPath := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(badPath, []byte(`{"spec": [`), 0o644))
		_, err := LoadMetricsFile(badPath)
		assert.Error(t, err)
	})
}

func TestLoadScoreConfigFile(t *testing.T) {
	override, err := LoadScoreConfigFile("")
	require.NoError(t, err)
	assert.Nil(t, override)

	path := filepath.Join(t.TempDir(), "score.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profile": "speed", "k_steep": 10}`), 0o644))

	override, err = LoadScoreConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "speed", override["profile"])
	assert.Equal(t, 10, override["k_steep"])
}

func TestCheckWeightSums(t *testing.T) {
	w := schema.DefaultConfig().Weights
	assert.NoError(t, CheckWeightSums(w))

	w.Code.SA = 0.5
	w.Dep.SR = 0
	err := CheckWeightSums(w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "face code sum to 1.220")
	assert.Contains(t, err.Error(), "face dep sum to 0.780")
	assert.NotContains(t, err.Error(), "face spec")
}
