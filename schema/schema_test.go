package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceScoresGetSet(t *testing.T) {
	var s FaceScores
	for i, face := range FaceOrder {
		s.Set(face, float64(i+1))
	}
	for i, face := range FaceOrder {
		assert.InDelta(t, float64(i+1), s.Get(face), 1e-9, "face %s", face)
	}

	s.Set("nope", 42)
	assert.Zero(t, s.Get("nope"))
	assert.Equal(t, FaceScores{Spec: 1, Code: 2, Test: 3, Sec: 4, PR: 5, Dep: 6}, s)
}

func TestFaceOrderMatchesRequiredMetrics(t *testing.T) {
	require.Len(t, FaceOrder, 6)
	for _, face := range FaceOrder {
		_, ok := ValidFaces[face]
		assert.True(t, ok, "face %s should be valid", face)
		assert.NotEmpty(t, RequiredMetrics[face], "face %s should list required metrics", face)
	}
}

func TestProfileWeightsMultiplier(t *testing.T) {
	v := 1.5
	p := ProfileWeights{Code: &v}
	assert.InDelta(t, 1.5, p.Multiplier(FaceCode), 1e-9)
	assert.InDelta(t, 1.0, p.Multiplier(FaceSpec), 1e-9)
	assert.InDelta(t, 1.0, p.Multiplier("nope"), 1e-9)
}

func TestScoreFunctionConfigAccessors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProfileSRE, cfg.ProfileName())
	assert.InDelta(t, DefaultKSteep, cfg.Steepness(), 1e-9)
	assert.InDelta(t, 1.2, cfg.ProfileWeightsFor().Multiplier(FaceSec), 1e-9)

	cfg.Profile = ""
	assert.Equal(t, ProfileSRE, cfg.ProfileName())

	cfg.Profile = "unknown"
	assert.Equal(t, ProfileWeights{}, cfg.ProfileWeightsFor())

	cfg.KSteep = nil
	assert.InDelta(t, DefaultKSteep, cfg.Steepness(), 1e-9)

	zero := 0.0
	cfg.KSteep = &zero
	assert.Zero(t, cfg.Steepness())
}

func TestScoreFunctionConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	require.Equal(t, cfg, clone)

	*clone.KSteep = 3
	clone.ExternalWeights["custom"] = ProfileWeights{}
	clone.Gate.MinEach = 1

	assert.InDelta(t, DefaultKSteep, *cfg.KSteep, 1e-9)
	assert.NotContains(t, cfg.ExternalWeights, "custom")
	assert.InDelta(t, 70.0, cfg.Gate.MinEach, 1e-9)
}

func TestDefaultConfigIsFresh(t *testing.T) {
	a := DefaultConfig()
	a.ExternalWeights[ProfileSRE] = ProfileWeights{}
	*a.KSteep = 1

	b := DefaultConfig()
	assert.InDelta(t, 1.2, b.ExternalWeights[ProfileSRE].Multiplier(FaceSec), 1e-9)
	assert.InDelta(t, DefaultKSteep, *b.KSteep, 1e-9)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sums := DefaultConfig().Weights.Sums()
	for _, face := range FaceOrder {
		assert.InDelta(t, 1.0, sums.Get(face), WeightSumTolerance, "face %s", face)
	}
}

func TestOptionalMetrics(t *testing.T) {
	var m MetricsInput
	assert.Zero(t, m.Sigma())
	assert.Zero(t, m.Sec.Critical())

	sigma, critical := 0.3, 2.0
	m.UncertaintySigma = &sigma
	m.Sec.CriticalCount = &critical
	assert.InDelta(t, 0.3, m.Sigma(), 1e-9)
	assert.Equal(t, 2.0, m.Sec.Critical())
}
