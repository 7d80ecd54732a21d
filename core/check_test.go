package core

import (
	"math"
	"testing"

	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCheckResult(t *testing.T) {
	cfg := schema.DefaultConfig()

	t.Run("passing", func(t *testing.T) {
		result := BuildCheckResult(cfg, sampleMetrics())
		assert.True(t, result.Passed)
		assert.True(t, result.GeoPassed)
		assert.Empty(t, result.FailedFaces)
		assert.NotNil(t, result.FailedFaces)
		assert.Equal(t, schema.FaceCode, result.MinFace)
		assert.InDelta(t, 79.0833, result.MinScore, 1e-9)
		assert.InDelta(t, 90.5895, result.Geo, 1e-9)
		assert.InDelta(t, 88.7777, result.Final, 1e-9)
		assert.Equal(t, cfg.Gate, result.Gate)
	})

	t.Run("failing face", func(t *testing.T) {
		m := sampleMetrics()
		m.Sec.CriticalCount = floatPtr(1)
		result := BuildCheckResult(cfg, m)
		assert.False(t, result.Passed)
		assert.False(t, result.GeoPassed)
		assert.Equal(t, schema.FaceSec, result.MinFace)
		require.Len(t, result.FailedFaces, 1)
		assert.Equal(t, schema.CheckFailedFace{Face: schema.FaceSec, Score: 21.7, Threshold: 70}, result.FailedFaces[0])
	})

	t.Run("geo only", func(t *testing.T) {
		c := schema.DefaultConfig()
		c.Profile = "nope"
		c.Gate.MinGeo = 90
		result := BuildCheckResult(c, sampleMetrics())
		assert.False(t, result.Passed)
		assert.False(t, result.GeoPassed)
		assert.Empty(t, result.FailedFaces)
	})

	t.Run("nan face is reported", func(t *testing.T) {
		m := sampleMetrics()
		m.PR.CI = math.NaN()
		result := BuildCheckResult(cfg, m)
		assert.False(t, result.Passed)
		require.Len(t, result.FailedFaces, 1)
		assert.Equal(t, schema.FacePR, result.FailedFaces[0].Face)
	})

	t.Run("agrees with compute", func(t *testing.T) {
		for _, sa := range []float64{0, 0.2, 0.5, 0.85, 1} {
			m := sampleMetrics()
			m.Code.SA = sa
			assert.Equal(t, Compute(cfg, m).GateOK, BuildCheckResult(cfg, m).Passed, "SA=%v", sa)
		}
	})
}
