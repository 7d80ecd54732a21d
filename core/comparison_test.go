package core

import (
	"testing"

	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	cfg := schema.DefaultConfig()
	base := Compute(cfg, sampleMetrics())

	t.Run("regression breaks the gate", func(t *testing.T) {
		m := sampleMetrics()
		m.Code.SA = 0.2
		m.UncertaintySigma = floatPtr(0.5)
		target := Compute(cfg, m)

		result := Compare(base, target)
		require.Len(t, result.Faces, len(schema.FaceOrder))
		for i, d := range result.Faces {
			assert.Equal(t, schema.FaceOrder[i], d.Face)
		}

		code := result.Faces[1]
		assert.Equal(t, base.Faces.Code, code.Before)
		assert.Equal(t, target.Faces.Code, code.After)
		assert.InDelta(t, -18.1732, code.Delta, 1e-9)
		assert.InDelta(t, -18.1732, code.DeltaWeighted, 1e-9)
		assert.Equal(t, 0.0, result.Faces[0].Delta)

		assert.Equal(t, 0, result.Summary.Improved)
		assert.Equal(t, 1, result.Summary.Regressed)
		assert.InDelta(t, -3.8577, result.Summary.DeltaGeo, 1e-9)
		assert.InDelta(t, -6.3825, result.Summary.DeltaFinal, 1e-9)
		assert.Equal(t, schema.GateBroken, result.Summary.Gate)
	})

	t.Run("identical results", func(t *testing.T) {
		result := Compare(base, base)
		assert.Equal(t, 0, result.Summary.Improved)
		assert.Equal(t, 0, result.Summary.Regressed)
		assert.Equal(t, 0.0, result.Summary.DeltaGeo)
		assert.Equal(t, schema.GatePassing, result.Summary.Gate)
		assert.Equal(t, schema.ProfileSRE, result.BaseProfile)
		assert.Equal(t, schema.ProfileSRE, result.TargetProfile)
	})

	t.Run("improvement fixes the gate", func(t *testing.T) {
		m := sampleMetrics()
		m.Sec.CriticalCount = floatPtr(2)
		broken := Compute(cfg, m)

		result := Compare(broken, base)
		assert.Equal(t, 1, result.Summary.Improved)
		assert.Greater(t, result.Faces[3].Delta, 0.0)
		assert.Equal(t, schema.GateFixed, result.Summary.Gate)
	})
}

func TestDetermineGateStatus(t *testing.T) {
	assert.Equal(t, schema.GatePassing, determineGateStatus(true, true))
	assert.Equal(t, schema.GateFixed, determineGateStatus(false, true))
	assert.Equal(t, schema.GateBroken, determineGateStatus(true, false))
	assert.Equal(t, schema.GateFailing, determineGateStatus(false, false))
}
