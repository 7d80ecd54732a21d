package core

import (
	"math"

	"github.com/NishizukaKoichi/score-function/schema"
)

// Round4 rounds v to 4 decimal places, half away from zero.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// roundScores rounds every face of s with Round4.
func roundScores(s schema.FaceScores) schema.FaceScores {
	var out schema.FaceScores
	for _, face := range schema.FaceOrder {
		out.Set(face, Round4(s.Get(face)))
	}
	return out
}

// WeightFaces multiplies every raw face by the multiplier of the selected profile.
// An unmatched profile leaves every face unchanged.
func WeightFaces(cfg schema.ScoreFunctionConfig, faces schema.FaceScores) schema.FaceScores {
	profile := cfg.ProfileWeightsFor()
	var weighted schema.FaceScores
	for _, face := range schema.FaceOrder {
		weighted.Set(face, faces.Get(face)*profile.Multiplier(face))
	}
	return weighted
}

// GeometricMean floors every weighted face at floorEach and returns the
// geometric mean of the six faces on the 0-100 scale.
func GeometricMean(weighted schema.FaceScores, floorEach float64) float64 {
	product := 1.0
	for _, face := range schema.FaceOrder {
		product *= math.Max(floorEach, weighted.Get(face)) / 100
	}
	return 100 * math.Pow(product, 1/float64(len(schema.FaceOrder)))
}

// minFace returns the lowest scoring face, preferring the earliest face in FaceOrder on ties.
// A NaN face wins so that it fails every comparison downstream.
func minFace(faces schema.FaceScores) (schema.Face, float64) {
	lowest, score := schema.FaceOrder[0], faces.Get(schema.FaceOrder[0])
	if math.IsNaN(score) {
		return lowest, score
	}
	for _, face := range schema.FaceOrder[1:] {
		v := faces.Get(face)
		if math.IsNaN(v) {
			return face, v
		}
		if v < score {
			lowest, score = face, v
		}
	}
	return lowest, score
}

// gateOK checks the per-face minimum on raw faces and the overall minimum on geo.
func gateOK(gate schema.GateConfig, faces schema.FaceScores, geo float64) bool {
	_, lowest := minFace(faces)
	return lowest >= gate.MinEach && geo >= gate.MinGeo
}

// aggregation holds the unrounded intermediate values of one computation.
type aggregation struct {
	faces    schema.FaceScores
	weighted schema.FaceScores
	geo      float64
	final    float64
}

func aggregate(cfg schema.ScoreFunctionConfig, m schema.MetricsInput) aggregation {
	faces := ComputeFaces(cfg, m)
	weighted := WeightFaces(cfg, faces)
	geo := GeometricMean(weighted, cfg.Gate.FloorEach)
	return aggregation{
		faces:    faces,
		weighted: weighted,
		geo:      geo,
		final:    geo * (1 - schema.UncertaintyDiscount*Clip(m.Sigma())),
	}
}

// Compute scores a set of metrics under a resolved configuration.
// It never fails: out-of-range metrics are clipped and the config is used as given.
func Compute(cfg schema.ScoreFunctionConfig, m schema.MetricsInput) schema.ScoreFunctionResult {
	agg := aggregate(cfg, m)
	return schema.ScoreFunctionResult{
		Faces:         roundScores(agg.faces),
		WeightedFaces: roundScores(agg.weighted),
		Geo:           Round4(agg.geo),
		Final:         Round4(agg.final),
		GateOK:        gateOK(cfg.Gate, agg.faces, agg.geo),
		Profile:       cfg.ProfileName(),
	}
}
