package core

import "github.com/NishizukaKoichi/score-function/schema"

// BuildCheckResult explains the gate decision for a set of metrics.
// Passed always agrees with Compute(cfg, m).GateOK.
func BuildCheckResult(cfg schema.ScoreFunctionConfig, m schema.MetricsInput) schema.CheckResult {
	agg := aggregate(cfg, m)
	lowest, lowestScore := minFace(agg.faces)
	result := schema.CheckResult{
		Passed:      gateOK(cfg.Gate, agg.faces, agg.geo),
		Profile:     cfg.ProfileName(),
		Gate:        cfg.Gate,
		MinFace:     lowest,
		MinScore:    Round4(lowestScore),
		Geo:         Round4(agg.geo),
		GeoPassed:   agg.geo >= cfg.Gate.MinGeo,
		Final:       Round4(agg.final),
		FailedFaces: []schema.CheckFailedFace{},
	}

	for _, face := range schema.FaceOrder {
		if score := agg.faces.Get(face); !(score >= cfg.Gate.MinEach) {
			result.FailedFaces = append(result.FailedFaces, schema.CheckFailedFace{
				Face:      face,
				Score:     Round4(score),
				Threshold: cfg.Gate.MinEach,
			})
		}
	}

	return result
}
