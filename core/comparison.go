package core

import "github.com/NishizukaKoichi/score-function/schema"

// Compare computes per-face deltas (target minus base) between two results.
// Deltas are rounded like the results themselves so that equal scores give exactly 0.
func Compare(base, target schema.ScoreFunctionResult) schema.ComparisonResult {
	result := schema.ComparisonResult{
		BaseProfile:   base.Profile,
		TargetProfile: target.Profile,
		Faces:         make([]schema.FaceDelta, 0, len(schema.FaceOrder)),
	}

	for _, face := range schema.FaceOrder {
		d := schema.FaceDelta{
			Face:           face,
			Before:         base.Faces.Get(face),
			After:          target.Faces.Get(face),
			BeforeWeighted: base.WeightedFaces.Get(face),
			AfterWeighted:  target.WeightedFaces.Get(face),
		}
		d.Delta = Round4(d.After - d.Before)
		d.DeltaWeighted = Round4(d.AfterWeighted - d.BeforeWeighted)

		switch {
		case d.Delta > 0:
			result.Summary.Improved++
		case d.Delta < 0:
			result.Summary.Regressed++
		}
		result.Faces = append(result.Faces, d)
	}

	result.Summary.BeforeGeo = base.Geo
	result.Summary.AfterGeo = target.Geo
	result.Summary.DeltaGeo = Round4(target.Geo - base.Geo)
	result.Summary.BeforeFinal = base.Final
	result.Summary.AfterFinal = target.Final
	result.Summary.DeltaFinal = Round4(target.Final - base.Final)
	result.Summary.Gate = determineGateStatus(base.GateOK, target.GateOK)

	return result
}

// determineGateStatus returns how the gate outcome moved from base to target.
func determineGateStatus(before, after bool) schema.GateStatus {
	switch {
	case before && after:
		return schema.GatePassing
	case !before && after:
		return schema.GateFixed
	case before && !after:
		return schema.GateBroken
	default:
		return schema.GateFailing
	}
}
