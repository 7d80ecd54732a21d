package core

import (
	"math"

	"github.com/NishizukaKoichi/score-function/schema"
)

// Penalty scales per face. These are part of the scoring model, not the tunable config.
const (
	specAmbiguityScale = 0.3
	specConflictScale  = 0.3
	codeComplexScale   = 0.4
	testMutationScale  = 0.5
	testCoverageScale  = 0.3
	prRiskScale        = 0.4
	depPerfRegScale    = 0.5
	depFailureScale    = 0.3
)

// Clip bounds v to [0,1]. NaN is passed through unchanged.
func Clip(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Logistic is a smooth step centered on tau with steepness k.
func Logistic(x, tau, k float64) float64 {
	return 1 / (1 + math.Exp(-k*(x-tau)))
}

// Penalty returns a multiplier in (1-scale, 1] that drops as value crosses tau.
func Penalty(scale, value, tau, k float64) float64 {
	return 1 - scale*Logistic(value, tau, k)
}

// direct builds a linear term that rewards a high metric.
func direct(metric string, weight, raw float64) schema.LinearTerm {
	v := Clip(raw)
	return schema.LinearTerm{Metric: metric, Key: metric, Weight: weight, Value: v, Contribution: 100 * weight * v}
}

// inverse builds a linear term that consumes the complement of a risk metric.
func inverse(metric, key string, weight, raw float64) schema.LinearTerm {
	v := 1 - Clip(raw)
	return schema.LinearTerm{Metric: metric, Key: key, Weight: weight, Inverse: true, Value: v, Contribution: 100 * weight * v}
}

// logistic builds a smooth penalty term evaluated on value.
func logistic(input string, scale, value, tau, k float64) schema.PenaltyTerm {
	return schema.PenaltyTerm{
		Input:  input,
		Kind:   schema.LogisticPenalty,
		Value:  value,
		Tau:    tau,
		Scale:  scale,
		Factor: Penalty(scale, value, tau, k),
	}
}

// criticalCut builds the hard security cut. It applies when at least one critical finding exists.
func criticalCut(count float64) schema.PenaltyTerm {
	factor := 1.0
	if count >= 1 {
		factor = schema.CriticalCutFactor
	}
	return schema.PenaltyTerm{
		Input:  "critical_count",
		Kind:   schema.CriticalCut,
		Value:  count,
		Tau:    1,
		Scale:  1 - schema.CriticalCutFactor,
		Factor: factor,
	}
}

// newBreakdown sums the linear terms in order and multiplies the penalties in order.
func newBreakdown(face schema.Face, terms []schema.LinearTerm, penalties []schema.PenaltyTerm) schema.FaceBreakdown {
	var sum float64
	for _, t := range terms {
		sum += t.Weight * t.Value
	}
	linear := 100 * sum

	factor := 1.0
	for _, p := range penalties {
		factor *= p.Factor
	}

	return schema.FaceBreakdown{
		Face:      face,
		Terms:     terms,
		Linear:    linear,
		Penalties: penalties,
		Factor:    factor,
		Score:     linear * factor,
	}
}

func explainSpec(cfg schema.ScoreFunctionConfig, m schema.SpecMetrics, k float64) schema.FaceBreakdown {
	w, th := cfg.Weights.Spec, cfg.Thresholds.Spec
	return newBreakdown(schema.FaceSpec,
		[]schema.LinearTerm{
			direct("RC", w.RC, m.RC),
			direct("TR", w.TR, m.TR),
			inverse("AM", "AM_inv", w.AMInv, m.AM),
			inverse("CN", "CN_inv", w.CNInv, m.CN),
			direct("EX", w.EX, m.EX),
		},
		[]schema.PenaltyTerm{
			logistic("AM", specAmbiguityScale, Clip(m.AM), th.AmbigTau, k),
			logistic("CN", specConflictScale, Clip(m.CN), th.ConflictTau, k),
		},
	)
}

func explainCode(cfg schema.ScoreFunctionConfig, m schema.CodeMetrics, k float64) schema.FaceBreakdown {
	w, th := cfg.Weights.Code, cfg.Thresholds.Code
	return newBreakdown(schema.FaceCode,
		[]schema.LinearTerm{
			direct("SA", w.SA, m.SA),
			inverse("CC", "CC_inv", w.CCInv, m.CC),
			inverse("DP", "DP_inv", w.DPInv, m.DP),
			direct("DE", w.DE, m.DE),
			direct("DT", w.DT, m.DT),
			direct("PF", w.PF, m.PF),
		},
		[]schema.PenaltyTerm{
			logistic("CC", codeComplexScale, Clip(m.CC), th.CCTau, k),
		},
	)
}

// explainTest penalizes low mutation and low coverage, so the penalties read the complements.
func explainTest(cfg schema.ScoreFunctionConfig, m schema.TestMetrics, k float64) schema.FaceBreakdown {
	w, th := cfg.Weights.Test, cfg.Thresholds.Test
	return newBreakdown(schema.FaceTest,
		[]schema.LinearTerm{
			direct("CV", w.CV, m.CV),
			direct("MT", w.MT, m.MT),
			inverse("FL", "FL_inv", w.FLInv, m.FL),
			inverse("SK", "SK_inv", w.SKInv, m.SK),
			direct("ST", w.ST, m.ST),
		},
		[]schema.PenaltyTerm{
			logistic("1-MT", testMutationScale, 1-Clip(m.MT), th.LowMTTau, k),
			logistic("1-CV", testCoverageScale, 1-Clip(m.CV), th.LowCVTau, k),
		},
	)
}

// explainSec has no logistic penalty. A critical finding cuts the linear score to a quarter.
func explainSec(cfg schema.ScoreFunctionConfig, m schema.SecMetrics) schema.FaceBreakdown {
	w := cfg.Weights.Sec
	return newBreakdown(schema.FaceSec,
		[]schema.LinearTerm{
			inverse("CVSS_sum", "VV", w.VV, m.CVSSSum),
			direct("SE", w.SE, m.SE),
			inverse("dep_vulns", "DPV_inv", w.DPVInv, m.DepVulns),
			direct("AT", w.AT, m.AT),
			direct("ML", w.ML, m.ML),
		},
		[]schema.PenaltyTerm{
			criticalCut(m.Critical()),
		},
	)
}

func explainPR(cfg schema.ScoreFunctionConfig, m schema.PRMetrics, k float64) schema.FaceBreakdown {
	w, th := cfg.Weights.PR, cfg.Thresholds.PR
	return newBreakdown(schema.FacePR,
		[]schema.LinearTerm{
			direct("RR", w.RR, m.RR),
			inverse("risk", "RK_inv", w.RKInv, m.Risk),
			direct("DV", w.DV, m.DV),
			inverse("RB", "RB_inv", w.RBInv, m.RB),
			direct("CI", w.CI, m.CI),
		},
		[]schema.PenaltyTerm{
			logistic("risk", prRiskScale, Clip(m.Risk), th.RiskTau, k),
		},
	)
}

func explainDep(cfg schema.ScoreFunctionConfig, m schema.DepMetrics, k float64) schema.FaceBreakdown {
	w, th := cfg.Weights.Dep, cfg.Thresholds.Dep
	return newBreakdown(schema.FaceDep,
		[]schema.LinearTerm{
			direct("SR", w.SR, m.SR),
			inverse("CFR", "CFR_inv", w.CFRInv, m.CFR),
			inverse("MT", "MT_inv", w.MTInv, m.MT),
			inverse("RBK", "RBK_inv", w.RBKInv, m.RBK),
			inverse("PRG", "PRG_inv", w.PRGInv, m.PRG),
			inverse("EB", "EB_inv", w.EBInv, m.EB),
		},
		[]schema.PenaltyTerm{
			logistic("PRG", depPerfRegScale, Clip(m.PRG), th.PerfRegTau, k),
			logistic("CFR", depFailureScale, Clip(m.CFR), th.CFRTau, k),
		},
	)
}

// Explain returns the per-face breakdown in FaceOrder. Values are not rounded.
func Explain(cfg schema.ScoreFunctionConfig, m schema.MetricsInput) []schema.FaceBreakdown {
	k := cfg.Steepness()
	return []schema.FaceBreakdown{
		explainSpec(cfg, m.Spec, k),
		explainCode(cfg, m.Code, k),
		explainTest(cfg, m.Test, k),
		explainSec(cfg, m.Sec),
		explainPR(cfg, m.PR, k),
		explainDep(cfg, m.Dep, k),
	}
}

// ComputeFaces returns the raw, unrounded score of every face.
func ComputeFaces(cfg schema.ScoreFunctionConfig, m schema.MetricsInput) schema.FaceScores {
	var faces schema.FaceScores
	for _, b := range Explain(cfg, m) {
		faces.Set(b.Face, b.Score)
	}
	return faces
}
