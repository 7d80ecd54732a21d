package schema

import "maps"

// GateConfig holds the pass/fail limits, all on the 0-100 scale.
type GateConfig struct {
	MinEach   float64 `json:"min_each" yaml:"min_each"`     // Per-face minimum on raw scores
	MinGeo    float64 `json:"min_geo" yaml:"min_geo"`       // Minimum weighted geometric mean
	FloorEach float64 `json:"floor_each" yaml:"floor_each"` // Floor applied to weighted faces before aggregation
}

// SpecThresholds holds the spec face penalty trigger points.
type SpecThresholds struct {
	AmbigTau    float64 `json:"ambig_tau" yaml:"ambig_tau"`
	ConflictTau float64 `json:"conflict_tau" yaml:"conflict_tau"`
}

// CodeThresholds holds the code face penalty trigger points.
type CodeThresholds struct {
	CCTau float64 `json:"cc_tau" yaml:"cc_tau"`
}

// TestThresholds holds the test face penalty trigger points.
type TestThresholds struct {
	LowMTTau float64 `json:"low_mt_tau" yaml:"low_mt_tau"`
	LowCVTau float64 `json:"low_cv_tau" yaml:"low_cv_tau"`
}

// PRThresholds holds the pr face penalty trigger points.
type PRThresholds struct {
	RiskTau float64 `json:"risk_tau" yaml:"risk_tau"`
}

// DepThresholds holds the dep face penalty trigger points.
type DepThresholds struct {
	PerfRegTau float64 `json:"perf_reg_tau" yaml:"perf_reg_tau"`
	CFRTau     float64 `json:"cfr_tau" yaml:"cfr_tau"`
}

// ThresholdConfig groups the penalty trigger points of every face that has one.
// The sec face has no logistic penalty.
type ThresholdConfig struct {
	Spec SpecThresholds `json:"spec" yaml:"spec"`
	Code CodeThresholds `json:"code" yaml:"code"`
	Test TestThresholds `json:"test" yaml:"test"`
	PR   PRThresholds   `json:"pr" yaml:"pr"`
	Dep  DepThresholds  `json:"dep" yaml:"dep"`
}

// SpecWeights are the linear coefficients of the spec face.
type SpecWeights struct {
	RC    float64 `json:"RC" yaml:"RC"`
	TR    float64 `json:"TR" yaml:"TR"`
	AMInv float64 `json:"AM_inv" yaml:"AM_inv"`
	CNInv float64 `json:"CN_inv" yaml:"CN_inv"`
	EX    float64 `json:"EX" yaml:"EX"`
}

// CodeWeights are the linear coefficients of the code face.
type CodeWeights struct {
	SA    float64 `json:"SA" yaml:"SA"`
	CCInv float64 `json:"CC_inv" yaml:"CC_inv"`
	DPInv float64 `json:"DP_inv" yaml:"DP_inv"`
	DE    float64 `json:"DE" yaml:"DE"`
	DT    float64 `json:"DT" yaml:"DT"`
	PF    float64 `json:"PF" yaml:"PF"`
}

// TestWeights are the linear coefficients of the test face.
type TestWeights struct {
	CV    float64 `json:"CV" yaml:"CV"`
	MT    float64 `json:"MT" yaml:"MT"`
	FLInv float64 `json:"FL_inv" yaml:"FL_inv"`
	SKInv float64 `json:"SK_inv" yaml:"SK_inv"`
	ST    float64 `json:"ST" yaml:"ST"`
}

// SecWeights are the linear coefficients of the sec face.
type SecWeights struct {
	VV     float64 `json:"VV" yaml:"VV"`
	SE     float64 `json:"SE" yaml:"SE"`
	DPVInv float64 `json:"DPV_inv" yaml:"DPV_inv"`
	AT     float64 `json:"AT" yaml:"AT"`
	ML     float64 `json:"ML" yaml:"ML"`
}

// PRWeights are the linear coefficients of the pr face.
type PRWeights struct {
	RR    float64 `json:"RR" yaml:"RR"`
	RKInv float64 `json:"RK_inv" yaml:"RK_inv"`
	DV    float64 `json:"DV" yaml:"DV"`
	RBInv float64 `json:"RB_inv" yaml:"RB_inv"`
	CI    float64 `json:"CI" yaml:"CI"`
}

// DepWeights are the linear coefficients of the dep face.
type DepWeights struct {
	SR     float64 `json:"SR" yaml:"SR"`
	CFRInv float64 `json:"CFR_inv" yaml:"CFR_inv"`
	MTInv  float64 `json:"MT_inv" yaml:"MT_inv"`
	RBKInv float64 `json:"RBK_inv" yaml:"RBK_inv"`
	PRGInv float64 `json:"PRG_inv" yaml:"PRG_inv"`
	EBInv  float64 `json:"EB_inv" yaml:"EB_inv"`
}

// WeightConfig groups the linear coefficients of every face.
// By convention each face's coefficients sum to 1; this is not enforced.
type WeightConfig struct {
	Spec SpecWeights `json:"spec" yaml:"spec"`
	Code CodeWeights `json:"code" yaml:"code"`
	Test TestWeights `json:"test" yaml:"test"`
	Sec  SecWeights  `json:"sec" yaml:"sec"`
	PR   PRWeights   `json:"pr" yaml:"pr"`
	Dep  DepWeights  `json:"dep" yaml:"dep"`
}

// Sums returns the sum of coefficients per face, in FaceOrder.
func (w WeightConfig) Sums() FaceScores {
	return FaceScores{
		Spec: w.Spec.RC + w.Spec.TR + w.Spec.AMInv + w.Spec.CNInv + w.Spec.EX,
		Code: w.Code.SA + w.Code.CCInv + w.Code.DPInv + w.Code.DE + w.Code.DT + w.Code.PF,
		Test: w.Test.CV + w.Test.MT + w.Test.FLInv + w.Test.SKInv + w.Test.ST,
		Sec:  w.Sec.VV + w.Sec.SE + w.Sec.DPVInv + w.Sec.AT + w.Sec.ML,
		PR:   w.PR.RR + w.PR.RKInv + w.PR.DV + w.PR.RBInv + w.PR.CI,
		Dep:  w.Dep.SR + w.Dep.CFRInv + w.Dep.MTInv + w.Dep.RBKInv + w.Dep.PRGInv + w.Dep.EBInv,
	}
}

// ProfileWeights is a partial set of per-face multipliers. A nil entry means 1.
type ProfileWeights struct {
	Spec *float64 `json:"spec,omitempty" yaml:"spec,omitempty"`
	Code *float64 `json:"code,omitempty" yaml:"code,omitempty"`
	Test *float64 `json:"test,omitempty" yaml:"test,omitempty"`
	Sec  *float64 `json:"sec,omitempty" yaml:"sec,omitempty"`
	PR   *float64 `json:"pr,omitempty" yaml:"pr,omitempty"`
	Dep  *float64 `json:"dep,omitempty" yaml:"dep,omitempty"`
}

// Multiplier returns the multiplier for a face, defaulting to 1.
func (p ProfileWeights) Multiplier(face Face) float64 {
	var v *float64
	switch face {
	case FaceSpec:
		v = p.Spec
	case FaceCode:
		v = p.Code
	case FaceTest:
		v = p.Test
	case FaceSec:
		v = p.Sec
	case FacePR:
		v = p.PR
	case FaceDep:
		v = p.Dep
	}
	if v == nil {
		return 1
	}
	return *v
}

// ScoreFunctionConfig holds every tunable parameter of the score function.
type ScoreFunctionConfig struct {
	Version         int                       `json:"version,omitempty" yaml:"version,omitempty"`
	Profile         string                    `json:"profile,omitempty" yaml:"profile,omitempty"`
	KSteep          *float64                  `json:"k_steep,omitempty" yaml:"k_steep,omitempty"`
	Gate            GateConfig                `json:"gate" yaml:"gate"`
	ExternalWeights map[string]ProfileWeights `json:"external_weights" yaml:"external_weights"`
	Thresholds      ThresholdConfig           `json:"thresholds" yaml:"thresholds"`
	Weights         WeightConfig              `json:"weights" yaml:"weights"`
}

// ProfileName returns the selected profile, defaulting to "sre" when unset.
// An explicit empty string also selects "sre", so it picks up the sre multipliers
// rather than falling back to unit multipliers like an unknown name does.
func (c ScoreFunctionConfig) ProfileName() string {
	if c.Profile == "" {
		return ProfileSRE
	}
	return c.Profile
}

// ProfileWeightsFor returns the multipliers of the selected profile.
// An unknown profile yields the empty set, i.e. every multiplier is 1.
func (c ScoreFunctionConfig) ProfileWeightsFor() ProfileWeights {
	return c.ExternalWeights[c.ProfileName()]
}

// Steepness returns k_steep, defaulting to 14 when unset.
func (c ScoreFunctionConfig) Steepness() float64 {
	if c.KSteep == nil {
		return DefaultKSteep
	}
	return *c.KSteep
}

// Clone returns a copy whose maps and pointers are not shared with c.
func (c ScoreFunctionConfig) Clone() ScoreFunctionConfig {
	clone := c
	if c.KSteep != nil {
		k := *c.KSteep
		clone.KSteep = &k
	}
	if c.ExternalWeights != nil {
		clone.ExternalWeights = make(map[string]ProfileWeights, len(c.ExternalWeights))
		maps.Copy(clone.ExternalWeights, c.ExternalWeights)
	}
	return clone
}

func ptr(v float64) *float64 { return &v }

// DefaultConfig returns a fresh copy of the canonical default configuration.
func DefaultConfig() ScoreFunctionConfig {
	return ScoreFunctionConfig{
		Version: DefaultConfigVersion,
		Profile: ProfileSRE,
		KSteep:  ptr(DefaultKSteep),
		Gate: GateConfig{
			MinEach:   70,
			MinGeo:    80,
			FloorEach: 5,
		},
		ExternalWeights: map[string]ProfileWeights{
			ProfileSRE:   {Spec: ptr(1.0), Code: ptr(1.0), Test: ptr(1.0), Sec: ptr(1.2), PR: ptr(1.0), Dep: ptr(1.2)},
			ProfileSpeed: {Spec: ptr(1.15), Code: ptr(1.15), Test: ptr(1.15), Sec: ptr(0.9), PR: ptr(1.15), Dep: ptr(0.9)},
		},
		Thresholds: ThresholdConfig{
			Spec: SpecThresholds{AmbigTau: 0.6, ConflictTau: 0.6},
			Code: CodeThresholds{CCTau: 0.7},
			Test: TestThresholds{LowMTTau: 0.6, LowCVTau: 0.7},
			PR:   PRThresholds{RiskTau: 0.7},
			Dep:  DepThresholds{PerfRegTau: 0.6, CFRTau: 0.5},
		},
		Weights: WeightConfig{
			Spec: SpecWeights{RC: 0.3, TR: 0.25, AMInv: 0.2, CNInv: 0.15, EX: 0.1},
			Code: CodeWeights{SA: 0.28, CCInv: 0.2, DPInv: 0.12, DE: 0.18, DT: 0.12, PF: 0.1},
			Test: TestWeights{CV: 0.32, MT: 0.32, FLInv: 0.16, SKInv: 0.1, ST: 0.1},
			Sec:  SecWeights{VV: 0.34, SE: 0.2, DPVInv: 0.16, AT: 0.2, ML: 0.1},
			PR:   PRWeights{RR: 0.28, RKInv: 0.22, DV: 0.18, RBInv: 0.12, CI: 0.2},
			Dep:  DepWeights{SR: 0.22, CFRInv: 0.22, MTInv: 0.18, RBKInv: 0.12, PRGInv: 0.16, EBInv: 0.1},
		},
	}
}
