// Package schema has configs, models and global variables for all parts of scorefn.
package schema

// SpecMetrics holds the specification-quality measurements.
type SpecMetrics struct {
	RC float64 `json:"RC" yaml:"RC"` // Requirement coverage
	TR float64 `json:"TR" yaml:"TR"` // Traceability
	AM float64 `json:"AM" yaml:"AM"` // Ambiguity (risk)
	CN float64 `json:"CN" yaml:"CN"` // Conflicts (risk)
	EX float64 `json:"EX" yaml:"EX"` // Examples
}

// CodeMetrics holds the code-quality measurements.
type CodeMetrics struct {
	SA float64 `json:"SA" yaml:"SA"` // Static analysis health
	CC float64 `json:"CC" yaml:"CC"` // Cyclomatic complexity (risk)
	DP float64 `json:"DP" yaml:"DP"` // Duplication (risk)
	DE float64 `json:"DE" yaml:"DE"` // Design conformance
	DT float64 `json:"DT" yaml:"DT"` // Documentation
	PF float64 `json:"PF" yaml:"PF"` // Performance
}

// TestMetrics holds the test-quality measurements.
type TestMetrics struct {
	CV float64 `json:"CV" yaml:"CV"` // Coverage
	MT float64 `json:"MT" yaml:"MT"` // Mutation score
	FL float64 `json:"FL" yaml:"FL"` // Flakiness (risk)
	SK float64 `json:"SK" yaml:"SK"` // Skipped ratio (risk)
	ST float64 `json:"ST" yaml:"ST"` // Stability
}

// SecMetrics holds the security measurements.
// CVSSSum and CriticalCount are severity figures rather than ratios.
type SecMetrics struct {
	CVSSSum       float64  `json:"CVSS_sum" yaml:"CVSS_sum"`
	SE            float64  `json:"SE" yaml:"SE"`
	DepVulns      float64  `json:"dep_vulns" yaml:"dep_vulns"`
	AT            float64  `json:"AT" yaml:"AT"`
	ML            float64  `json:"ML" yaml:"ML"`
	CriticalCount *float64 `json:"critical_count,omitempty" yaml:"critical_count,omitempty"`
}

// PRMetrics holds the pull-request risk measurements.
type PRMetrics struct {
	RR   float64 `json:"RR" yaml:"RR"`     // Review rate
	Risk float64 `json:"risk" yaml:"risk"` // Change risk (risk)
	DV   float64 `json:"DV" yaml:"DV"`     // Description validity
	RB   float64 `json:"RB" yaml:"RB"`     // Rollback ratio (risk)
	CI   float64 `json:"CI" yaml:"CI"`     // CI pass rate
}

// DepMetrics holds the deployment risk measurements.
type DepMetrics struct {
	SR  float64 `json:"SR" yaml:"SR"`   // Success rate
	CFR float64 `json:"CFR" yaml:"CFR"` // Change failure rate (risk)
	MT  float64 `json:"MT" yaml:"MT"`   // Mean time to restore (risk)
	RBK float64 `json:"RBK" yaml:"RBK"` // Rollbacks (risk)
	PRG float64 `json:"PRG" yaml:"PRG"` // Performance regression (risk)
	EB  float64 `json:"EB" yaml:"EB"`   // Error budget burn (risk)
}

// MetricsInput is the caller-supplied set of raw measurements, one group per face.
type MetricsInput struct {
	Spec             SpecMetrics `json:"spec" yaml:"spec"`
	Code             CodeMetrics `json:"code" yaml:"code"`
	Test             TestMetrics `json:"test" yaml:"test"`
	Sec              SecMetrics  `json:"sec" yaml:"sec"`
	PR               PRMetrics   `json:"pr" yaml:"pr"`
	Dep              DepMetrics  `json:"dep" yaml:"dep"`
	UncertaintySigma *float64    `json:"uncertainty_sigma,omitempty" yaml:"uncertainty_sigma,omitempty"`
}

// Sigma returns the uncertainty sigma, or 0 when it was not supplied.
func (m MetricsInput) Sigma() float64 {
	if m.UncertaintySigma == nil {
		return 0
	}
	return *m.UncertaintySigma
}

// Critical returns the number of critical vulnerabilities, or 0 when it was not supplied.
// The count is kept as a float so that any magnitude compares correctly against 1.
func (m SecMetrics) Critical() float64 {
	if m.CriticalCount == nil {
		return 0
	}
	return *m.CriticalCount
}

// FaceScores holds one number per face. Field order matches FaceOrder so that
// serialized output keeps the canonical face order.
type FaceScores struct {
	Spec float64 `json:"spec" yaml:"spec"`
	Code float64 `json:"code" yaml:"code"`
	Test float64 `json:"test" yaml:"test"`
	Sec  float64 `json:"sec" yaml:"sec"`
	PR   float64 `json:"pr" yaml:"pr"`
	Dep  float64 `json:"dep" yaml:"dep"`
}

// Get returns the score for the given face. Unknown faces yield 0.
func (s FaceScores) Get(face Face) float64 {
	switch face {
	case FaceSpec:
		return s.Spec
	case FaceCode:
		return s.Code
	case FaceTest:
		return s.Test
	case FaceSec:
		return s.Sec
	case FacePR:
		return s.PR
	case FaceDep:
		return s.Dep
	default:
		return 0
	}
}

// Set stores the score for the given face. Unknown faces are ignored.
func (s *FaceScores) Set(face Face, value float64) {
	switch face {
	case FaceSpec:
		s.Spec = value
	case FaceCode:
		s.Code = value
	case FaceTest:
		s.Test = value
	case FaceSec:
		s.Sec = value
	case FacePR:
		s.PR = value
	case FaceDep:
		s.Dep = value
	}
}

// ScoreFunctionResult is the output of a single score computation.
// All numeric fields are rounded to 4 decimal places.
type ScoreFunctionResult struct {
	Faces         FaceScores `json:"faces" yaml:"faces"`
	WeightedFaces FaceScores `json:"weighted_faces" yaml:"weighted_faces"`
	Geo           float64    `json:"geo" yaml:"geo"`
	Final         float64    `json:"final" yaml:"final"`
	GateOK        bool       `json:"gate_ok" yaml:"gate_ok"`
	Profile       string     `json:"profile" yaml:"profile"`
}

// ScoreRequest is the transport-level payload accepted by the HTTP and MCP surfaces.
// Both members are kept as generic objects so that presence of each key can be observed.
type ScoreRequest struct {
	Config  map[string]any `json:"config,omitempty"`
	Metrics map[string]any `json:"metrics,omitempty"`
}
