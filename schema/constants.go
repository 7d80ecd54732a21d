package schema

// Custom string types for type safety.
type (
	// Face is one of the six top-level scoring dimensions.
	Face string

	// OutputMode represents the format of the output.
	OutputMode string

	// MergeMode represents how a configuration override is merged over the defaults.
	MergeMode string

	// PenaltyKind distinguishes smooth logistic penalties from hard cuts.
	PenaltyKind string

	// GateStatus represents how the gate outcome moved between two results.
	GateStatus string
)

// All faces supported.
const (
	FaceSpec Face = "spec"
	FaceCode Face = "code"
	FaceTest Face = "test"
	FaceSec  Face = "sec"
	FacePR   Face = "pr"
	FaceDep  Face = "dep"
)

// FaceOrder is the fixed iteration order for faces. It drives aggregation,
// the per-face gate check and every rendered table.
var FaceOrder = []Face{FaceSpec, FaceCode, FaceTest, FaceSec, FacePR, FaceDep}

// RequiredMetrics lists the sub-metric keys each face group must carry.
// Optional keys (sec.critical_count, uncertainty_sigma) are not listed.
var RequiredMetrics = map[Face][]string{
	FaceSpec: {"RC", "TR", "AM", "CN", "EX"},
	FaceCode: {"SA", "CC", "DP", "DE", "DT", "PF"},
	FaceTest: {"CV", "MT", "FL", "SK", "ST"},
	FaceSec:  {"CVSS_sum", "SE", "dep_vulns", "AT", "ML"},
	FacePR:   {"RR", "risk", "DV", "RB", "CI"},
	FaceDep:  {"SR", "CFR", "MT", "RBK", "PRG", "EB"},
}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All merge modes supported.
const (
	MergeShallow MergeMode = "shallow" // default
	MergeDeep    MergeMode = "deep"
)

// Penalty kinds.
const (
	LogisticPenalty PenaltyKind = "logistic"
	CriticalCut     PenaltyKind = "critical"
)

// Gate transitions reported by compare.
const (
	GatePassing GateStatus = "passing" // passed before and after
	GateFixed   GateStatus = "fixed"   // failed before, passes now
	GateBroken  GateStatus = "broken"  // passed before, fails now
	GateFailing GateStatus = "failing" // failed before and after
)

// Profile names shipped with the default configuration.
const (
	ProfileSRE   = "sre" // default
	ProfileSpeed = "speed"
)

// Scoring constants that are not part of the tunable configuration.
const (
	DefaultKSteep        = 14.0
	CriticalCutFactor    = 0.25
	UncertaintyDiscount  = 0.1
	ResultDecimalPlaces  = 4
	WeightSumTolerance   = 0.001
	DefaultConfigVersion = 1
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidMergeModes lists all valid merge modes.
var ValidMergeModes = map[MergeMode]struct{}{
	MergeShallow: {},
	MergeDeep:    {},
}

// ValidFaces lists all valid faces.
var ValidFaces = map[Face]struct{}{
	FaceSpec: {},
	FaceCode: {},
	FaceTest: {},
	FaceSec:  {},
	FacePR:   {},
	FaceDep:  {},
}
