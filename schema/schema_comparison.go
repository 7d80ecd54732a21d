package schema

// FaceDelta holds the before/after scores of one face and their deltas.
type FaceDelta struct {
	Face           Face    `json:"face" yaml:"face"`
	Before         float64 `json:"before" yaml:"before"`
	After          float64 `json:"after" yaml:"after"`
	Delta          float64 `json:"delta" yaml:"delta"` // After - Before (positive means better)
	BeforeWeighted float64 `json:"before_weighted" yaml:"before_weighted"`
	AfterWeighted  float64 `json:"after_weighted" yaml:"after_weighted"`
	DeltaWeighted  float64 `json:"delta_weighted" yaml:"delta_weighted"`
}

// ComparisonSummary has the aggregate deltas.
type ComparisonSummary struct {
	BeforeGeo   float64    `json:"before_geo" yaml:"before_geo"`
	AfterGeo    float64    `json:"after_geo" yaml:"after_geo"`
	DeltaGeo    float64    `json:"delta_geo" yaml:"delta_geo"`
	BeforeFinal float64    `json:"before_final" yaml:"before_final"`
	AfterFinal  float64    `json:"after_final" yaml:"after_final"`
	DeltaFinal  float64    `json:"delta_final" yaml:"delta_final"`
	Gate        GateStatus `json:"gate" yaml:"gate"`
	Improved    int        `json:"improved" yaml:"improved"`   // Faces whose raw score went up
	Regressed   int        `json:"regressed" yaml:"regressed"` // Faces whose raw score went down
}

// ComparisonResult holds the per-face deltas in FaceOrder and the summary.
type ComparisonResult struct {
	BaseProfile   string            `json:"base_profile" yaml:"base_profile"`
	TargetProfile string            `json:"target_profile" yaml:"target_profile"`
	Faces         []FaceDelta       `json:"faces" yaml:"faces"`
	Summary       ComparisonSummary `json:"summary" yaml:"summary"`
}
