package schema

// CheckResult holds the results of a gate check.
type CheckResult struct {
	Passed      bool              `json:"passed" yaml:"passed"`
	Profile     string            `json:"profile" yaml:"profile"`
	Gate        GateConfig        `json:"gate" yaml:"gate"`
	MinFace     Face              `json:"min_face" yaml:"min_face"`
	MinScore    float64           `json:"min_score" yaml:"min_score"`
	Geo         float64           `json:"geo" yaml:"geo"`
	GeoPassed   bool              `json:"geo_passed" yaml:"geo_passed"`
	Final       float64           `json:"final" yaml:"final"`
	FailedFaces []CheckFailedFace `json:"failed_faces" yaml:"failed_faces"`
}

// CheckFailedFace represents a face whose raw score is below the per-face minimum.
type CheckFailedFace struct {
	Face      Face    `json:"face" yaml:"face"`
	Score     float64 `json:"score" yaml:"score"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}
