package schema

// LinearTerm is one weighted sub-metric of a face's linear score.
type LinearTerm struct {
	Metric       string  `json:"metric" yaml:"metric"`             // Sub-metric key, e.g. "AM"
	Key          string  `json:"key" yaml:"key"`                   // Weight key, e.g. "AM_inv"
	Weight       float64 `json:"weight" yaml:"weight"`             // Coefficient from the weights config
	Inverse      bool    `json:"inverse" yaml:"inverse"`           // True when the complement of the metric is used
	Value        float64 `json:"value" yaml:"value"`               // Clipped metric, complemented when Inverse
	Contribution float64 `json:"contribution" yaml:"contribution"` // 100 * Weight * Value
}

// PenaltyTerm is one multiplicative factor applied after the linear score.
type PenaltyTerm struct {
	Input  string      `json:"input" yaml:"input"` // Expression the penalty reads, e.g. "1-MT"
	Kind   PenaltyKind `json:"kind" yaml:"kind"`
	Value  float64     `json:"value" yaml:"value"` // Number the penalty was evaluated on
	Tau    float64     `json:"tau" yaml:"tau"`
	Scale  float64     `json:"scale" yaml:"scale"`
	Factor float64     `json:"factor" yaml:"factor"` // Multiplier in (1-Scale, 1]
}

// FaceBreakdown explains how a single raw face score was produced.
type FaceBreakdown struct {
	Face      Face          `json:"face" yaml:"face"`
	Terms     []LinearTerm  `json:"terms" yaml:"terms"`
	Linear    float64       `json:"linear" yaml:"linear"`
	Penalties []PenaltyTerm `json:"penalties" yaml:"penalties"`
	Factor    float64       `json:"factor" yaml:"factor"` // Product of all penalty factors
	Score     float64       `json:"score" yaml:"score"`
}
