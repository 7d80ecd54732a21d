package schema

// FaceDefinition describes one face's formula with the active configuration.
type FaceDefinition struct {
	Face       Face                `json:"face" yaml:"face"`
	Purpose    string              `json:"purpose" yaml:"purpose"`
	Formula    string              `json:"formula" yaml:"formula"`
	Terms      []WeightDefinition  `json:"terms" yaml:"terms"`
	Penalties  []PenaltyDefinition `json:"penalties" yaml:"penalties"`
	Multiplier float64             `json:"multiplier" yaml:"multiplier"` // Active profile multiplier
}

// WeightDefinition is one linear coefficient of a face.
type WeightDefinition struct {
	Metric  string  `json:"metric" yaml:"metric"`
	Key     string  `json:"key" yaml:"key"` // Key in the weights config, e.g. "AM_inv"
	Weight  float64 `json:"weight" yaml:"weight"`
	Inverse bool    `json:"inverse" yaml:"inverse"`
}

// PenaltyDefinition is one penalty rule of a face.
type PenaltyDefinition struct {
	Input string      `json:"input" yaml:"input"` // Expression the penalty is evaluated on, e.g. "1-MT"
	Kind  PenaltyKind `json:"kind" yaml:"kind"`
	Scale float64     `json:"scale" yaml:"scale"`
	Tau   float64     `json:"tau" yaml:"tau"`
}
