package core

import "github.com/NishizukaKoichi/score-function/schema"

func floatPtr(v float64) *float64 { return &v }

// perfectMetrics returns every good metric at 1 and every risk metric at 0.
func perfectMetrics() schema.MetricsInput {
	return schema.MetricsInput{
		Spec:             schema.SpecMetrics{RC: 1, TR: 1, AM: 0, CN: 0, EX: 1},
		Code:             schema.CodeMetrics{SA: 1, CC: 0, DP: 0, DE: 1, DT: 1, PF: 1},
		Test:             schema.TestMetrics{CV: 1, MT: 1, FL: 0, SK: 0, ST: 1},
		Sec:              schema.SecMetrics{CVSSSum: 0, SE: 1, DepVulns: 0, AT: 1, ML: 1, CriticalCount: floatPtr(0)},
		PR:               schema.PRMetrics{RR: 1, Risk: 0, DV: 1, RB: 0, CI: 1},
		Dep:              schema.DepMetrics{SR: 1, CFR: 0, MT: 0, RBK: 0, PRG: 0, EB: 0},
		UncertaintySigma: floatPtr(0),
	}
}

// sampleMetrics returns a realistic, mostly healthy set of metrics.
func sampleMetrics() schema.MetricsInput {
	return schema.MetricsInput{
		Spec:             schema.SpecMetrics{RC: 0.9, TR: 0.8, AM: 0.1, CN: 0.05, EX: 0.7},
		Code:             schema.CodeMetrics{SA: 0.85, CC: 0.3, DP: 0.1, DE: 0.8, DT: 0.6, PF: 0.9},
		Test:             schema.TestMetrics{CV: 0.8, MT: 0.7, FL: 0.02, SK: 0.01, ST: 0.95},
		Sec:              schema.SecMetrics{CVSSSum: 0.1, SE: 0.9, DepVulns: 0.05, AT: 0.8, ML: 0.7},
		PR:               schema.PRMetrics{RR: 0.9, Risk: 0.2, DV: 0.8, RB: 0.05, CI: 0.97},
		Dep:              schema.DepMetrics{SR: 0.98, CFR: 0.1, MT: 0.2, RBK: 0.05, PRG: 0.1, EB: 0.2},
		UncertaintySigma: floatPtr(0.2),
	}
}

// sampleMetricsMap is sampleMetrics in the generic form accepted by Engine.Evaluate.
func sampleMetricsMap() map[string]any {
	return map[string]any{
		"spec": map[string]any{"RC": 0.9, "TR": 0.8, "AM": 0.1, "CN": 0.05, "EX": 0.7},
		"code": map[string]any{"SA": 0.85, "CC": 0.3, "DP": 0.1, "DE": 0.8, "DT": 0.6, "PF": 0.9},
		"test": map[string]any{"CV": 0.8, "MT": 0.7, "FL": 0.02, "SK": 0.01, "ST": 0.95},
		"sec":  map[string]any{"CVSS_sum": 0.1, "SE": 0.9, "dep_vulns": 0.05, "AT": 0.8, "ML": 0.7},
		"pr":   map[string]any{"RR": 0.9, "risk": 0.2, "DV": 0.8, "RB": 0.05, "CI": 0.97},
		"dep":  map[string]any{"SR": 0.98, "CFR": 0.1, "MT": 0.2, "RBK": 0.05, "PRG": 0.1, "EB": 0.2},

		"uncertainty_sigma": 0.2,
	}
}
