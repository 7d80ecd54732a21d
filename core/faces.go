package core

import (
	"strings"

	"github.com/NishizukaKoichi/score-function/schema"
)

// facePurposes describes what each face measures.
var facePurposes = map[schema.Face]string{
	schema.FaceSpec: "Specification quality: coverage, traceability, ambiguity and conflicts",
	schema.FaceCode: "Code quality: static analysis, complexity, duplication and design",
	schema.FaceTest: "Test quality: coverage, mutation score, flakiness and stability",
	schema.FaceSec:  "Security: vulnerability severity, dependency vulns and hardening",
	schema.FacePR:   "Pull-request risk: review, change risk, rollbacks and CI health",
	schema.FaceDep:  "Deployment risk: success rate, change failure, restore time and budget burn",
}

// FaceDefinitions describes every face's formula with the weights, thresholds
// and profile multipliers of cfg, in FaceOrder.
func FaceDefinitions(cfg schema.ScoreFunctionConfig) []schema.FaceDefinition {
	profile := cfg.ProfileWeightsFor()
	breakdowns := Explain(cfg, schema.MetricsInput{})

	defs := make([]schema.FaceDefinition, 0, len(breakdowns))
	for _, b := range breakdowns {
		def := schema.FaceDefinition{
			Face:       b.Face,
			Purpose:    facePurposes[b.Face],
			Multiplier: profile.Multiplier(b.Face),
			Terms:      make([]schema.WeightDefinition, 0, len(b.Terms)),
			Penalties:  make([]schema.PenaltyDefinition, 0, len(b.Penalties)),
		}
		for _, t := range b.Terms {
			def.Terms = append(def.Terms, schema.WeightDefinition{
				Metric:  t.Metric,
				Key:     t.Key,
				Weight:  t.Weight,
				Inverse: t.Inverse,
			})
		}
		for _, p := range b.Penalties {
			def.Penalties = append(def.Penalties, schema.PenaltyDefinition{
				Input: p.Input,
				Kind:  p.Kind,
				Scale: p.Scale,
				Tau:   p.Tau,
			})
		}
		def.Formula = formula(def)
		defs = append(defs, def)
	}
	return defs
}

// formula renders a definition as e.g. "100 * (RC + TR + (1-AM)) * P(AM)".
func formula(def schema.FaceDefinition) string {
	terms := make([]string, 0, len(def.Terms))
	for _, t := range def.Terms {
		if t.Inverse {
			terms = append(terms, "(1-"+t.Metric+")")
			continue
		}
		terms = append(terms, t.Metric)
	}

	var sb strings.Builder
	sb.WriteString("100 * (")
	sb.WriteString(strings.Join(terms, " + "))
	sb.WriteString(")")
	for _, p := range def.Penalties {
		switch p.Kind {
		case schema.CriticalCut:
			sb.WriteString(" * cut(" + p.Input + ")")
		default:
			sb.WriteString(" * P(" + p.Input + ")")
		}
	}
	return sb.String()
}
