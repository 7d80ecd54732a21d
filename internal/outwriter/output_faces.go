package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
)

// facesRenderModel is the JSON form of the face definitions.
type facesRenderModel struct {
	Profile string                  `json:"profile"`
	KSteep  float64                 `json:"k_steep"`
	Gate    schema.GateConfig       `json:"gate"`
	Faces   []schema.FaceDefinition `json:"faces"`
}

// PrintFaceDefinitions displays the formula of every face.
// This is a static display that does not require any metrics.
func PrintFaceDefinitions(defs []schema.FaceDefinition, scoreCfg schema.ScoreFunctionConfig, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedOutput(cfg.Output, "faces")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteFaceDefinitions(w, defs, scoreCfg, cfg)
	}, "Wrote "+strings.ToUpper(string(cfg.Output)))
}

// WriteFaceDefinitions renders face definitions to w.
// YAML output dumps the effective configuration instead, ready to be edited and passed back.
func WriteFaceDefinitions(w io.Writer, defs []schema.FaceDefinition, scoreCfg schema.ScoreFunctionConfig, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, facesRenderModel{
			Profile: scoreCfg.ProfileName(),
			KSteep:  scoreCfg.Steepness(),
			Gate:    scoreCfg.Gate,
			Faces:   defs,
		})
	case schema.YAMLOut:
		return writeYAML(w, scoreCfg)
	case schema.CSVOut:
		if err := writeFacesCSV(w, defs); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		return errUnsupportedOutput(cfg.Output, "faces")
	default:
		return writeFacesText(w, defs, scoreCfg)
	}
}

// writeFacesCSV writes one row per linear term and per penalty.
func writeFacesCSV(w io.Writer, defs []schema.FaceDefinition) error {
	header := []string{"face", "kind", "metric", "key", "weight", "inverse", "scale", "tau"}
	fmtFloat := createFormatter(schema.ResultDecimalPlaces)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, def := range defs {
			for _, t := range def.Terms {
				row := []string{string(def.Face), "term", t.Metric, t.Key, fmtFloat(t.Weight), strconv.FormatBool(t.Inverse), "", ""}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			for _, p := range def.Penalties {
				row := []string{string(def.Face), string(p.Kind), p.Input, "", "", "", fmtFloat(p.Scale), fmtFloat(p.Tau)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// formatTerms formats weights for display, e.g. "RC=0.30, AM_inv=0.20".
func formatTerms(terms []schema.WeightDefinition) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, fmt.Sprintf("%s=%.2f", t.Key, t.Weight))
	}
	return strings.Join(parts, ", ")
}

// formatPenaltyDefinitions formats penalty parameters, e.g. "AM (scale 0.30, tau 0.60)".
func formatPenaltyDefinitions(penalties []schema.PenaltyDefinition) string {
	parts := make([]string, 0, len(penalties))
	for _, p := range penalties {
		if p.Kind == schema.CriticalCut {
			parts = append(parts, fmt.Sprintf("%s >= %.0f cuts to %.2f", p.Input, p.Tau, 1-p.Scale))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (scale %.2f, tau %.2f)", p.Input, p.Scale, p.Tau))
	}
	return strings.Join(parts, ", ")
}

// writeFacesText displays face definitions in human-readable text format.
func writeFacesText(w io.Writer, defs []schema.FaceDefinition, scoreCfg schema.ScoreFunctionConfig) error {
	lines := []string{
		"Score Function Faces",
		"====================",
		"",
		fmt.Sprintf("Profile: %s, k_steep: %g", scoreCfg.ProfileName(), scoreCfg.Steepness()),
		"",
	}
	for _, def := range defs {
		lines = append(lines,
			fmt.Sprintf("%s (x%.2f): %s", strings.ToUpper(string(def.Face)), def.Multiplier, def.Purpose),
			"   Formula:   "+def.Formula,
			"   Weights:   "+formatTerms(def.Terms),
			"   Penalties: "+formatPenaltyDefinitions(def.Penalties),
			"",
		)
	}
	lines = append(lines,
		"Aggregate",
		fmt.Sprintf("   geo   = 100 * prod(max(%.1f, weighted)/100)^(1/%d)", scoreCfg.Gate.FloorEach, len(schema.FaceOrder)),
		fmt.Sprintf("   final = geo * (1 - %.1f * clip(uncertainty_sigma))", schema.UncertaintyDiscount),
		fmt.Sprintf("   gate  = min(raw faces) >= %.1f and geo >= %.1f", scoreCfg.Gate.MinEach, scoreCfg.Gate.MinGeo),
	)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
