package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/internal/parquet"
	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// explainedResult is a result with its per-face breakdown attached.
type explainedResult struct {
	schema.ScoreFunctionResult `yaml:",inline"`
	Breakdown                  []schema.FaceBreakdown `json:"breakdown" yaml:"breakdown"`
}

// resultPayload returns the value serialized for JSON and YAML output.
// Without breakdowns it is the bare result, identical to the HTTP response body.
func resultPayload(result schema.ScoreFunctionResult, breakdowns []schema.FaceBreakdown) any {
	if len(breakdowns) == 0 {
		return result
	}
	return explainedResult{ScoreFunctionResult: result, Breakdown: breakdowns}
}

// PrintResult outputs a score result, dispatching based on the output format configured.
func PrintResult(result schema.ScoreFunctionResult, breakdowns []schema.FaceBreakdown, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.ParquetOut:
		records := parquet.ConvertResult(result, contract.GetPlainLabel, time.Now().UTC())
		if err := parquet.WriteFaceScoresParquet(records, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteResult(w, result, breakdowns, cfg)
		}, "Wrote "+strings.ToUpper(string(cfg.Output)))
	}
}

// WriteResult renders a score result to w in the configured text-based format.
func WriteResult(w io.Writer, result schema.ScoreFunctionResult, breakdowns []schema.FaceBreakdown, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, resultPayload(result, breakdowns))
	case schema.YAMLOut:
		return writeYAML(w, resultPayload(result, breakdowns))
	case schema.CSVOut:
		if err := writeResultCSV(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		return errUnsupportedOutput(cfg.Output, "streamed results")
	default:
		if err := writeResultTable(w, result, cfg, fmtFloat); err != nil {
			return err
		}
		if len(breakdowns) > 0 {
			return writeExplainTable(w, breakdowns, cfg, fmtFloat)
		}
		return nil
	}
}

// writeResultCSV writes one row per face; the aggregate columns repeat on every row.
func writeResultCSV(w io.Writer, result schema.ScoreFunctionResult, fmtFloat func(float64) string) error {
	header := []string{
		"face",
		"raw",
		"weighted",
		"label",
		"geo",
		"final",
		"gate_ok",
		"profile",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, face := range schema.FaceOrder {
			raw := result.Faces.Get(face)
			row := []string{
				string(face),                             // Face
				fmtFloat(raw),                            // Raw score
				fmtFloat(result.WeightedFaces.Get(face)), // Weighted score
				contract.GetPlainLabel(raw),              // Label
				fmtFloat(result.Geo),                     // Geo
				fmtFloat(result.Final),                   // Final
				strconv.FormatBool(result.GateOK),        // Gate
				result.Profile,                           // Profile
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeResultTable generates and writes the human-readable table.
func writeResultTable(w io.Writer, result schema.ScoreFunctionResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Face", "Raw", "Weighted", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	label := labelFunc(cfg)
	data := make([][]string, 0, len(schema.FaceOrder))
	for _, face := range schema.FaceOrder {
		raw := result.Faces.Get(face)
		data = append(data, []string{
			string(face),
			fmtFloat(raw),
			fmtFloat(result.WeightedFaces.Get(face)),
			label(raw),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Geo: %s, Final: %s, Gate: %s\n",
		fmtFloat(result.Geo), fmtFloat(result.Final), contract.GetGateLabel(result.GateOK, cfg.UseColors)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Profile: %s\n", result.Profile); err != nil {
		return err
	}
	return nil
}

// formatPenalties renders the penalty factors of a face, e.g. "P(AM)=0.99 P(CN)=1.00".
func formatPenalties(penalties []schema.PenaltyTerm, fmtFloat func(float64) string) string {
	parts := make([]string, 0, len(penalties))
	for _, p := range penalties {
		name := "P"
		if p.Kind == schema.CriticalCut {
			name = "cut"
		}
		parts = append(parts, fmt.Sprintf("%s(%s)=%s", name, p.Input, fmtFloat(p.Factor)))
	}
	return strings.Join(parts, " ")
}

// writeExplainTable writes the linear score and penalty factors of every face.
func writeExplainTable(w io.Writer, breakdowns []schema.FaceBreakdown, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Face", "Linear", "Penalties", "Factor", "Score"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	width := getMaxTextWidth(cfg, 45) // Face + Linear + Factor + Score with borders/padding
	data := make([][]string, 0, len(breakdowns))
	for _, b := range breakdowns {
		data = append(data, []string{
			string(b.Face),
			fmtFloat(b.Linear),
			truncateText(formatPenalties(b.Penalties, fmtFloat), width),
			fmtFloat(b.Factor),
			fmtFloat(b.Score),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
