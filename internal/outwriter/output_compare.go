package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintComparisonResult outputs per-face deltas, dispatching based on the output format configured.
func PrintComparisonResult(result schema.ComparisonResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedOutput(cfg.Output, "compare")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComparisonResult(w, result, cfg)
	}, "Wrote "+strings.ToUpper(string(cfg.Output)))
}

// WriteComparisonResult renders per-face deltas to w.
func WriteComparisonResult(w io.Writer, result schema.ComparisonResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.YAMLOut:
		return writeYAML(w, result)
	case schema.CSVOut:
		if err := writeComparisonCSV(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		return errUnsupportedOutput(cfg.Output, "compare")
	default:
		return writeComparisonTable(w, result, cfg, fmtFloat)
	}
}

// writeComparisonCSV writes one row per face.
func writeComparisonCSV(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{
		"face",
		"before",
		"after",
		"delta",
		"before_weighted",
		"after_weighted",
		"delta_weighted",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range result.Faces {
			row := []string{
				string(d.Face),
				fmtFloat(d.Before),
				fmtFloat(d.After),
				fmtFloat(d.Delta),
				fmtFloat(d.BeforeWeighted),
				fmtFloat(d.AfterWeighted),
				fmtFloat(d.DeltaWeighted),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeComparisonTable writes the per-face deltas followed by a summary.
func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Face", "Before", "After", "Delta", "Weighted Δ"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}
	// Higher scores are better, so a rise is green and a drop is red.
	formatDelta := func(v float64) string {
		switch {
		case v > 0:
			return green(fmt.Sprintf("+%s ▲", fmtFloat(v)))
		case v < 0:
			return red(fmt.Sprintf("%s ▼", fmtFloat(v)))
		default:
			return yellow(fmtFloat(0))
		}
	}

	data := make([][]string, 0, len(result.Faces))
	for _, d := range result.Faces {
		data = append(data, []string{
			string(d.Face),
			fmtFloat(d.Before),
			fmtFloat(d.After),
			formatDelta(d.Delta),
			formatDelta(d.DeltaWeighted),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(w, "Geo: %s -> %s (%s), Final: %s -> %s (%s)\n",
		fmtFloat(s.BeforeGeo), fmtFloat(s.AfterGeo), formatDelta(s.DeltaGeo),
		fmtFloat(s.BeforeFinal), fmtFloat(s.AfterFinal), formatDelta(s.DeltaFinal)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Improved faces: %d, Regressed faces: %d, Gate: %s\n", s.Improved, s.Regressed, s.Gate); err != nil {
		return err
	}
	if result.BaseProfile != result.TargetProfile {
		if _, err := fmt.Fprintf(w, "Profiles: %s -> %s\n", result.BaseProfile, result.TargetProfile); err != nil {
			return err
		}
	}
	return nil
}
