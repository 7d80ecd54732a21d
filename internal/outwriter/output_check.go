package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
)

// PrintCheckResult outputs a gate check report, dispatching based on the output format configured.
func PrintCheckResult(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedOutput(cfg.Output, "check")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCheckResult(w, result, cfg, duration)
	}, "Wrote "+strings.ToUpper(string(cfg.Output)))
}

// WriteCheckResult renders a gate check report to w.
func WriteCheckResult(w io.Writer, result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.YAMLOut:
		return writeYAML(w, result)
	case schema.CSVOut:
		if err := writeCheckCSV(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		return errUnsupportedOutput(cfg.Output, "check")
	default:
		return writeCheckText(w, result, cfg, fmtFloat, duration)
	}
}

// writeCheckCSV writes one row per failed face followed by the geo row.
func writeCheckCSV(w io.Writer, result schema.CheckResult, fmtFloat func(float64) string) error {
	header := []string{"check", "subject", "score", "threshold", "passed"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range result.FailedFaces {
			if err := cw.Write([]string{"min_each", string(f.Face), fmtFloat(f.Score), fmtFloat(f.Threshold), "false"}); err != nil {
				return err
			}
		}
		return cw.Write([]string{"min_geo", "geo", fmtFloat(result.Geo), fmtFloat(result.Gate.MinGeo), strconv.FormatBool(result.GeoPassed)})
	})
}

// writeCheckText prints the header, then the success or failure details.
func writeCheckText(w io.Writer, result schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if err := writeCheckHeader(w, result, duration); err != nil {
		return err
	}
	if result.Passed {
		return writeCheckSuccess(w, result, cfg, fmtFloat)
	}
	return writeCheckFailure(w, result, cfg, fmtFloat)
}

// writeCheckHeader prints the common header information for check results.
func writeCheckHeader(w io.Writer, result schema.CheckResult, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, "Gate Check Results:"); err != nil {
		return err
	}

	labels := []string{"Profile:", "Gate:"}
	values := []any{
		result.Profile,
		fmt.Sprintf("min_each=%.1f, min_geo=%.1f, floor_each=%.1f",
			result.Gate.MinEach, result.Gate.MinGeo, result.Gate.FloorEach),
	}

	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nChecked %d faces in %v\n\n", len(schema.FaceOrder), duration)
	return err
}

// writeCheckSuccess prints the success case output.
func writeCheckSuccess(w io.Writer, result schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "✅ %s: all faces passed the gate\n\n", contract.GetGateLabel(true, cfg.UseColors)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Lowest face: %s (%s)\n", result.MinFace, fmtFloat(result.MinScore)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Geo: %s >= %.1f, Final: %s\n", fmtFloat(result.Geo), result.Gate.MinGeo, fmtFloat(result.Final))
	return err
}

// writeCheckFailure prints every failed face, then the geo outcome.
func writeCheckFailure(w io.Writer, result schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "❌ %s: %d face(s) below min_each\n\n",
		contract.GetGateLabel(false, cfg.UseColors), len(result.FailedFaces)); err != nil {
		return err
	}
	for _, f := range result.FailedFaces {
		if _, err := fmt.Fprintf(w, "  - %s (score: %s < threshold: %.1f)\n", f.Face, fmtFloat(f.Score), f.Threshold); err != nil {
			return err
		}
	}

	cmp := ">="
	if !result.GeoPassed {
		cmp = "<"
	}
	_, err := fmt.Fprintf(w, "  Geo: %s %s %.1f, Final: %s\n", fmtFloat(result.Geo), cmp, result.Gate.MinGeo, fmtFloat(result.Final))
	return err
}
