package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Scoring label constants.
const (
	ExcellentValue = "Excellent" // Excellent value
	GoodValue      = "Good"      // Good value
	FairValue      = "Fair"      // Fair value
	PoorValue      = "Poor"      // Poor value
)

// Gate label constants.
const (
	PassValue = "PASS"
	FailValue = "FAIL"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor represents a healthy face.
	GoodColor      = color.New(color.FgCyan)              // goodColor represents informational / acceptable signal.
	FairColor      = color.New(color.FgYellow)            // fairColor represents standard caution, not bold.
	PoorColor      = color.New(color.FgRed, color.Bold)   // poorColor represents standard danger.
)

// GetPlainLabel returns a plain text band for a score on the 0-100 scale.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 90:
		return ExcellentValue
	case score >= 80:
		return GoodValue
	case score >= 70:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// GetGateLabel returns PASS or FAIL, colored when useColors is set.
func GetGateLabel(ok bool, useColors bool) string {
	text, c := FailValue, PoorColor
	if ok {
		text, c = PassValue, ExcellentColor
	}
	if !useColors {
		return text
	}
	return c.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseColorString parses the --color flag. "auto" and empty defer to isTerminal.
func ParseColorString(s string, isTerminal bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return isTerminal, nil
	default:
		return ParseBoolString(s)
	}
}
