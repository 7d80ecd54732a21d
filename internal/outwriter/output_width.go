package outwriter

import (
	"os"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"golang.org/x/term"
)

// Bounds for the free-text column of a table.
const (
	minTextWidth = 15
	maxTextWidth = 80
)

// getTerminalWidth returns the width override, the detected terminal width, or 80.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxTextWidth returns the space left for a free-text column once
// reserved columns and table borders are accounted for.
func getMaxTextWidth(cfg *contract.Config, reserved int) int {
	available := getTerminalWidth(cfg) - reserved - 10
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}

// truncateText shortens s to maxWidth runes, marking the cut with "...".
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}
