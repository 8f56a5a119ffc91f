package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/padwan-ai/padwan-cli/llmtypes"
)

// TermTheme holds all color values for a terminal theme.
type TermTheme struct {
	Name string

	// Semantic
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Text
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	// Chat roles
	User      lipgloss.Color
	Assistant lipgloss.Color

	// Surfaces
	Border lipgloss.Color
}

// DarkTheme is the default dark terminal theme.
var DarkTheme = TermTheme{
	Name:      "dark",
	Success:   lipgloss.Color("#98fb98"),
	Warning:   lipgloss.Color("#ffff00"),
	Error:     lipgloss.Color("#ff6b6b"),
	Primary:   lipgloss.Color("#e0e0e8"),
	Secondary: lipgloss.Color("#888888"),
	Dim:       lipgloss.Color("#5a5a70"),
	User:      lipgloss.Color("#87ceeb"),
	Assistant: lipgloss.Color("#98fb98"),
	Border:    lipgloss.Color("#2a2a3a"),
}

// LightTheme is the light terminal theme.
var LightTheme = TermTheme{
	Name:      "light",
	Success:   lipgloss.Color("#15803d"),
	Warning:   lipgloss.Color("#a16207"),
	Error:     lipgloss.Color("#b91c1c"),
	Primary:   lipgloss.Color("#0f172a"),
	Secondary: lipgloss.Color("#374151"),
	Dim:       lipgloss.Color("#4b5563"),
	User:      lipgloss.Color("#1d4ed8"),
	Assistant: lipgloss.Color("#15803d"),
	Border:    lipgloss.Color("#d1d5db"),
}

// stateColors maps batch job states to display colors. States shared by
// both themes since they mirror the provider's semantics, not the
// terminal palette.
var stateColors = map[llmtypes.JobState]lipgloss.Color{
	llmtypes.JobStatePending:   lipgloss.Color("#ffa500"),
	llmtypes.JobStateQueued:    lipgloss.Color("#ffff00"),
	llmtypes.JobStateRunning:   lipgloss.Color("#00bfff"),
	llmtypes.JobStateSucceeded: lipgloss.Color("#98fb98"),
	llmtypes.JobStateFailed:    lipgloss.Color("#ff6b6b"),
	llmtypes.JobStateCancelled: lipgloss.Color("#808080"),
	llmtypes.JobStateExpired:   lipgloss.Color("#808080"),
}

// StateColor returns the display color for a batch job state
func StateColor(state llmtypes.JobState) lipgloss.Color {
	if color, ok := stateColors[state]; ok {
		return color
	}
	return lipgloss.Color("#808080")
}

// DetectTheme returns the appropriate theme based on flag, env, or detection.
func DetectTheme(flagVal string) TermTheme {
	// 1. --theme flag
	switch strings.ToLower(flagVal) {
	case "dark":
		return DarkTheme
	case "light":
		return LightTheme
	}

	// 2. PADWAN_THEME env
	if env := os.Getenv("PADWAN_THEME"); env != "" {
		switch strings.ToLower(env) {
		case "dark":
			return DarkTheme
		case "light":
			return LightTheme
		}
	}

	// 3. COLORFGBG heuristic (format: "fg;bg")
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			if bg == "15" || bg == "7" {
				return LightTheme
			}
		}
	}

	// 4. Default to dark
	return DarkTheme
}
