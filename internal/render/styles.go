package render

import (
	"github.com/charmbracelet/lipgloss"
)

// StyleSet contains pre-computed lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	// Text styles
	Title        lipgloss.Style
	DimTxt       lipgloss.Style
	SuccessTxt   lipgloss.Style
	WarningTxt   lipgloss.Style
	ErrorTxt     lipgloss.Style
	PrimaryTxt   lipgloss.Style
	SecondaryTxt lipgloss.Style

	// Chat roles
	UserTxt      lipgloss.Style
	AssistantTxt lipgloss.Style

	// Tables
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style
}

// NewStyleSet creates a StyleSet from a theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	return &StyleSet{
		Theme: theme,

		Title:        lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		DimTxt:       lipgloss.NewStyle().Foreground(theme.Dim),
		SuccessTxt:   lipgloss.NewStyle().Foreground(theme.Success),
		WarningTxt:   lipgloss.NewStyle().Foreground(theme.Warning),
		ErrorTxt:     lipgloss.NewStyle().Foreground(theme.Error),
		PrimaryTxt:   lipgloss.NewStyle().Foreground(theme.Primary),
		SecondaryTxt: lipgloss.NewStyle().Foreground(theme.Secondary),

		UserTxt:      lipgloss.NewStyle().Foreground(theme.User).Bold(true),
		AssistantTxt: lipgloss.NewStyle().Foreground(theme.Assistant),

		TableHeader: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1),
		TableCell:   lipgloss.NewStyle().Foreground(theme.Secondary).Padding(0, 1),
		TableBorder: lipgloss.NewStyle().Foreground(theme.Border),
	}
}

// StateTxt returns a style for rendering the given batch job state
func (s *StyleSet) StateTxt(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
