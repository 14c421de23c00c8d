package ui

import "github.com/charmbracelet/lipgloss"

// Color palette, lime accent on neutral grays.
const (
	ColorLime     = "154" // Primary accent (#AFFF00)
	ColorWhite    = "255" // Headers, important text
	ColorGray     = "245" // Secondary text, links
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Issues
	ColorYellow   = "220" // Warnings
	ColorCyan     = "81"  // Suggestions
)

// Styles holds the styles used to render a report.
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Success    lipgloss.Style
	Issue      lipgloss.Style
	Warning    lipgloss.Style
	Suggestion lipgloss.Style
	Link       lipgloss.Style
	Dim        lipgloss.Style
}

// DefaultStyles returns colored styles for terminals.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Issue:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Link:       lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(ColorGray)),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle(),
		Header:     lipgloss.NewStyle(),
		Success:    lipgloss.NewStyle(),
		Issue:      lipgloss.NewStyle(),
		Warning:    lipgloss.NewStyle(),
		Suggestion: lipgloss.NewStyle(),
		Link:       lipgloss.NewStyle(),
		Dim:        lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
