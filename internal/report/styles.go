package report

import "github.com/charmbracelet/lipgloss"

// Styles by role. Lipgloss degrades the ANSI colors to what the terminal supports.
var (
	// StyleLocation marks file:line:col prefixes and update notices
	StyleLocation = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleError marks error severities and fatal miss reasons
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// StyleWarning marks warnings, unresolved tokens and carets
	StyleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleSuccess marks finished builds and clean checks
	StyleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleMuted is for the linter suffix and miss reasons
	StyleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	// StyleSelector highlights generated rules
	StyleSelector = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// RenderStyle returns text unchanged unless colors are on
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
