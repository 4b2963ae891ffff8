package tui

import "github.com/charmbracelet/lipgloss"

// Sticky-note palette
const (
	ColorBorder      = "#4A4536" // Warm grey
	ColorPrimaryText = "#F5F1E6" // Paper white
	ColorMutedText   = "#A8A08A" // Faded pencil
	ColorDisabled    = "#6B6553"
	ColorHelpText    = "240" // Dark grey for help text

	// Note colours, one per goal type
	ColorShortTerm = "#FACC15" // Classic yellow sticky
	ColorLongTerm  = "#60A5FA" // Blue sticky
	ColorAccent    = "#F59E0B" // Highlights, active borders

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
)

var (
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMutedText))
)

// goalColor picks the note colour for a goal type
func goalColor(longTerm bool) lipgloss.Color {
	if longTerm {
		return lipgloss.Color(ColorLongTerm)
	}
	return lipgloss.Color(ColorShortTerm)
}
