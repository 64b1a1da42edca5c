package header

import "github.com/charmbracelet/lipgloss"

// DefaultBreakpoint is the terminal width below which the mobile layout is
// used.
const DefaultBreakpoint = 80

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// panelBorder returns the rounded border drawn around the open navigator.
func panelBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}
