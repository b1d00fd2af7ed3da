package listview

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorSelectedBg = "62"
	ColorSelectedFg = "230"
	ColorSubtle     = "241"
)

// Styles used when laying out rows.
var (
	ItemStyle = lipgloss.NewStyle()

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSelectedFg)).
			Background(lipgloss.Color(ColorSelectedBg)).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)).
			Italic(true)
)
