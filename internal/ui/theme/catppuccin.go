package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title    = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted    = lipgloss.NewStyle().Foreground(Subtext0)
	Hot      = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Selected = lipgloss.NewStyle().Background(Surface0).Foreground(Lavender).Bold(true)
)

// KindColor maps a session kind to its dashboard color. Unknown kinds read as Idle.
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "Work":
		return Green
	case "Break":
		return Yellow
	default:
		return Red
	}
}

func Kind(kind string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(KindColor(kind)).Bold(true)
}
