package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Base palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	// Error screen
	errTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Bold(true)

	errTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	// Summary cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1e1e2a")).
			Padding(0, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	// Charts
	chartTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Bold(true)

	populationBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ade80"))

	incomeBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868")).
			Italic(true)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Italic(true)
)

// renderLogo renders the spaced PULSE wordmark in alternating emerald.
func renderLogo() string {
	const text = "PULSE"
	alt := [2]lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34d474")),
	}
	var out string
	for i, ch := range text {
		out += alt[i%2].Render(string(ch))
		if i < len(text)-1 {
			out += " "
		}
	}
	return out
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
