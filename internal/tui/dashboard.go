package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pulsedash/pulse/internal/aggregate"
)

func (a App) View() string {
	switch a.state() {
	case stateError:
		title, msg := "subscription error", a.subErr
		if a.fatalErr != "" {
			title, msg = "configuration error", a.fatalErr
		}
		return a.renderErrorScreen(title, msg)
	case stateLoading:
		return a.renderLoading()
	}
	if a.helpOpen {
		return a.renderHelp()
	}
	return a.renderDashboard()
}

// renderErrorScreen is the blocking error state: message only, no data, no
// retry affordance.
func (a App) renderErrorScreen(title, msg string) string {
	var b strings.Builder
	b.WriteString("\n  " + renderLogo() + "\n\n")
	b.WriteString("  " + errTitleStyle.Render(title) + "\n\n")
	b.WriteString("  " + errTextStyle.Render(msg) + "\n\n")
	b.WriteString("  " + helpEntry("q", "quit") + "\n")
	return b.String()
}

func (a App) renderLoading() string {
	line := "waiting for dashboard data..."
	if !a.session.Ready {
		line = "signing in..."
	}
	var b strings.Builder
	b.WriteString("\n  " + renderLogo() + "\n\n")
	b.WriteString("  " + a.spin.View() + dimStyle.Render(line) + "\n")
	return b.String()
}

func (a App) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"r", "refresh the snapshot now"},
		{"c", "copy the summary line"},
		{"h", "toggle this help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString("\n  " + renderLogo() + "  " + metaStyle.Render(a.deps.Version) + "\n\n")
	b.WriteString("  " + chartTitleStyle.Render("Keys") + "\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n",
			cardValueStyle.Render(fmt.Sprintf("%-3s", k.key)),
			dimStyle.Render(k.desc))
	}
	b.WriteString("\n  " + helpEntry("esc", "close") + "\n")
	return b.String()
}

func (a App) renderDashboard() string {
	var b strings.Builder

	// Header: logo, identity, snapshot age
	header := " " + renderLogo() + "  " +
		metaStyle.Render(truncStr(a.session.IdentityID, 24)) + "  " +
		dimStyle.Render("updated "+formatAge(a.updated))
	b.WriteString(header + "\n\n")

	// Summary cards
	cards := []string{
		renderCard("population", formatCount(a.summary.TotalPopulation)),
		renderCard("avg income", formatMoney(a.summary.AverageIncome)),
		renderCard("top region", truncStr(a.summary.TopRegion, 14)),
		renderCard("entries", formatCount(int64(len(a.doc.RawEntries)))),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	// Bar charts
	chartWidth := a.width
	if chartWidth < 40 {
		chartWidth = 40
	}
	b.WriteString(renderChart("population by region", a.doc.PopulationByRegion, chartWidth, populationBarStyle))
	b.WriteString("\n\n")
	b.WriteString(renderChart("income distribution", a.doc.IncomeDistribution, chartWidth, incomeBarStyle))
	b.WriteString("\n\n")

	// Help bar with transient flash
	help := " " + helpEntry("r", "refresh") + "  " + helpEntry("c", "copy") + "  " +
		helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	if a.flash != "" {
		help += "  " + flashStyle.Render(a.flash)
	}
	b.WriteString(help + "\n")

	return b.String()
}

func renderCard(title, value string) string {
	inner := cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(inner)
}

// summaryLine is the plain-text form of the summary used by the clipboard
// copy key.
func summaryLine(s aggregate.Summary) string {
	return fmt.Sprintf("population %s · avg income %s · top region %s",
		formatCount(s.TotalPopulation), formatMoney(s.AverageIncome), s.TopRegion)
}
