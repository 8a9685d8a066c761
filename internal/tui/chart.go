package tui

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chartEntry is one labeled value with its percentage share of the
// distribution total.
type chartEntry struct {
	label string
	value int64
	share float64
}

// chartEntries sorts a distribution by value descending (label ascending on
// ties) and computes each entry's share of the total. Returns nil when the
// distribution is empty or sums to zero; callers render that as the no-data
// placeholder.
func chartEntries(dist map[string]int64) []chartEntry {
	var total int64
	for _, v := range dist {
		total += v
	}
	if total == 0 {
		return nil
	}

	entries := make([]chartEntry, 0, len(dist))
	for label, v := range dist {
		entries = append(entries, chartEntry{
			label: label,
			value: v,
			share: float64(v) / float64(total) * 100,
		})
	}
	slices.SortFunc(entries, func(a, b chartEntry) int {
		if a.value != b.value {
			return cmp.Compare(b.value, a.value)
		}
		return cmp.Compare(a.label, b.label)
	})
	return entries
}

// barLen converts a percentage share into a glyph count. Any nonzero share
// shows at least one glyph so small entries stay visible.
func barLen(share float64, width int) int {
	n := int(math.Round(share / 100 * float64(width)))
	if n < 1 && share > 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

const maxChartLabelWidth = 16

// renderChart renders a titled horizontal bar chart for dist.
func renderChart(title string, dist map[string]int64, width int, barStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(" " + chartTitleStyle.Render(title) + "\n")

	entries := chartEntries(dist)
	if entries == nil {
		b.WriteString("   " + noDataStyle.Render("no data"))
		return b.String()
	}

	labelW := 0
	for _, e := range entries {
		if w := lipgloss.Width(e.label); w > labelW {
			labelW = w
		}
	}
	if labelW > maxChartLabelWidth {
		labelW = maxChartLabelWidth
	}

	// label + bar + " 42.0% (1,234)" have to fit in width
	barW := width - labelW - 20
	if barW < 8 {
		barW = 8
	}

	for i, e := range entries {
		bar := barStyle.Render(strings.Repeat("█", barLen(e.share, barW)))
		label := fmt.Sprintf("%-*s", labelW, truncStr(e.label, labelW))
		fmt.Fprintf(&b, "   %s %s %s %s",
			normalStyle.Render(label),
			bar,
			dimStyle.Render(fmt.Sprintf("%.1f%%", e.share)),
			metaStyle.Render("("+formatCount(e.value)+")"),
		)
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
