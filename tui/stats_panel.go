// ABOUTME: Bubble Tea sub-model rendering collection statistics with per-group quantity bars.
// ABOUTME: Shows totals plus rarity, color, and kind breakdowns computed by the collection package.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/binder/collection"
)

// maxBarWidth is the number of cells a full bar occupies.
const maxBarWidth = 24

// StatsPanelModel displays totals and group breakdowns for the collection.
type StatsPanelModel struct {
	stats  collection.Stats
	width  int
	height int
}

// NewStatsPanelModel creates an empty stats panel.
func NewStatsPanelModel() StatsPanelModel {
	return StatsPanelModel{}
}

// SetStats replaces the displayed statistics.
func (m *StatsPanelModel) SetStats(s collection.Stats) {
	m.stats = s
}

// SetSize sets the available dimensions.
func (m *StatsPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	var lines []string
	lines = append(lines, TitleStyle.Render("STATISTICS"))
	lines = append(lines, row("Total cards:", fmt.Sprintf("%d", m.stats.TotalCards)))
	lines = append(lines, row("Entries:", fmt.Sprintf("%d", m.stats.UniqueEntries)))
	lines = append(lines, row("Alt art:", fmt.Sprintf("%d", m.stats.AltArtCount)))

	lines = append(lines, "")
	lines = append(lines, HeaderRowStyle.Render("By rarity"))
	lines = append(lines, groupLines(m.stats.ByRarity, false)...)

	lines = append(lines, "")
	lines = append(lines, HeaderRowStyle.Render("By color"))
	lines = append(lines, groupLines(m.stats.ByColor, true)...)

	lines = append(lines, "")
	lines = append(lines, HeaderRowStyle.Render("By kind"))
	lines = append(lines, groupLines(m.stats.ByKind, false)...)

	lines = append(lines, "")
	lines = append(lines, DimStyle.Render("esc close"))

	style := BorderStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// groupLines renders one bar line per group value. Color groups use the card
// color palette for their bars.
func groupLines(groups []collection.GroupCount, colorize bool) []string {
	max := 0
	for _, g := range groups {
		if g.Quantity > max {
			max = g.Quantity
		}
	}

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		bar := quantityBar(g.Quantity, max)
		style := BarStyle
		if colorize {
			style = StyleForColor(g.Value)
		}
		lines = append(lines, fmt.Sprintf("  %-20s %4d %s", clip(g.Value, 20), g.Quantity, style.Render(bar)))
	}
	return lines
}

// quantityBar renders a bar proportional to qty against the group maximum.
// Any nonzero quantity gets at least one cell.
func quantityBar(qty, max int) string {
	if qty <= 0 || max <= 0 {
		return ""
	}
	n := qty * maxBarWidth / max
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}
