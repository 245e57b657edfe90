// ABOUTME: Bubble Tea sub-model for displaying the full field set of the selected card.
// ABOUTME: Renders every spreadsheet column as label-value rows, including fields the table hides.
package tui

import (
	"strconv"
	"strings"

	"github.com/2389-research/binder/card"
)

// DetailPanelModel displays the full record under the table cursor.
type DetailPanelModel struct {
	selected *card.Card
	index    int
	width    int
	height   int
}

// NewDetailPanelModel creates a DetailPanelModel with no selection.
func NewDetailPanelModel() DetailPanelModel {
	return DetailPanelModel{index: -1}
}

// SetSelected updates the panel with the card at the given table index.
func (m *DetailPanelModel) SetSelected(index int, c card.Card) {
	m.selected = &c
	m.index = index
}

// Clear removes the selection.
func (m *DetailPanelModel) Clear() {
	m.selected = nil
	m.index = -1
}

// SetSize sets the available dimensions.
func (m *DetailPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// maxFieldLen is the maximum number of characters shown for long text fields.
const maxFieldLen = 60

// truncateField truncates s to maxFieldLen characters, appending "..." if truncated.
func truncateField(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFieldLen {
		return s
	}
	return string(runes[:maxFieldLen]) + "..."
}

// View renders the detail panel as a string.
func (m DetailPanelModel) View() string {
	title := TitleStyle.Render("CARD DETAIL")

	var content string
	if m.selected == nil {
		content = title + "\n\n" + ValueStyle.Render("No record selected")
	} else {
		c := m.selected

		alt := "no"
		if c.AltArt {
			alt = "yes"
		}

		var lines []string
		lines = append(lines, title)
		lines = append(lines, row("Row:", strconv.Itoa(m.index)))
		lines = append(lines, row("Quantity:", strconv.Itoa(c.Quantity)))
		lines = append(lines, row("Number:", c.Number))
		lines = append(lines, row("Name:", c.Name))
		lines = append(lines, row("Crew:", c.Crew))
		lines = append(lines, LabelStyle.Render("Color:")+StyleForColor(c.Color).Render(c.Color))
		lines = append(lines, row("Foil:", c.Foil))
		lines = append(lines, row("Rarity:", c.Rarity))
		lines = append(lines, row("Kind:", c.Kind))
		lines = append(lines, row("Alt art:", alt))
		lines = append(lines, row("Power:", truncateField(c.SpecialPower)))
		lines = append(lines, row("Notes:", truncateField(c.Notes)))

		content = strings.Join(lines, "\n")
	}

	style := BorderStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}

	return style.Render(content)
}

// row renders a label-value pair using the standard label and value styles.
func row(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}
