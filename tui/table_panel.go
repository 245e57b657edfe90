// ABOUTME: Bubble Tea sub-model rendering the collection table inside a bubbles viewport.
// ABOUTME: Owns cursor movement, multi-select marks for deletion, and per-row column formatting.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/2389-research/binder/collection"
)

// TablePanelModel displays the current (possibly filtered) view of the
// collection as a scrollable table. The cursor tracks a position within the
// view; marks accumulate view positions for a multi-row delete.
type TablePanelModel struct {
	view     collection.View
	cursor   int
	marked   map[int]bool
	viewport viewport.Model
	focused  bool
	width    int
	height   int
}

// NewTablePanelModel creates an empty table panel.
func NewTablePanelModel() TablePanelModel {
	return TablePanelModel{
		marked:   make(map[int]bool),
		viewport: viewport.New(80, 10),
	}
}

// SetView replaces the displayed view. Marks are cleared because view
// positions shift whenever the view changes; the cursor is clamped into the
// new bounds.
func (m *TablePanelModel) SetView(v collection.View) {
	m.view = v
	m.marked = make(map[int]bool)
	if m.cursor >= len(v) {
		m.cursor = len(v) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

// Len returns the number of rows in the displayed view.
func (m TablePanelModel) Len() int {
	return len(m.view)
}

// Selected returns the entry under the cursor, or false when the view is empty.
func (m TablePanelModel) Selected() (collection.Entry, bool) {
	if len(m.view) == 0 {
		return collection.Entry{}, false
	}
	return m.view[m.cursor], true
}

// MoveUp moves the cursor one row up.
func (m *TablePanelModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.syncViewport()
}

// MoveDown moves the cursor one row down.
func (m *TablePanelModel) MoveDown() {
	if m.cursor < len(m.view)-1 {
		m.cursor++
	}
	m.syncViewport()
}

// PageUp moves the cursor one viewport page up.
func (m *TablePanelModel) PageUp() {
	m.cursor -= m.viewport.Height
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

// PageDown moves the cursor one viewport page down.
func (m *TablePanelModel) PageDown() {
	m.cursor += m.viewport.Height
	if m.cursor > len(m.view)-1 {
		m.cursor = len(m.view) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

// GotoTop moves the cursor to the first row.
func (m *TablePanelModel) GotoTop() {
	m.cursor = 0
	m.syncViewport()
}

// GotoEnd moves the cursor to the last row.
func (m *TablePanelModel) GotoEnd() {
	if len(m.view) > 0 {
		m.cursor = len(m.view) - 1
	}
	m.syncViewport()
}

// ToggleMark flips the delete mark on the cursor row.
func (m *TablePanelModel) ToggleMark() {
	if len(m.view) == 0 {
		return
	}
	if m.marked[m.cursor] {
		delete(m.marked, m.cursor)
	} else {
		m.marked[m.cursor] = true
	}
	m.syncViewport()
}

// ClearMarks removes all delete marks.
func (m *TablePanelModel) ClearMarks() {
	m.marked = make(map[int]bool)
	m.syncViewport()
}

// MarkedCount returns the number of marked rows.
func (m TablePanelModel) MarkedCount() int {
	return len(m.marked)
}

// MarkedTableIndices returns the table indices of the marked rows. When no
// rows are marked it falls back to the cursor row, so a bare delete always
// targets the selection.
func (m TablePanelModel) MarkedTableIndices() []int {
	if len(m.marked) == 0 {
		if entry, ok := m.Selected(); ok {
			return []int{entry.Index}
		}
		return nil
	}
	indices := make([]int, 0, len(m.marked))
	for pos := range m.marked {
		if pos >= 0 && pos < len(m.view) {
			indices = append(indices, m.view[pos].Index)
		}
	}
	return indices
}

// SetFocused sets whether this panel accepts keyboard input.
func (m *TablePanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m TablePanelModel) IsFocused() bool {
	return m.focused
}

// SetSize sets the available dimensions and updates the viewport.
func (m *TablePanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	// Reserve space for the border (2 lines), title (1 line), and header row (1 line)
	vpWidth := w - 2
	vpHeight := h - 4
	if vpWidth < 1 {
		vpWidth = 1
	}
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.syncViewport()
}

// View renders the table panel.
func (m TablePanelModel) View() string {
	title := fmt.Sprintf("COLLECTION (%d rows)", len(m.view))
	if m.focused {
		title += " (focused)"
	}

	var content string
	if len(m.view) == 0 {
		content = DimStyle.Render("No records")
	} else {
		content = m.viewport.View()
	}

	rendered := TitleStyle.Render(title) + "\n" + HeaderRowStyle.Render(headerLine()) + "\n" + content

	return BorderStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rendered)
}

// headerLine renders the fixed column header.
func headerLine() string {
	return fmt.Sprintf("  %4s %4s  %-10s %-24s %-8s %-6s %-9s", "ROW", "QTY", "NUMBER", "NAME", "COLOR", "RARITY", "KIND")
}

// syncViewport rebuilds the viewport content from the view and keeps the
// cursor row inside the visible window.
func (m *TablePanelModel) syncViewport() {
	if len(m.view) == 0 {
		m.viewport.SetContent("")
		return
	}
	lines := make([]string, 0, len(m.view))
	for pos := range m.view {
		lines = append(lines, m.rowLine(pos))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// rowLine renders a single table row with mark and cursor decoration.
func (m TablePanelModel) rowLine(pos int) string {
	entry := m.view[pos]
	c := entry.Card

	mark := " "
	if m.marked[pos] {
		mark = "*"
	}

	line := fmt.Sprintf("%s %4d %4d  %-10s %-24s %-8s %-6s %-9s",
		mark, entry.Index, c.Quantity, clip(c.Number, 10), clip(c.Name, 24),
		clip(c.Color, 8), clip(c.Rarity, 6), clip(c.Kind, 9))

	if pos == m.cursor && m.focused {
		return CursorRowStyle.Render(line)
	}
	if m.marked[pos] {
		return MarkedRowStyle.Render(line)
	}
	return PlainRowStyle.Render(line)
}

// clip truncates s to n characters, appending "..." if truncated.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
