// ABOUTME: Implements a single-line status bar for the bottom of the TUI showing collection state.
// ABOUTME: Displays the collection file, record count, total quantity, active query, dirty marker, and flash text.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays collection status in a single line.
type StatusBarModel struct {
	file     string
	records  int
	totalQty int
	query    string
	dirty    bool
	flash    string
	flashErr bool
	width    int
}

// NewStatusBarModel creates a StatusBarModel for the given collection file.
func NewStatusBarModel(file string) StatusBarModel {
	return StatusBarModel{file: file}
}

// SetCounts updates the record count and summed quantity.
func (m *StatusBarModel) SetCounts(records, totalQty int) {
	m.records = records
	m.totalQty = totalQty
}

// SetQuery sets the active search query, empty for none.
func (m *StatusBarModel) SetQuery(q string) {
	m.query = q
}

// SetDirty marks whether the table has changes not yet written to disk.
func (m *StatusBarModel) SetDirty(dirty bool) {
	m.dirty = dirty
}

// Flash replaces the transient message segment.
func (m *StatusBarModel) Flash(text string, isError bool) {
	m.flash = text
	m.flashErr = isError
}

// ClearFlash removes the transient message.
func (m *StatusBarModel) ClearFlash() {
	m.flash = ""
	m.flashErr = false
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	parts := []string{
		filepath.Base(m.file),
		fmt.Sprintf("%d records", m.records),
		fmt.Sprintf("%d cards", m.totalQty),
	}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("query: %s", m.query))
	}

	content := strings.Join(parts, " | ")

	bar := StatusBarStyle.Width(m.width - barSuffixWidth(m)).Render(content)

	if m.dirty {
		bar += DirtyStyle.Render(" *unsaved")
	}
	if m.flash != "" {
		if m.flashErr {
			bar += ErrStyle.Render(" " + m.flash)
		} else {
			bar += OKStyle.Render(" " + m.flash)
		}
	}

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, bar)
}

// barSuffixWidth returns the width reserved for the dirty marker and flash
// text so the styled background does not push them off screen.
func barSuffixWidth(m StatusBarModel) int {
	w := 0
	if m.dirty {
		w += len(" *unsaved")
	}
	if m.flash != "" {
		w += len(m.flash) + 1
	}
	if w >= m.width {
		return 0
	}
	return w
}
