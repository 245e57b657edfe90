// ABOUTME: Implements a scrollable activity panel using the bubbles viewport component.
// ABOUTME: Displays journal entries for this and earlier sessions with timestamp and action formatting.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/2389-research/binder/store"
)

// LogPanelModel is a scrollable list of collection activity entries.
type LogPanelModel struct {
	entries  []store.ActivityEntry
	max      int
	viewport viewport.Model
	focused  bool
	width    int
	height   int
}

// NewLogPanelModel creates a new log panel with a maximum number of entries.
// If maxEntries is <= 0, it defaults to 200.
func NewLogPanelModel(maxEntries int) LogPanelModel {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	vp := viewport.New(80, 10)
	return LogPanelModel{
		entries:  make([]store.ActivityEntry, 0, maxEntries),
		max:      maxEntries,
		viewport: vp,
	}
}

// Append adds an entry to the log, evicting the oldest entry if at capacity.
func (m *LogPanelModel) Append(entry store.ActivityEntry) {
	if len(m.entries) >= m.max {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, entry)
	m.syncViewport()
}

// Seed replaces the log contents with entries replayed from the journal,
// keeping the newest max entries.
func (m *LogPanelModel) Seed(entries []store.ActivityEntry) {
	if len(entries) > m.max {
		entries = entries[len(entries)-m.max:]
	}
	m.entries = append(m.entries[:0], entries...)
	m.syncViewport()
}

// Len returns the number of entries in the log.
func (m LogPanelModel) Len() int {
	return len(m.entries)
}

// SetFocused sets whether this panel accepts keyboard input.
func (m *LogPanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m LogPanelModel) IsFocused() bool {
	return m.focused
}

// ScrollUp scrolls the viewport up one line.
func (m *LogPanelModel) ScrollUp() {
	m.viewport.LineUp(1)
}

// ScrollDown scrolls the viewport down one line.
func (m *LogPanelModel) ScrollDown() {
	m.viewport.LineDown(1)
}

// SetSize sets the available dimensions and updates the viewport.
func (m *LogPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	// Reserve space for the border (2 lines top/bottom) and title (1 line)
	vpWidth := w - 2
	vpHeight := h - 3
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

// View renders the log panel.
func (m LogPanelModel) View() string {
	title := "ACTIVITY"
	if m.focused {
		title = "ACTIVITY (focused)"
	}

	var content string
	if len(m.entries) == 0 {
		content = "No activity yet"
	} else {
		content = m.viewport.View()
	}

	rendered := TitleStyle.Render(title) + "\n" + content

	return BorderStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rendered)
}

// syncViewport rebuilds the viewport content from entries and scrolls to the bottom.
func (m *LogPanelModel) syncViewport() {
	if len(m.entries) == 0 {
		m.viewport.SetContent("")
		return
	}
	var lines []string
	for _, entry := range m.entries {
		lines = append(lines, formatEntry(entry))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

// formatEntry formats a single activity entry as a log line.
func formatEntry(entry store.ActivityEntry) string {
	ts := LogTimestampStyle.Render(entry.Time.Format("15:04:05"))
	action := LogActionStyle.Render(entry.Action)

	parts := []string{ts, action}
	if entry.Detail != "" {
		parts = append(parts, entry.Detail)
	}

	return strings.Join(parts, " ")
}
