// ABOUTME: Modal dialog shown when an added card collides with an existing record's natural key.
// ABOUTME: Offers exactly three resolutions: merge quantities, add as a separate row, or cancel.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/binder/card"
	"github.com/2389-research/binder/collection"
)

// dialogChoice pairs an outcome with its menu label.
type dialogChoice struct {
	outcome collection.Outcome
	label   string
}

// DuplicateDialogModel renders the duplicate resolution modal. While active
// it owns all keyboard input; the decision is handed back to the app as a
// DialogChoiceMsg.
type DuplicateDialogModel struct {
	conflict collection.Conflict
	existing card.Card
	incoming card.Card
	choices  []dialogChoice
	selected int
	active   bool
	width    int
}

// NewDuplicateDialogModel creates an inactive dialog.
func NewDuplicateDialogModel() DuplicateDialogModel {
	return DuplicateDialogModel{}
}

// Activate shows the dialog for the given collision.
func (m *DuplicateDialogModel) Activate(conflict collection.Conflict, existing, incoming card.Card) {
	m.conflict = conflict
	m.existing = existing
	m.incoming = incoming
	m.selected = 0
	m.active = true
	m.choices = []dialogChoice{
		{outcome: collection.MergeQuantity, label: fmt.Sprintf("Merge quantities (%d + %d = %d)",
			conflict.ExistingQty, conflict.IncomingQty, conflict.ExistingQty+conflict.IncomingQty)},
		{outcome: collection.AddAsNew, label: "Add as a separate row"},
		{outcome: collection.Cancel, label: "Cancel, keep the collection unchanged"},
	}
}

// Deactivate hides the dialog.
func (m *DuplicateDialogModel) Deactivate() {
	m.active = false
}

// IsActive returns whether the dialog is currently visible.
func (m DuplicateDialogModel) IsActive() bool {
	return m.active
}

// SetWidth sets the available width for rendering.
func (m *DuplicateDialogModel) SetWidth(w int) {
	m.width = w
}

// Update handles key events while the dialog is active. Enter confirms the
// selected choice, Esc is a shortcut for Cancel, and the digits 1-3 both
// select and confirm.
func (m DuplicateDialogModel) Update(msg tea.Msg) (DuplicateDialogModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "left", "shift+tab":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "right", "tab":
		if m.selected < len(m.choices)-1 {
			m.selected++
		}
	case "1", "2", "3":
		idx := int(keyMsg.String()[0] - '1')
		if idx < len(m.choices) {
			m.selected = idx
			return m, emit(DialogChoiceMsg{Outcome: m.choices[idx].outcome})
		}
	case "enter":
		return m, emit(DialogChoiceMsg{Outcome: m.choices[m.selected].outcome})
	case "esc":
		return m, emit(DialogChoiceMsg{Outcome: collection.Cancel})
	}

	return m, nil
}

// View renders the dialog. Returns an empty string when inactive.
func (m DuplicateDialogModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Duplicate: %s", m.incoming.Label())))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Already in the collection at row %d with quantity %d.\n",
		m.conflict.ExistingIndex, m.conflict.ExistingQty))
	b.WriteString(fmt.Sprintf("The new entry brings quantity %d.\n\n", m.conflict.IncomingQty))

	for i, choice := range m.choices {
		line := fmt.Sprintf("  %d. %s", i+1, choice.label)
		if i == m.selected {
			line = FocusedFieldStyle.Render("> " + strings.TrimLeft(line, " "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render("enter confirm / esc cancel"))

	return DialogStyle.Render(b.String())
}
