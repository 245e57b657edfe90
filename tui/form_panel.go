// ABOUTME: Bubble Tea sub-model for the add/edit card form with one input per spreadsheet column.
// ABOUTME: Text fields use bubbles textinput, fixed-value fields cycle their options, alt art toggles.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/binder/card"
)

// formField identifies one form row, in display order.
type formField int

const (
	fieldQuantity formField = iota
	fieldNumber
	fieldName
	fieldCrew
	fieldColor
	fieldFoil
	fieldRarity
	fieldKind
	fieldAltArt
	fieldSpecialPower
	fieldNotes
	fieldCount
)

// fieldLabel returns the display label for a form field.
func fieldLabel(f formField) string {
	switch f {
	case fieldQuantity:
		return "Quantity:"
	case fieldNumber:
		return "Number:"
	case fieldName:
		return "Name:"
	case fieldCrew:
		return "Crew:"
	case fieldColor:
		return "Color:"
	case fieldFoil:
		return "Foil:"
	case fieldRarity:
		return "Rarity:"
	case fieldKind:
		return "Kind:"
	case fieldAltArt:
		return "Alt art:"
	case fieldSpecialPower:
		return "Power:"
	case fieldNotes:
		return "Notes:"
	default:
		return "?"
	}
}

// isEnumField reports whether the field cycles a fixed value set.
func isEnumField(f formField) bool {
	switch f {
	case fieldColor, fieldFoil, fieldRarity, fieldKind:
		return true
	}
	return false
}

// isTextField reports whether the field is backed by a textinput.
func isTextField(f formField) bool {
	return !isEnumField(f) && f != fieldAltArt
}

// FormPanelModel is the add/edit form. In add mode (editIndex -1) a submit
// is validated strictly; in edit mode the table's own update checks apply,
// so rows loaded with off-list attribute values can still be edited.
type FormPanelModel struct {
	inputs    map[formField]textinput.Model
	enums     map[formField]int
	enumExtra map[formField]string
	altArt    bool
	focus     formField
	editIndex int
	width     int
	height    int
}

// NewFormPanelModel creates a form with all fields blank.
func NewFormPanelModel() FormPanelModel {
	inputs := make(map[formField]textinput.Model)
	for f := formField(0); f < fieldCount; f++ {
		if !isTextField(f) {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = 30
		inputs[f] = ti
	}

	m := FormPanelModel{
		inputs:    inputs,
		enums:     make(map[formField]int),
		enumExtra: make(map[formField]string),
		editIndex: -1,
	}
	m.setInputValue(fieldQuantity, "1")
	return m
}

// StartAdd resets the form for a new card.
func (m *FormPanelModel) StartAdd() {
	m.editIndex = -1
	m.enums = make(map[formField]int)
	m.enumExtra = make(map[formField]string)
	m.altArt = false
	for f := range m.inputs {
		ti := m.inputs[f]
		ti.Reset()
		m.inputs[f] = ti
	}
	m.setInputValue(fieldQuantity, "1")
	m.setFocus(fieldQuantity)
}

// StartEdit pre-fills the form from the card at the given table index.
func (m *FormPanelModel) StartEdit(index int, c card.Card) {
	m.editIndex = index
	m.enums = make(map[formField]int)
	m.enumExtra = make(map[formField]string)
	m.altArt = c.AltArt

	m.setInputValue(fieldQuantity, strconv.Itoa(c.Quantity))
	m.setInputValue(fieldNumber, c.Number)
	m.setInputValue(fieldName, c.Name)
	m.setInputValue(fieldCrew, c.Crew)
	m.setInputValue(fieldSpecialPower, c.SpecialPower)
	m.setInputValue(fieldNotes, c.Notes)

	m.setEnumValue(fieldColor, c.Color)
	m.setEnumValue(fieldFoil, c.Foil)
	m.setEnumValue(fieldRarity, c.Rarity)
	m.setEnumValue(fieldKind, c.Kind)

	m.setFocus(fieldQuantity)
}

// EditIndex returns the table index being edited, or -1 in add mode.
func (m FormPanelModel) EditIndex() int {
	return m.editIndex
}

// SetSize sets the available dimensions.
func (m *FormPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// options returns the cycle values for an enum field: blank first, then the
// fixed set, then any off-list value carried over from the loaded row.
func (m FormPanelModel) options(f formField) []string {
	var base []string
	switch f {
	case fieldColor:
		base = card.Colors
	case fieldFoil:
		base = card.Foils
	case fieldRarity:
		base = card.Rarities
	case fieldKind:
		base = card.Kinds
	}
	opts := make([]string, 0, len(base)+2)
	opts = append(opts, "")
	opts = append(opts, base...)
	if extra, ok := m.enumExtra[f]; ok {
		opts = append(opts, extra)
	}
	return opts
}

// enumValue returns the currently selected value for an enum field.
func (m FormPanelModel) enumValue(f formField) string {
	opts := m.options(f)
	idx := m.enums[f]
	if idx < 0 || idx >= len(opts) {
		return ""
	}
	return opts[idx]
}

// setEnumValue selects v in the field's cycle. An off-list value is kept as
// an extra cycle entry so editing a loaded row does not destroy it.
func (m *FormPanelModel) setEnumValue(f formField, v string) {
	for i, opt := range m.options(f) {
		if opt == v {
			m.enums[f] = i
			return
		}
	}
	m.enumExtra[f] = v
	m.enums[f] = len(m.options(f)) - 1
}

// cycleEnum steps the field's selection forward or backward with wraparound.
func (m *FormPanelModel) cycleEnum(f formField, delta int) {
	opts := m.options(f)
	n := len(opts)
	m.enums[f] = ((m.enums[f]+delta)%n + n) % n
}

// setInputValue sets a text field's value.
func (m *FormPanelModel) setInputValue(f formField, v string) {
	ti := m.inputs[f]
	ti.SetValue(v)
	m.inputs[f] = ti
}

// setFocus moves keyboard focus to the given field.
func (m *FormPanelModel) setFocus(f formField) {
	m.focus = f
	for other := range m.inputs {
		ti := m.inputs[other]
		if other == f {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[other] = ti
	}
}

// nextField moves focus one field down, wrapping at the end.
func (m *FormPanelModel) nextField() {
	m.setFocus((m.focus + 1) % fieldCount)
}

// prevField moves focus one field up, wrapping at the top.
func (m *FormPanelModel) prevField() {
	m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
}

// Update handles key events while the form is active. Returns the updated
// model and a command carrying the submit, cancel, or error outcome.
func (m FormPanelModel) Update(msg tea.Msg) (FormPanelModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, emit(FormCancelledMsg{})
	case "enter":
		return m, m.submit()
	case "tab", "down":
		m.nextField()
		return m, nil
	case "shift+tab", "up":
		m.prevField()
		return m, nil
	}

	if isEnumField(m.focus) {
		switch keyMsg.String() {
		case "left":
			m.cycleEnum(m.focus, -1)
		case "right", " ":
			m.cycleEnum(m.focus, 1)
		}
		return m, nil
	}

	if m.focus == fieldAltArt {
		switch keyMsg.String() {
		case "left", "right", " ":
			m.altArt = !m.altArt
		}
		return m, nil
	}

	ti := m.inputs[m.focus]
	ti, cmd := ti.Update(msg)
	m.inputs[m.focus] = ti
	_ = cmd // cursor blink commands are ignored in sub-model updates
	return m, nil
}

// build assembles a card from the form fields. Quantity parse failures are
// reported as a validation error; everything else is taken verbatim.
func (m FormPanelModel) build() (card.Card, error) {
	qtyText := strings.TrimSpace(m.inputs[fieldQuantity].Value())
	qty, err := strconv.Atoi(qtyText)
	if err != nil {
		return card.Card{}, &card.ValidationError{Field: "quantity", Reason: fmt.Sprintf("%q is not a number", qtyText)}
	}

	return card.Card{
		Quantity:     qty,
		Number:       strings.TrimSpace(m.inputs[fieldNumber].Value()),
		Name:         strings.TrimSpace(m.inputs[fieldName].Value()),
		Crew:         strings.TrimSpace(m.inputs[fieldCrew].Value()),
		Color:        m.enumValue(fieldColor),
		Foil:         m.enumValue(fieldFoil),
		Rarity:       m.enumValue(fieldRarity),
		Kind:         m.enumValue(fieldKind),
		AltArt:       m.altArt,
		SpecialPower: strings.TrimSpace(m.inputs[fieldSpecialPower].Value()),
		Notes:        strings.TrimSpace(m.inputs[fieldNotes].Value()),
	}, nil
}

// submit validates the form and returns the outcome command. New cards are
// checked against the full data model rules; edits rely on the table's own
// update checks so loaded off-list values survive.
func (m FormPanelModel) submit() tea.Cmd {
	c, err := m.build()
	if err != nil {
		return emit(StatusFlashMsg{Text: err.Error(), Error: true})
	}
	if m.editIndex < 0 {
		if err := card.Validate(c); err != nil {
			return emit(StatusFlashMsg{Text: err.Error(), Error: true})
		}
	}
	return emit(FormSubmittedMsg{EditIndex: m.editIndex, Card: c, Patch: c.AsPatch()})
}

// View renders the form with the focused field highlighted.
func (m FormPanelModel) View() string {
	title := "ADD CARD"
	if m.editIndex >= 0 {
		title = fmt.Sprintf("EDIT ROW %d", m.editIndex)
	}

	var lines []string
	lines = append(lines, TitleStyle.Render(title))

	for f := formField(0); f < fieldCount; f++ {
		label := LabelStyle.Render(fieldLabel(f))
		if f == m.focus {
			label = FocusedFieldStyle.Width(15).Render(fieldLabel(f))
		}
		lines = append(lines, label+m.fieldView(f))
	}

	lines = append(lines, "")
	lines = append(lines, DimStyle.Render("enter save / esc cancel / tab move / arrows cycle"))

	style := BorderStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// fieldView renders the widget part of one form row.
func (m FormPanelModel) fieldView(f formField) string {
	if isEnumField(f) {
		v := m.enumValue(f)
		if v == "" {
			v = "(none)"
		}
		if f == m.focus {
			return FocusedFieldStyle.Render("< " + v + " >")
		}
		return ValueStyle.Render(v)
	}
	if f == fieldAltArt {
		box := "[ ]"
		if m.altArt {
			box = "[x]"
		}
		if f == m.focus {
			return FocusedFieldStyle.Render(box)
		}
		return ValueStyle.Render(box)
	}
	return m.inputs[f].View()
}
