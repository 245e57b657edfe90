// ABOUTME: Tests for DetailPanelModel which renders the full field set of the selected card.
// ABOUTME: Covers selection state, empty rendering, and long-field truncation.
package tui

import (
	"strings"
	"testing"

	"github.com/2389-research/binder/card"
)

func TestDetailPanelViewNoSelection(t *testing.T) {
	m := NewDetailPanelModel()
	if !strings.Contains(m.View(), "No record selected") {
		t.Error("empty panel should say so")
	}
}

func TestDetailPanelViewShowsAllFields(t *testing.T) {
	c := card.New("OP01-023", "Monkey D. Luffy", 3)
	c.Crew = "Straw Hat Crew"
	c.Color = "Red"
	c.Foil = "Foil"
	c.Rarity = "SR"
	c.Kind = "Character"
	c.AltArt = true
	c.SpecialPower = "Rush"
	c.Notes = "binder page 2"

	m := NewDetailPanelModel()
	m.SetSelected(5, c)
	view := m.View()

	for _, want := range []string{"5", "OP01-023", "Monkey D. Luffy", "Straw Hat Crew", "Red", "Foil", "SR", "Character", "yes", "Rush", "binder page 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q, got: %q", want, view)
		}
	}
}

func TestDetailPanelClear(t *testing.T) {
	m := NewDetailPanelModel()
	m.SetSelected(0, card.New("OP01-001", "Roronoa Zoro", 1))
	m.Clear()
	if !strings.Contains(m.View(), "No record selected") {
		t.Error("cleared panel should render as empty")
	}
}

func TestTruncateField(t *testing.T) {
	long := strings.Repeat("x", maxFieldLen+20)
	got := truncateField(long)
	if len([]rune(got)) != maxFieldLen+3 {
		t.Errorf("truncated length = %d, want %d", len([]rune(got)), maxFieldLen+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated field should end with ellipsis, got %q", got)
	}

	short := "Rush"
	if truncateField(short) != short {
		t.Errorf("short field should pass through unchanged")
	}
}
