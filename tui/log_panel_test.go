// ABOUTME: Tests for the activity panel built on the bubbles viewport component.
// ABOUTME: Covers append eviction, journal seeding, entry formatting, and view rendering.
package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/2389-research/binder/store"
)

func activityEntry(action, detail string) store.ActivityEntry {
	return store.ActivityEntry{
		Time:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Session: "test-session",
		Action:  action,
		Detail:  detail,
	}
}

func TestLogPanelAppendEvictsOldest(t *testing.T) {
	m := NewLogPanelModel(3)
	for i := 0; i < 5; i++ {
		m.Append(activityEntry("add", fmt.Sprintf("card %d", i)))
	}

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if m.entries[0].Detail != "card 2" {
		t.Errorf("oldest entry = %q, want %q", m.entries[0].Detail, "card 2")
	}
}

func TestLogPanelDefaultsMaxEntries(t *testing.T) {
	m := NewLogPanelModel(0)
	if m.max != 200 {
		t.Errorf("max = %d, want 200", m.max)
	}
}

func TestLogPanelSeedKeepsNewest(t *testing.T) {
	entries := make([]store.ActivityEntry, 6)
	for i := range entries {
		entries[i] = activityEntry("add", fmt.Sprintf("card %d", i))
	}

	m := NewLogPanelModel(4)
	m.Seed(entries)

	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}
	if m.entries[0].Detail != "card 2" {
		t.Errorf("first kept entry = %q, want %q", m.entries[0].Detail, "card 2")
	}
	if m.entries[3].Detail != "card 5" {
		t.Errorf("last kept entry = %q, want %q", m.entries[3].Detail, "card 5")
	}
}

func TestFormatEntry(t *testing.T) {
	line := formatEntry(activityEntry("merge", "OP01-023 Monkey D. Luffy at row 2"))
	if !strings.Contains(line, "09:26:53") {
		t.Errorf("line %q should contain the timestamp", line)
	}
	if !strings.Contains(line, "merge") {
		t.Errorf("line %q should contain the action", line)
	}
	if !strings.Contains(line, "row 2") {
		t.Errorf("line %q should contain the detail", line)
	}
}

func TestFormatEntryWithoutDetail(t *testing.T) {
	line := formatEntry(activityEntry("reload", ""))
	if !strings.Contains(line, "reload") {
		t.Errorf("line %q should contain the action", line)
	}
	if strings.HasSuffix(line, " ") {
		t.Errorf("line %q should not end with a dangling space", line)
	}
}

func TestLogPanelViewEmpty(t *testing.T) {
	m := NewLogPanelModel(10)
	m.SetSize(60, 12)
	if !strings.Contains(m.View(), "No activity yet") {
		t.Error("empty view should say so")
	}
}

func TestLogPanelViewFocusedTitle(t *testing.T) {
	m := NewLogPanelModel(10)
	m.SetSize(60, 12)
	m.SetFocused(true)
	if !strings.Contains(m.View(), "ACTIVITY (focused)") {
		t.Error("focused view should mark the title")
	}
	if !m.IsFocused() {
		t.Error("IsFocused() should report true")
	}
}

func TestLogPanelViewContainsEntries(t *testing.T) {
	m := NewLogPanelModel(10)
	m.SetSize(80, 12)
	m.Append(activityEntry("delete", "2 rows"))
	if !strings.Contains(m.View(), "2 rows") {
		t.Error("view should contain appended entries")
	}
}
