// ABOUTME: Tests for the top-level AppModel covering the browse/search/form/dialog mode machine.
// ABOUTME: Drives Update with key and domain messages and settles command chains including disk writes.
package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/binder/card"
	"github.com/2389-research/binder/collection"
	"github.com/2389-research/binder/store"
)

// appFixture builds an AppModel over a two-card table backed by a temp sheet path.
func appFixture(t *testing.T) AppModel {
	t.Helper()
	cards := []card.Card{
		card.New("OP01-023", "Monkey D. Luffy", 3),
		card.New("OP04-040", "Kaido", 1),
	}
	cards[0].Color = "Red"
	cards[1].Color = "Purple"
	tbl := collection.FromCards(cards)

	path := filepath.Join(t.TempDir(), "collection.xlsx")
	m := NewAppModel(tbl, nil, path, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 110, Height: 32})
	return updated.(AppModel)
}

// apply sends one message without executing any returned command.
func apply(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

// settle sends a message and keeps executing returned commands until the
// chain stops producing follow-up messages.
func settle(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	for cmd != nil {
		next := cmd()
		if next == nil {
			break
		}
		if _, quit := next.(tea.QuitMsg); quit {
			break
		}
		updated, cmd = m.Update(next)
		m = updated.(AppModel)
	}
	return m
}

func addSubmission(number, name string, qty int) FormSubmittedMsg {
	c := card.Card{Quantity: qty, Number: number, Name: name}
	return FormSubmittedMsg{EditIndex: -1, Card: c, Patch: c.AsPatch()}
}

func TestAppModelAddFlowSavesSheet(t *testing.T) {
	m := appFixture(t)
	m.mode = modeForm

	m = settle(t, m, addSubmission("OP02-001", "Edward Newgate", 2))

	if m.table.Len() != 3 {
		t.Fatalf("table Len = %d, want 3", m.table.Len())
	}
	if m.mode != modeBrowse {
		t.Errorf("mode = %d, want browse after add", m.mode)
	}
	if m.dirty {
		t.Error("dirty should clear after the background save settles")
	}
	if _, err := os.Stat(m.path); err != nil {
		t.Errorf("sheet should exist after add: %v", err)
	}
	if m.log.Len() != 1 {
		t.Errorf("activity entries = %d, want 1", m.log.Len())
	}
	if !strings.Contains(m.statusBar.flash, "added") {
		t.Errorf("flash = %q, want an added confirmation", m.statusBar.flash)
	}
}

func TestAppModelAddConflictOpensDialog(t *testing.T) {
	m := appFixture(t)
	m.mode = modeForm

	// Same natural key as row 0, differing case.
	m = settle(t, m, addSubmission("op01-023", "MONKEY D. LUFFY", 2))

	if m.mode != modeDialog {
		t.Fatalf("mode = %d, want dialog", m.mode)
	}
	if !m.dialog.IsActive() {
		t.Fatal("dialog should be active")
	}
	if m.pendingConflict.ExistingIndex != 0 {
		t.Errorf("ExistingIndex = %d, want 0", m.pendingConflict.ExistingIndex)
	}
	if m.table.Len() != 2 {
		t.Errorf("table Len = %d, want unchanged 2 while the dialog is open", m.table.Len())
	}
	if _, err := os.Stat(m.path); !os.IsNotExist(err) {
		t.Error("no sheet write should happen before the conflict resolves")
	}
}

func TestAppModelDialogMerge(t *testing.T) {
	m := appFixture(t)
	m.mode = modeForm
	m = settle(t, m, addSubmission("op01-023", "Monkey D. Luffy", 2))

	m = settle(t, m, DialogChoiceMsg{Outcome: collection.MergeQuantity})

	if m.table.Len() != 2 {
		t.Fatalf("table Len = %d, want 2 after merge", m.table.Len())
	}
	got, err := m.table.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if got.Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", got.Quantity)
	}
	if m.mode != modeBrowse {
		t.Errorf("mode = %d, want browse", m.mode)
	}
	if _, err := os.Stat(m.path); err != nil {
		t.Errorf("sheet should exist after merge: %v", err)
	}
}

func TestAppModelDialogAddAsNew(t *testing.T) {
	m := appFixture(t)
	m.mode = modeForm
	m = settle(t, m, addSubmission("op01-023", "Monkey D. Luffy", 2))

	m = settle(t, m, DialogChoiceMsg{Outcome: collection.AddAsNew})

	if m.table.Len() != 3 {
		t.Fatalf("table Len = %d, want 3 after add-as-new", m.table.Len())
	}
	first, _ := m.table.Get(0)
	last, _ := m.table.Get(2)
	if first.Quantity != 3 || last.Quantity != 2 {
		t.Errorf("quantities = %d and %d, want 3 and 2", first.Quantity, last.Quantity)
	}
}

func TestAppModelDialogCancel(t *testing.T) {
	m := appFixture(t)
	m.mode = modeForm
	m = settle(t, m, addSubmission("op01-023", "Monkey D. Luffy", 2))

	m = settle(t, m, DialogChoiceMsg{Outcome: collection.Cancel})

	if m.table.Len() != 2 {
		t.Fatalf("table Len = %d, want unchanged 2", m.table.Len())
	}
	got, _ := m.table.Get(0)
	if got.Quantity != 3 {
		t.Errorf("quantity = %d, want untouched 3", got.Quantity)
	}
	if m.dirty {
		t.Error("cancel must not dirty the table")
	}
	if _, err := os.Stat(m.path); !os.IsNotExist(err) {
		t.Error("cancel must not write the sheet")
	}
}

func TestAppModelEditUpdatesRow(t *testing.T) {
	m := appFixture(t)
	m.mode = modeForm

	edited, _ := m.table.Get(0)
	edited.Quantity = 4
	edited.Notes = "trade binder"
	m = settle(t, m, FormSubmittedMsg{EditIndex: 0, Card: edited, Patch: edited.AsPatch()})

	got, _ := m.table.Get(0)
	if got.Quantity != 4 || got.Notes != "trade binder" {
		t.Errorf("row 0 = qty %d notes %q, want 4 and %q", got.Quantity, got.Notes, "trade binder")
	}
	if m.mode != modeBrowse {
		t.Errorf("mode = %d, want browse after edit", m.mode)
	}
}

func TestAppModelEditFailureStaysInForm(t *testing.T) {
	m := appFixture(t)
	m.mode = modeForm

	edited, _ := m.table.Get(0)
	edited.Quantity = 0
	m = settle(t, m, FormSubmittedMsg{EditIndex: 0, Card: edited, Patch: edited.AsPatch()})

	if m.mode != modeForm {
		t.Errorf("mode = %d, want to stay in the form on a rejected edit", m.mode)
	}
	got, _ := m.table.Get(0)
	if got.Quantity != 3 {
		t.Errorf("quantity = %d, want untouched 3", got.Quantity)
	}
	if m.statusBar.flash == "" {
		t.Error("rejected edit should flash the validation error")
	}
}

func TestAppModelDeleteCursorRow(t *testing.T) {
	m := appFixture(t)

	m = settle(t, m, keyRunes("d"))

	if m.table.Len() != 1 {
		t.Fatalf("table Len = %d, want 1", m.table.Len())
	}
	got, _ := m.table.Get(0)
	if got.Name != "Kaido" {
		t.Errorf("remaining row = %q, want %q", got.Name, "Kaido")
	}
}

func TestAppModelDeleteMarkedRows(t *testing.T) {
	m := appFixture(t)

	m, _ = apply(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = apply(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = settle(t, m, keyRunes("d"))

	if m.table.Len() != 0 {
		t.Fatalf("table Len = %d, want 0 after deleting both marks", m.table.Len())
	}
	if !strings.Contains(m.statusBar.flash, "removed 2") {
		t.Errorf("flash = %q, want a removed-2 confirmation", m.statusBar.flash)
	}
}

func TestAppModelSearchDebounceToken(t *testing.T) {
	m := appFixture(t)

	m, _ = apply(m, keyRunes("/"))
	if m.mode != modeSearch {
		t.Fatalf("mode = %d, want search", m.mode)
	}
	for _, r := range "kai" {
		m, _ = apply(m, keyRunes(string(r)))
	}
	if m.searchToken != 3 {
		t.Fatalf("searchToken = %d, want 3", m.searchToken)
	}

	// A stale token must not filter.
	m, _ = apply(m, SearchDebouncedMsg{Token: 2})
	if m.tablePanel.Len() != 2 {
		t.Errorf("stale debounce filtered the view: %d rows", m.tablePanel.Len())
	}

	// The current token runs the search.
	m, _ = apply(m, SearchDebouncedMsg{Token: 3})
	if m.tablePanel.Len() != 1 {
		t.Errorf("view rows = %d, want 1 after debounced search", m.tablePanel.Len())
	}
}

func TestAppModelSearchEnterAndClear(t *testing.T) {
	m := appFixture(t)

	m, _ = apply(m, keyRunes("/"))
	for _, r := range "purple" {
		m, _ = apply(m, keyRunes(string(r)))
	}
	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse after enter", m.mode)
	}
	if m.query != "purple" {
		t.Errorf("query = %q, want %q", m.query, "purple")
	}
	if m.tablePanel.Len() != 1 {
		t.Errorf("view rows = %d, want 1", m.tablePanel.Len())
	}

	// Esc in browse clears the active query.
	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.query != "" {
		t.Errorf("query = %q, want cleared", m.query)
	}
	if m.tablePanel.Len() != 2 {
		t.Errorf("view rows = %d, want all 2", m.tablePanel.Len())
	}
}

func TestAppModelQuitConfirmsWhenDirty(t *testing.T) {
	m := appFixture(t)
	m.dirty = true

	m, cmd := apply(m, keyRunes("q"))
	if cmd != nil {
		t.Fatal("dirty quit should not quit immediately")
	}
	if m.mode != modeConfirmQuit {
		t.Fatalf("mode = %d, want confirm-quit", m.mode)
	}

	m, _ = apply(m, keyRunes("n"))
	if m.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse after declining", m.mode)
	}

	m.mode = modeConfirmQuit
	_, cmd = apply(m, keyRunes("y"))
	if cmd == nil {
		t.Fatal("confirming quit should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("confirm msg = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppModelQuitDirectWhenClean(t *testing.T) {
	m := appFixture(t)
	_, cmd := apply(m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("clean quit should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit msg = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppModelReloadRestoresSheet(t *testing.T) {
	m := appFixture(t)

	onDisk := collection.FromCards([]card.Card{card.New("ST01-001", "Nami", 1)})
	if err := store.Save(m.path, onDisk); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m = settle(t, m, keyRunes("r"))

	if m.table.Len() != 1 {
		t.Fatalf("table Len = %d, want 1 from disk", m.table.Len())
	}
	got, _ := m.table.Get(0)
	if got.Name != "Nami" {
		t.Errorf("row 0 = %q, want %q", got.Name, "Nami")
	}
	if !strings.Contains(m.statusBar.flash, "reloaded") {
		t.Errorf("flash = %q, want a reload confirmation", m.statusBar.flash)
	}
}

func TestAppModelReloadConfirmsWhenDirty(t *testing.T) {
	m := appFixture(t)
	m.dirty = true

	m, _ = apply(m, keyRunes("r"))
	if m.mode != modeConfirmReload {
		t.Fatalf("mode = %d, want confirm-reload", m.mode)
	}

	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse {
		t.Errorf("mode = %d, want browse after declining", m.mode)
	}
	if m.table.Len() != 2 {
		t.Errorf("table Len = %d, want untouched 2", m.table.Len())
	}
}

func TestAppModelSaveFailureKeepsDirty(t *testing.T) {
	cards := []card.Card{card.New("OP01-023", "Monkey D. Luffy", 3)}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := NewAppModel(collection.FromCards(cards), nil, filepath.Join(blocker, "collection.xlsx"), nil)
	m.mode = modeForm
	m = settle(t, m, addSubmission("OP02-001", "Edward Newgate", 2))

	if !m.dirty {
		t.Error("dirty should stay set when the save fails")
	}
	if m.statusBar.flash == "" {
		t.Error("save failure should flash an error")
	}
}

func TestAppModelJournalsMutations(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "activity.jsonl")
	journal, err := store.OpenActivity(journalPath)
	if err != nil {
		t.Fatalf("OpenActivity: %v", err)
	}
	defer journal.Close()

	tbl := collection.FromCards([]card.Card{card.New("OP01-023", "Monkey D. Luffy", 3)})
	m := NewAppModel(tbl, journal, filepath.Join(dir, "collection.xlsx"), nil)
	m.mode = modeForm
	_ = settle(t, m, addSubmission("OP02-001", "Edward Newgate", 2))

	entries, err := store.ReplayActivity(journalPath, 10)
	if err != nil {
		t.Fatalf("ReplayActivity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(entries))
	}
	if entries[0].Action != "add" {
		t.Errorf("action = %q, want %q", entries[0].Action, "add")
	}
	if !strings.Contains(entries[0].Detail, "Edward Newgate") {
		t.Errorf("detail = %q, want the card label", entries[0].Detail)
	}
}

func TestAppModelTabCyclesFocus(t *testing.T) {
	m := appFixture(t)

	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != FocusLog {
		t.Fatalf("focus = %d, want FocusLog", m.focus)
	}
	if m.tablePanel.IsFocused() || !m.log.IsFocused() {
		t.Error("focus flags should follow the focus target")
	}

	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != FocusTable {
		t.Fatalf("focus = %d, want FocusTable again", m.focus)
	}
}

func TestAppModelStatsMode(t *testing.T) {
	m := appFixture(t)

	m, _ = apply(m, keyRunes("s"))
	if m.mode != modeStats {
		t.Fatalf("mode = %d, want stats", m.mode)
	}
	if !strings.Contains(m.View(), "STATISTICS") {
		t.Error("stats view should render the stats panel")
	}

	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse {
		t.Errorf("mode = %d, want browse after esc", m.mode)
	}
}

func TestAppModelViewRenders(t *testing.T) {
	m := appFixture(t)
	view := m.View()
	if !strings.Contains(view, "COLLECTION (2 rows)") {
		t.Errorf("view should contain the table panel, got: %q", view)
	}
	if !strings.Contains(view, "ACTIVITY") {
		t.Error("view should contain the activity panel")
	}
	if !strings.Contains(view, "2 records") {
		t.Error("view should contain the status bar counters")
	}
}

func TestAppModelViewTooSmall(t *testing.T) {
	m := appFixture(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 8})
	m = updated.(AppModel)
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("undersized terminal should show the size guard")
	}
}

func TestAppModelCursorMoveUpdatesDetail(t *testing.T) {
	m := appFixture(t)

	m, _ = apply(m, tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.detail.View(), "Kaido") {
		t.Error("detail should follow the cursor")
	}
}
