// ABOUTME: Top-level Bubble Tea AppModel that orchestrates all TUI sub-panels into a unified layout.
// ABOUTME: Implements tea.Model (Init, Update, View) and owns the browse/search/form/dialog mode machine.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/binder/card"
	"github.com/2389-research/binder/collection"
	"github.com/2389-research/binder/store"
)

// FocusTarget indicates which panel currently has keyboard focus in browse mode.
type FocusTarget int

const (
	FocusTable FocusTarget = iota
	FocusLog
)

// uiMode is the input mode of the app. Browse is the resting state; every
// other mode owns the keyboard until it resolves back to browse.
type uiMode int

const (
	modeBrowse uiMode = iota
	modeSearch
	modeForm
	modeDialog
	modeStats
	modeConfirmReload
	modeConfirmQuit
)

// searchDebounce is how long search input must be quiet before the filter runs.
const searchDebounce = 300 * time.Millisecond

// AppModel is the top-level Bubble Tea model that composes all TUI sub-panels
// and routes messages between them. It owns the table, the persistence policy
// (write the sheet and journal after every successful mutation), and the
// current search query.
type AppModel struct {
	table   *collection.Table
	journal *store.ActivityLog
	path    string

	tablePanel TablePanelModel
	detail     DetailPanelModel
	form       FormPanelModel
	dialog     DuplicateDialogModel
	statsPanel StatsPanelModel
	log        LogPanelModel
	statusBar  StatusBarModel

	searchInput textinput.Model
	searchToken int
	query       string

	// Add waiting on duplicate resolution
	pendingCard     card.Card
	pendingConflict collection.Conflict

	mode        uiMode
	focus       FocusTarget
	dirty       bool
	saving      bool
	pendingSave bool
	width       int
	height      int
}

// NewAppModel creates an AppModel over the given table. The journal may be
// nil, in which case mutations are only written to the sheet. Replayed
// entries seed the activity panel so earlier sessions stay visible.
func NewAppModel(tbl *collection.Table, journal *store.ActivityLog, path string, recent []store.ActivityEntry) AppModel {
	si := textinput.New()
	si.Prompt = "/"
	si.Placeholder = "search name, number, crew, notes..."
	si.CharLimit = 120
	si.Width = 40

	m := AppModel{
		table:       tbl,
		journal:     journal,
		path:        path,
		tablePanel:  NewTablePanelModel(),
		detail:      NewDetailPanelModel(),
		form:        NewFormPanelModel(),
		dialog:      NewDuplicateDialogModel(),
		statsPanel:  NewStatsPanelModel(),
		log:         NewLogPanelModel(200),
		statusBar:   NewStatusBarModel(path),
		searchInput: si,
	}
	m.log.Seed(recent)
	m.tablePanel.SetFocused(true)
	m.refresh()
	return m
}

// Run starts the interactive program over the given table and blocks until
// the user quits.
func Run(tbl *collection.Table, journal *store.ActivityLog, path string, recent []store.ActivityEntry) error {
	p := tea.NewProgram(NewAppModel(tbl, journal, path, recent), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Routes incoming messages to the appropriate
// handler and returns the updated model with any follow-up commands.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case FormSubmittedMsg:
		return m.handleFormSubmitted(msg)

	case FormCancelledMsg:
		m.mode = modeBrowse
		return m, nil

	case ConflictPromptMsg:
		m.pendingCard = msg.Incoming
		m.pendingConflict = msg.Conflict
		m.dialog.Activate(msg.Conflict, msg.Existing, msg.Incoming)
		m.mode = modeDialog
		return m, nil

	case DialogChoiceMsg:
		return m.handleDialogChoice(msg)

	case RowAddedMsg:
		m.recordActivity("add", fmt.Sprintf("%s at row %d", msg.Label, msg.Index))
		m.refresh()
		m.statusBar.Flash(fmt.Sprintf("added %s", msg.Label), false)
		return m.requestSave()

	case RowUpdatedMsg:
		action := "update"
		flash := fmt.Sprintf("updated row %d", msg.Index)
		if msg.Merged {
			action = "merge"
			flash = fmt.Sprintf("merged into row %d", msg.Index)
		}
		m.recordActivity(action, fmt.Sprintf("%s at row %d", msg.Label, msg.Index))
		m.refresh()
		m.statusBar.Flash(flash, false)
		return m.requestSave()

	case RowsDeletedMsg:
		m.recordActivity("delete", fmt.Sprintf("%d rows", msg.Count))
		m.refresh()
		m.statusBar.Flash(fmt.Sprintf("removed %d rows", msg.Count), false)
		return m.requestSave()

	case SearchDebouncedMsg:
		if msg.Token != m.searchToken {
			return m, nil
		}
		m.applySearch(strings.TrimSpace(m.searchInput.Value()))
		return m, nil

	case SaveDoneMsg:
		return m.handleSaveDone(msg)

	case StatusFlashMsg:
		m.statusBar.Flash(msg.Text, msg.Error)
		return m, nil
	}

	return m, nil
}

// handleKeyMsg routes keyboard input by mode.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Force quit works everywhere, even mid-form.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case modeDialog:
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd

	case modeSearch:
		return m.handleSearchKey(msg)

	case modeStats:
		switch msg.String() {
		case "esc", "q", "s", "enter":
			m.mode = modeBrowse
		}
		return m, nil

	case modeConfirmReload:
		switch msg.String() {
		case "y", "Y", "enter":
			m.mode = modeBrowse
			return m.doReload()
		case "n", "N", "esc", "q":
			m.mode = modeBrowse
		}
		return m, nil

	case modeConfirmQuit:
		switch msg.String() {
		case "y", "Y", "enter":
			return m, tea.Quit
		case "n", "N", "esc", "q":
			m.mode = modeBrowse
		}
		return m, nil
	}

	return m.handleBrowseKey(msg)
}

// handleBrowseKey processes keyboard input in the resting browse mode.
func (m AppModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.dirty || m.saving {
			m.mode = modeConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case "tab":
		m.focus = m.nextFocus()
		m.tablePanel.SetFocused(m.focus == FocusTable)
		m.log.SetFocused(m.focus == FocusLog)
		return m, nil

	case "a":
		m.form.StartAdd()
		m.mode = modeForm
		return m, nil

	case "e", "enter":
		return m.startEdit()

	case "d":
		return m.deleteMarked()

	case " ":
		if m.focus == FocusTable {
			m.tablePanel.ToggleMark()
		}
		return m, nil

	case "esc":
		if m.tablePanel.MarkedCount() > 0 {
			m.tablePanel.ClearMarks()
		} else if m.query != "" {
			m.applySearch("")
		}
		return m, nil

	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, nil

	case "s":
		m.statsPanel.SetStats(collection.ComputeStats(m.table.Records(), collection.StatsFilter{}))
		m.mode = modeStats
		return m, nil

	case "r":
		if m.dirty || m.saving {
			m.mode = modeConfirmReload
			return m, nil
		}
		return m.doReload()

	case "up", "k":
		if m.focus == FocusTable {
			m.tablePanel.MoveUp()
			m.syncDetail()
		} else {
			m.log.ScrollUp()
		}
		return m, nil

	case "down", "j":
		if m.focus == FocusTable {
			m.tablePanel.MoveDown()
			m.syncDetail()
		} else {
			m.log.ScrollDown()
		}
		return m, nil

	case "pgup":
		if m.focus == FocusTable {
			m.tablePanel.PageUp()
			m.syncDetail()
		}
		return m, nil

	case "pgdown":
		if m.focus == FocusTable {
			m.tablePanel.PageDown()
			m.syncDetail()
		}
		return m, nil

	case "home", "g":
		if m.focus == FocusTable {
			m.tablePanel.GotoTop()
			m.syncDetail()
		}
		return m, nil

	case "end", "G":
		if m.focus == FocusTable {
			m.tablePanel.GotoEnd()
			m.syncDetail()
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes keyboard input while the search box is focused.
// Every edit bumps the debounce token; the filter runs when the latest token
// comes back or immediately on Enter.
func (m AppModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.applySearch("")
		m.mode = modeBrowse
		return m, nil
	case "enter":
		m.searchInput.Blur()
		m.applySearch(strings.TrimSpace(m.searchInput.Value()))
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	_ = cmd // cursor blink commands are ignored
	m.searchToken++
	return m, m.debounceCmd()
}

// debounceCmd schedules a SearchDebouncedMsg carrying the current token.
func (m AppModel) debounceCmd() tea.Cmd {
	token := m.searchToken
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return SearchDebouncedMsg{Token: token}
	})
}

// handleFormSubmitted applies a completed form. Edits go straight to the
// table; adds are first checked for a natural-key collision, which hands off
// to the duplicate dialog instead of mutating.
func (m AppModel) handleFormSubmitted(msg FormSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.EditIndex >= 0 {
		if err := m.table.Update(msg.EditIndex, msg.Patch); err != nil {
			m.statusBar.Flash(err.Error(), true)
			return m, nil // stay in the form
		}
		m.mode = modeBrowse
		return m, emit(RowUpdatedMsg{Index: msg.EditIndex, Label: msg.Card.Label()})
	}

	if conflict := m.table.CheckConflict(msg.Card); conflict != nil {
		existing, err := m.table.Get(conflict.ExistingIndex)
		if err == nil {
			return m, emit(ConflictPromptMsg{Conflict: *conflict, Existing: existing, Incoming: msg.Card})
		}
	}

	idx, err := m.table.Add(msg.Card)
	if err != nil {
		m.statusBar.Flash(err.Error(), true)
		return m, nil
	}
	m.mode = modeBrowse
	return m, emit(RowAddedMsg{Index: idx, Label: msg.Card.Label()})
}

// handleDialogChoice resolves the pending duplicate with the chosen outcome.
func (m AppModel) handleDialogChoice(msg DialogChoiceMsg) (tea.Model, tea.Cmd) {
	m.dialog.Deactivate()
	m.mode = modeBrowse

	res, err := m.table.Resolve(msg.Outcome, &m.pendingConflict, m.pendingCard)
	if err != nil {
		m.statusBar.Flash(err.Error(), true)
		return m, nil
	}

	switch res.Outcome {
	case collection.MergeQuantity:
		return m, emit(RowUpdatedMsg{Index: res.Index, Label: m.pendingCard.Label(), Merged: true})
	case collection.AddAsNew:
		return m, emit(RowAddedMsg{Index: res.Index, Label: m.pendingCard.Label()})
	}

	m.statusBar.Flash("kept the collection unchanged", false)
	return m, nil
}

// handleSaveDone finishes one background write. When another mutation landed
// while this write was in flight, a fresh write starts immediately so the
// sheet converges on the latest table state.
func (m AppModel) handleSaveDone(msg SaveDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusBar.Flash(msg.Err.Error(), true)
	}

	if m.pendingSave {
		m.pendingSave = false
		return m, m.saveCmd()
	}

	m.saving = false
	if msg.Err == nil {
		m.dirty = false
		m.statusBar.SetDirty(false)
	}
	return m, nil
}

// requestSave marks the table dirty and starts a background write, or queues
// one when a write is already in flight. Writes never run concurrently
// because they share the same temp file.
func (m AppModel) requestSave() (tea.Model, tea.Cmd) {
	m.dirty = true
	m.statusBar.SetDirty(true)
	if m.saving {
		m.pendingSave = true
		return m, nil
	}
	m.saving = true
	return m, m.saveCmd()
}

// saveCmd snapshots the table and returns a command that writes it to disk.
func (m AppModel) saveCmd() tea.Cmd {
	snapshot := m.table.Clone()
	path := m.path
	return func() tea.Msg {
		return SaveDoneMsg{Err: store.Save(path, snapshot)}
	}
}

// startEdit opens the form pre-filled with the record under the cursor.
func (m AppModel) startEdit() (tea.Model, tea.Cmd) {
	entry, ok := m.tablePanel.Selected()
	if !ok {
		m.statusBar.Flash("no record selected", true)
		return m, nil
	}
	c, err := m.table.Get(entry.Index)
	if err != nil {
		m.statusBar.Flash(err.Error(), true)
		return m, nil
	}
	m.form.StartEdit(entry.Index, c)
	m.mode = modeForm
	return m, nil
}

// deleteMarked removes the marked rows, or the cursor row when none are marked.
func (m AppModel) deleteMarked() (tea.Model, tea.Cmd) {
	indices := m.tablePanel.MarkedTableIndices()
	if len(indices) == 0 {
		m.statusBar.Flash("no record selected", true)
		return m, nil
	}
	count, err := m.table.Delete(indices)
	if err != nil {
		m.statusBar.Flash(err.Error(), true)
		return m, nil
	}
	return m, emit(RowsDeletedMsg{Count: count})
}

// doReload re-reads the sheet from disk, replacing the in-memory table. On a
// read error the current table is kept.
func (m AppModel) doReload() (tea.Model, tea.Cmd) {
	tbl, err := store.Load(m.path)
	if err != nil {
		m.statusBar.Flash(err.Error(), true)
		return m, nil
	}
	m.table = tbl
	m.dirty = false
	m.pendingSave = false
	m.statusBar.SetDirty(false)
	m.recordActivity("reload", filepath.Base(m.path))
	m.refresh()
	m.statusBar.Flash("reloaded from disk", false)
	return m, nil
}

// applySearch sets the active query and rebuilds the view.
func (m *AppModel) applySearch(q string) {
	m.query = q
	m.refresh()
}

// refresh rebuilds the table view, counters, and detail panel from the table.
func (m *AppModel) refresh() {
	m.tablePanel.SetView(m.table.Search(m.query))

	records := m.table.Records()
	total := 0
	for _, c := range records {
		total += c.Quantity
	}
	m.statusBar.SetCounts(len(records), total)
	m.statusBar.SetQuery(m.query)
	m.syncDetail()
}

// syncDetail points the detail panel at the record under the cursor.
func (m *AppModel) syncDetail() {
	if entry, ok := m.tablePanel.Selected(); ok {
		m.detail.SetSelected(entry.Index, entry.Card)
	} else {
		m.detail.Clear()
	}
}

// recordActivity appends to the journal and mirrors the entry into the
// activity panel. Journal write failures surface on the status bar but do
// not block the mutation that triggered them.
func (m *AppModel) recordActivity(action, detail string) {
	entry := store.ActivityEntry{Time: time.Now(), Action: action, Detail: detail}
	if m.journal != nil {
		entry.Session = m.journal.Session()
		if err := m.journal.Record(action, detail); err != nil {
			m.statusBar.Flash(fmt.Sprintf("journal write failed: %v", err), true)
		}
	}
	m.log.Append(entry)
}

// nextFocus cycles the focus target between the table and the activity log.
func (m AppModel) nextFocus() FocusTarget {
	if m.focus == FocusTable {
		return FocusLog
	}
	return FocusTable
}

// View implements tea.Model. Renders the full TUI layout with all panels.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Minimum terminal size guard to prevent layout overflow
	if m.width < 60 || m.height < 14 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 60x14.", m.width, m.height)
	}

	// Layout calculations
	statusBarHeight := 1
	searchHeight := 0
	if m.mode == modeSearch {
		searchHeight = 1
	}
	tableHeight := (m.height - statusBarHeight - searchHeight) * 55 / 100
	if tableHeight < 5 {
		tableHeight = 5
	}
	bottomHeight := m.height - statusBarHeight - searchHeight - tableHeight
	if bottomHeight < 5 {
		bottomHeight = 5
	}

	leftWidth := m.width * 45 / 100
	if leftWidth < 20 {
		leftWidth = 20
	}
	rightWidth := m.width - leftWidth
	if rightWidth < 20 {
		rightWidth = 20
	}

	// Update panel sizes
	m.tablePanel.SetSize(m.width, tableHeight)
	m.detail.SetSize(leftWidth-2, bottomHeight-2)
	m.form.SetSize(leftWidth-2, bottomHeight-2)
	m.statsPanel.SetSize(leftWidth-2, bottomHeight-2)
	m.dialog.SetWidth(leftWidth)
	m.log.SetSize(rightWidth, bottomHeight)
	m.statusBar.SetWidth(m.width)

	// Bottom left panel depends on the mode
	var leftPanel string
	switch m.mode {
	case modeForm:
		leftPanel = m.form.View()
	case modeDialog:
		leftPanel = m.dialog.View()
	case modeStats:
		leftPanel = m.statsPanel.View()
	case modeConfirmReload:
		leftPanel = DialogStyle.Render("Discard unsaved changes and reload from disk? (y/n)")
	case modeConfirmQuit:
		leftPanel = DialogStyle.Render("There are unsaved changes. Quit anyway? (y/n)")
	default:
		leftPanel = m.detail.View()
	}

	bottomView := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, m.log.View())

	// Assemble full view
	var b strings.Builder
	if m.mode == modeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.tablePanel.View())
	b.WriteString("\n")
	b.WriteString(bottomView)
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}
