// ABOUTME: Bubble Tea message types used in the TUI message loop.
// ABOUTME: Each type wraps domain events for the tea.Msg interface (which is interface{}).
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/binder/card"
	"github.com/2389-research/binder/collection"
)

// FormSubmittedMsg carries a completed add/edit form. EditIndex is -1 when
// the form was adding a new card, otherwise the table index being edited.
// Card holds the full field set; Patch is its patch form for updates.
type FormSubmittedMsg struct {
	EditIndex int
	Card      card.Card
	Patch     card.Patch
}

// FormCancelledMsg signals the form was dismissed without submitting.
type FormCancelledMsg struct{}

// ConflictPromptMsg signals that an add collided with an existing record and
// the duplicate dialog should take over.
type ConflictPromptMsg struct {
	Conflict collection.Conflict
	Existing card.Card
	Incoming card.Card
}

// DialogChoiceMsg carries the duplicate dialog decision.
type DialogChoiceMsg struct {
	Outcome collection.Outcome
}

// RowAddedMsg signals that a record was appended to the table.
type RowAddedMsg struct {
	Index int
	Label string
}

// RowUpdatedMsg signals that a record was modified in place. Merged is true
// when the update came from a quantity merge rather than an edit.
type RowUpdatedMsg struct {
	Index  int
	Label  string
	Merged bool
}

// RowsDeletedMsg signals that records were removed from the table.
type RowsDeletedMsg struct {
	Count int
}

// SearchDebouncedMsg fires when the search debounce interval elapses. Token
// identifies the keystroke generation that scheduled it; stale tokens are
// dropped so only the latest input triggers a search.
type SearchDebouncedMsg struct {
	Token int
}

// SaveDoneMsg reports the result of writing the collection to disk.
type SaveDoneMsg struct {
	Err error
}

// StatusFlashMsg replaces the transient text segment of the status bar.
type StatusFlashMsg struct {
	Text  string
	Error bool
}

// emit wraps a message in a tea.Cmd so sub-models can hand results back to
// the app through the message loop.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
