// ABOUTME: Substring search over the text columns of the table, producing a positional view.
// ABOUTME: Views pair each matching card with its current table index so selection and deletion stay positional.
package collection

import (
	"strings"

	"github.com/2389-research/binder/card"
)

// Entry pairs a card with its current position in the table. Filtered views
// keep the original positions so callers can select, edit, and delete rows
// of the underlying table.
type Entry struct {
	Index int       `json:"index"`
	Card  card.Card `json:"card"`
}

// View is an ordered slice of entries, either the whole table or a filtered
// subset of it.
type View []Entry

// Cards returns just the cards of the view, in view order.
func (v View) Cards() []card.Card {
	out := make([]card.Card, len(v))
	for i, e := range v {
		out[i] = e.Card
	}
	return out
}

// Indices returns the table positions of the view's rows, in view order.
func (v View) Indices() []int {
	out := make([]int, len(v))
	for i, e := range v {
		out[i] = e.Index
	}
	return out
}

// Search returns the view of records matching query. An empty query returns
// the full table. Otherwise a record matches when the lowercased query is a
// substring of at least one text column: number, name, crew, color, finish,
// rarity, kind, special power, or notes. Quantity and the alt-art flag are
// not searched.
func (t *Table) Search(query string) View {
	view := make(View, 0, len(t.cards))
	if query == "" {
		for i, c := range t.cards {
			view = append(view, Entry{Index: i, Card: c})
		}
		return view
	}

	q := strings.ToLower(query)
	for i, c := range t.cards {
		if matchesQuery(c, q) {
			view = append(view, Entry{Index: i, Card: c})
		}
	}
	return view
}

// matchesQuery reports whether any searched column of c contains the
// already-lowercased query.
func matchesQuery(c card.Card, q string) bool {
	for _, field := range []string{
		c.Number,
		c.Name,
		c.Crew,
		c.Color,
		c.Foil,
		c.Rarity,
		c.Kind,
		c.SpecialPower,
		c.Notes,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
