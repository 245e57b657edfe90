// ABOUTME: Table is the authoritative in-memory ordered collection of card records.
// ABOUTME: Provides positional CRUD, natural-key lookup, and substring search; persistence is explicit and lives elsewhere.
package collection

import (
	"sort"
	"strings"

	"github.com/2389-research/binder/card"
)

// Table holds the ordered collection. Record order is insertion order and
// indices are positional: any insert or delete invalidates previously held
// indices. Single-writer; operations run to completion before the next.
type Table struct {
	cards []card.Card
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// FromCards builds a table from already-loaded records, preserving order.
// Records without an ID are assigned one. Load uses this path, so records
// from hand-edited sheets are preserved verbatim rather than re-validated.
func FromCards(cards []card.Card) *Table {
	t := &Table{cards: make([]card.Card, len(cards))}
	copy(t.cards, cards)
	var zero [16]byte
	for i := range t.cards {
		if t.cards[i].ID == zero {
			t.cards[i].ID = card.NewID()
		}
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.cards)
}

// Records returns a copy of all records in table order.
func (t *Table) Records() []card.Card {
	out := make([]card.Card, len(t.cards))
	copy(out, t.cards)
	return out
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	return &Table{cards: t.Records()}
}

// Add appends a validated record and returns its index. Records without an
// ID are assigned one.
func (t *Table) Add(c card.Card) (int, error) {
	if err := card.Validate(c); err != nil {
		return -1, err
	}
	var zero [16]byte
	if c.ID == zero {
		c.ID = card.NewID()
	}
	t.cards = append(t.cards, c)
	return len(t.cards) - 1, nil
}

// Update applies a partial patch to the record at index. Fields absent from
// the patch are left unchanged. Returns *NotFoundError when index is out of
// range, *card.ValidationError when the patched record would break the
// quantity or identity invariants; the table is unchanged on failure.
//
// Only the hard invariants are re-checked here (quantity >= 1, non-empty
// number and name) so rows loaded from hand-edited sheets with off-list
// attribute values can still be patched; full validation belongs to the form.
func (t *Table) Update(index int, p card.Patch) error {
	if index < 0 || index >= len(t.cards) {
		return &NotFoundError{Index: index, Len: len(t.cards)}
	}
	updated := p.Apply(t.cards[index])
	if updated.Quantity < 1 {
		return &card.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if strings.TrimSpace(updated.Number) == "" {
		return &card.ValidationError{Field: "card number", Reason: "must not be empty"}
	}
	if strings.TrimSpace(updated.Name) == "" {
		return &card.ValidationError{Field: "card name", Reason: "must not be empty"}
	}
	t.cards[index] = updated
	return nil
}

// Delete removes every record whose current position is in indices, as one
// in-memory operation. Duplicate and out-of-range indices are ignored.
// Removal walks the index set in descending order so lower positions stay
// valid while higher ones are spliced out. Returns the number of records
// removed, and *NothingRemovedError when that number is zero.
func (t *Table) Delete(indices []int) (int, error) {
	seen := make(map[int]bool, len(indices))
	var valid []int
	for _, idx := range indices {
		if idx < 0 || idx >= len(t.cards) || seen[idx] {
			continue
		}
		seen[idx] = true
		valid = append(valid, idx)
	}
	if len(valid) == 0 {
		return 0, &NothingRemovedError{Requested: indices}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	for _, idx := range valid {
		t.cards = append(t.cards[:idx], t.cards[idx+1:]...)
	}
	return len(valid), nil
}

// FindByNaturalKey returns the indices of all records whose (number, name)
// pair matches case-insensitively, in ascending order. Either argument
// being empty yields no matches.
func (t *Table) FindByNaturalKey(number, name string) []int {
	if strings.TrimSpace(number) == "" || strings.TrimSpace(name) == "" {
		return nil
	}
	var matches []int
	for i, c := range t.cards {
		if c.SameNaturalKey(number, name) {
			matches = append(matches, i)
		}
	}
	return matches
}

// Get returns a copy of the record at index, or *NotFoundError when index
// is out of range.
func (t *Table) Get(index int) (card.Card, error) {
	if index < 0 || index >= len(t.cards) {
		return card.Card{}, &NotFoundError{Index: index, Len: len(t.cards)}
	}
	return t.cards[index], nil
}
