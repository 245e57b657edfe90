// ABOUTME: Duplicate resolution workflow: detects natural-key collisions and applies exactly one chosen outcome.
// ABOUTME: First (lowest-index) match wins when duplicates already coexist from prior add-as-new choices.
package collection

import (
	"fmt"

	"github.com/2389-research/binder/card"
)

// Outcome is the caller's decision for a detected duplicate.
type Outcome int

const (
	MergeQuantity Outcome = iota // add the incoming quantity onto the existing record
	AddAsNew                     // insert the incoming record as its own row
	Cancel                       // discard the incoming record
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case MergeQuantity:
		return "merge"
	case AddAsNew:
		return "add as new"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Conflict describes a natural-key collision between an incoming record and
// the first existing match at the time of the check. Indices are positional
// and only valid until the next mutation.
type Conflict struct {
	ExistingIndex int
	ExistingQty   int
	IncomingQty   int
}

// Resolution is the terminal state of one add-attempt. Index is the table
// position the outcome landed on: the merged row for MergeQuantity, the
// appended row for AddAsNew, and -1 for Cancel.
type Resolution struct {
	Outcome Outcome
	Index   int
}

// CheckConflict looks up the incoming record's natural key in the table.
// Returns nil when there is no collision and the record can be added
// directly. Otherwise returns the conflict against the first (lowest-index)
// match; later matches are never considered.
func (t *Table) CheckConflict(c card.Card) *Conflict {
	matches := t.FindByNaturalKey(c.Number, c.Name)
	if len(matches) == 0 {
		return nil
	}
	existing := t.cards[matches[0]]
	qty := existing.Quantity
	if qty < 0 {
		qty = 0
	}
	return &Conflict{
		ExistingIndex: matches[0],
		ExistingQty:   qty,
		IncomingQty:   c.Quantity,
	}
}

// Resolve applies exactly one outcome for a detected conflict. The decision
// is applied fully or not at all; on error the table is unchanged. Resolve
// is deterministic given the current records, the incoming record, and the
// chosen outcome.
func (t *Table) Resolve(outcome Outcome, conflict *Conflict, incoming card.Card) (Resolution, error) {
	switch outcome {
	case MergeQuantity:
		if conflict == nil {
			return Resolution{}, fmt.Errorf("merge requires a detected conflict")
		}
		merged := conflict.ExistingQty + incoming.Quantity
		if err := t.Update(conflict.ExistingIndex, card.Patch{Quantity: &merged}); err != nil {
			return Resolution{}, fmt.Errorf("merge quantities: %w", err)
		}
		return Resolution{Outcome: MergeQuantity, Index: conflict.ExistingIndex}, nil

	case AddAsNew:
		idx, err := t.Add(incoming)
		if err != nil {
			return Resolution{}, fmt.Errorf("add as new: %w", err)
		}
		return Resolution{Outcome: AddAsNew, Index: idx}, nil

	case Cancel:
		return Resolution{Outcome: Cancel, Index: -1}, nil

	default:
		return Resolution{}, fmt.Errorf("unknown outcome %d", int(outcome))
	}
}
