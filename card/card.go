// ABOUTME: Card represents one One Piece TCG collection entry with quantity, identity, and attribute fields.
// ABOUTME: Cards are the row unit of the collection table; the ULID is in-memory identity, never written to the sheet.
package card

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Card is one collection entry. Field order mirrors the spreadsheet columns.
// Empty strings mean unset for the optional text fields.
type Card struct {
	ID           ulid.ULID `json:"id"`
	Quantity     int       `json:"quantity"`
	Number       string    `json:"number"`
	Name         string    `json:"name"`
	Crew         string    `json:"crew,omitempty"`
	Color        string    `json:"color,omitempty"`
	Foil         string    `json:"foil,omitempty"`
	Rarity       string    `json:"rarity,omitempty"`
	Kind         string    `json:"kind,omitempty"`
	AltArt       bool      `json:"alt_art"`
	SpecialPower string    `json:"special_power,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// Fixed attribute values, in display order. The UI cycles these and
// statistics group over them; hand-edited sheets may carry values outside
// them, which load preserves verbatim.
var (
	Colors   = []string{"Red", "Green", "Blue", "Black", "White", "Purple", "Yellow", "Mixed (Check Notes)"}
	Foils    = []string{"Normal", "Foil"}
	Kinds    = []string{"Leader", "Character", "Event", "Stage", "Don Art"}
	Rarities = []string{"C", "UC", "R", "SR", "L", "SEC", "Promo"}
)

// New creates a Card with the given identity and quantity and a fresh ID.
func New(number, name string, quantity int) Card {
	return Card{
		ID:       NewID(),
		Quantity: quantity,
		Number:   number,
		Name:     name,
	}
}

// SameNaturalKey reports whether the card's (number, name) pair matches the
// given pair, compared case-insensitively.
func (c Card) SameNaturalKey(number, name string) bool {
	return strings.EqualFold(c.Number, number) && strings.EqualFold(c.Name, name)
}

// Label returns the short human-readable identity used in logs and status
// lines, e.g. "OP01-023 Luffy".
func (c Card) Label() string {
	return fmt.Sprintf("%s %s", c.Number, c.Name)
}

// IsOption reports whether v is one of the given fixed values. The empty
// string is always acceptable (unset).
func IsOption(v string, options []string) bool {
	if v == "" {
		return true
	}
	for _, opt := range options {
		if v == opt {
			return true
		}
	}
	return false
}
