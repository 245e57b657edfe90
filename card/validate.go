// ABOUTME: Input validation for card records before they reach the collection.
// ABOUTME: Defines ValidationError and the card-number pattern check.
package card

import (
	"fmt"
	"regexp"
	"strings"
)

// numberPattern matches set-prefixed card numbers like "ST04-001" or "OP01-023".
var numberPattern = regexp.MustCompile(`^[A-Za-z]+\d+-\d+$`)

// ValidationError reports a card field that failed validation. Callers show
// the message to the user; nothing reaches the collection on failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks a card against the data model rules: required identity
// fields, the card-number pattern, a positive quantity, and membership of the
// fixed attribute sets for any non-empty enumerated field. Optional fields
// may be empty. Returns a *ValidationError describing the first failure.
func Validate(c Card) error {
	if strings.TrimSpace(c.Number) == "" {
		return &ValidationError{Field: "card number", Reason: "must not be empty"}
	}
	if !numberPattern.MatchString(c.Number) {
		return &ValidationError{Field: "card number", Reason: fmt.Sprintf("%q does not match the <set><digits>-<digits> form, e.g. ST04-001", c.Number)}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "card name", Reason: "must not be empty"}
	}
	if c.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be at least 1, got %d", c.Quantity)}
	}
	if !IsOption(c.Color, Colors) {
		return &ValidationError{Field: "color", Reason: fmt.Sprintf("%q is not a known color", c.Color)}
	}
	if !IsOption(c.Foil, Foils) {
		return &ValidationError{Field: "foil / normal", Reason: fmt.Sprintf("%q is not a known finish", c.Foil)}
	}
	if !IsOption(c.Rarity, Rarities) {
		return &ValidationError{Field: "rarity", Reason: fmt.Sprintf("%q is not a known rarity", c.Rarity)}
	}
	if !IsOption(c.Kind, Kinds) {
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("%q is not a known kind", c.Kind)}
	}
	return nil
}
