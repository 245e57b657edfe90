// ABOUTME: Patch carries a partial field set for updating an existing card.
// ABOUTME: Nil pointers mean "leave unchanged"; the card ID is never patchable.
package card

// Patch is a partial update. Each non-nil field replaces the corresponding
// card field; nil fields are left as they are. Setting an optional text
// field to the empty string clears it.
type Patch struct {
	Quantity     *int
	Number       *string
	Name         *string
	Crew         *string
	Color        *string
	Foil         *string
	Rarity       *string
	Kind         *string
	AltArt       *bool
	SpecialPower *string
	Notes        *string
}

// Apply returns a copy of c with every non-nil patch field applied.
func (p Patch) Apply(c Card) Card {
	if p.Quantity != nil {
		c.Quantity = *p.Quantity
	}
	if p.Number != nil {
		c.Number = *p.Number
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Crew != nil {
		c.Crew = *p.Crew
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Foil != nil {
		c.Foil = *p.Foil
	}
	if p.Rarity != nil {
		c.Rarity = *p.Rarity
	}
	if p.Kind != nil {
		c.Kind = *p.Kind
	}
	if p.AltArt != nil {
		c.AltArt = *p.AltArt
	}
	if p.SpecialPower != nil {
		c.SpecialPower = *p.SpecialPower
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	return c
}

// AsPatch returns a patch that sets every field to the card's current
// values. The edit form uses this to submit a full-row replace.
func (c Card) AsPatch() Patch {
	return Patch{
		Quantity:     &c.Quantity,
		Number:       &c.Number,
		Name:         &c.Name,
		Crew:         &c.Crew,
		Color:        &c.Color,
		Foil:         &c.Foil,
		Rarity:       &c.Rarity,
		Kind:         &c.Kind,
		AltArt:       &c.AltArt,
		SpecialPower: &c.SpecialPower,
		Notes:        &c.Notes,
	}
}
