// ABOUTME: Read-only exports of the currently displayed view: CSV and JSON with the spreadsheet's column names.
// ABOUTME: Exports are derived outputs, never re-imported; they follow the view's row order exactly.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/2389-research/binder/card"
	"github.com/2389-research/binder/collection"
)

// ExportCSV writes the view as comma-delimited text: the fixed header row,
// then one row per record in view order. Booleans are written as
// true/false, quantities as bare digits, unset fields as empty cells.
func ExportCSV(w io.Writer, view collection.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range view {
		c := e.Card
		row := []string{
			strconv.Itoa(c.Quantity),
			c.Number,
			c.Name,
			c.Crew,
			c.Color,
			c.Foil,
			c.Rarity,
			c.Kind,
			strconv.FormatBool(c.AltArt),
			c.SpecialPower,
			c.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// exportRecord fixes the JSON key set and order to the spreadsheet columns.
type exportRecord struct {
	QTY          int    `json:"QTY"`
	CardNumber   string `json:"Card Number"`
	CardName     string `json:"Card Name"`
	Crew         string `json:"Crew"`
	Color        string `json:"Color"`
	FoilNormal   string `json:"Foil / Normal"`
	Rarity       string `json:"Rarity"`
	Kind         string `json:"Kind"`
	AltArt       bool   `json:"Alt Art"`
	SpecialPower string `json:"Special Power"`
	Notes        string `json:"Notes"`
}

func toExportRecord(c card.Card) exportRecord {
	return exportRecord{
		QTY:          c.Quantity,
		CardNumber:   c.Number,
		CardName:     c.Name,
		Crew:         c.Crew,
		Color:        c.Color,
		FoilNormal:   c.Foil,
		Rarity:       c.Rarity,
		Kind:         c.Kind,
		AltArt:       c.AltArt,
		SpecialPower: c.SpecialPower,
		Notes:        c.Notes,
	}
}

// ExportJSON writes the view as an array of objects keyed by the column
// names, quantities as numbers, booleans as literals, indented four spaces.
func ExportJSON(w io.Writer, view collection.View) error {
	records := make([]exportRecord, len(view))
	for i, e := range view {
		records[i] = toExportRecord(e.Card)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}
