// ABOUTME: Spreadsheet mirror of the collection table: one sheet, fixed header, one row per record.
// ABOUTME: Load normalizes the column contract and never aborts; Save writes atomically via temp file + rename.
package store

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/2389-research/binder/card"
	"github.com/2389-research/binder/collection"
)

// SheetName is the single worksheet holding the collection.
const SheetName = "Collection"

// Columns is the fixed header, in fixed order. Load guarantees the table
// reflects exactly these columns regardless of what the file contains.
var Columns = []string{
	"QTY",
	"Card Number",
	"Card Name",
	"Crew",
	"Color",
	"Foil / Normal",
	"Rarity",
	"Kind",
	"Alt Art",
	"Special Power",
	"Notes",
}

// Load reads the backing spreadsheet into a table. A missing file yields an
// empty table and nil error. An unreadable or corrupt file yields an empty
// table together with a *FileLoadError, so the caller can warn and keep
// going. Missing columns load as unset, unexpected columns are ignored, and
// cell values are preserved verbatim; validation is the form layer's job.
func Load(path string) (*collection.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("component=store action=load path=%s result=absent", path)
		return collection.New(), nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return collection.New(), &FileLoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetToRead(f))
	if err != nil {
		return collection.New(), &FileLoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return collection.New(), nil
	}

	colIdx := headerIndex(rows[0])
	cards := make([]card.Card, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		cards = append(cards, rowToCard(row, colIdx))
	}

	log.Printf("component=store action=load path=%s records=%d", path, len(cards))
	return collection.FromCards(cards), nil
}

// sheetToRead prefers the canonical sheet name and falls back to the first
// sheet, so files written by other tools still load.
func sheetToRead(f *excelize.File) string {
	for _, name := range f.GetSheetList() {
		if name == SheetName {
			return name
		}
	}
	if list := f.GetSheetList(); len(list) > 0 {
		return list[0]
	}
	return SheetName
}

// headerIndex maps each known column to its position in the header row,
// matching case-insensitively on trimmed names. Missing columns map to -1.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(Columns))
	for _, name := range Columns {
		idx[name] = -1
	}
	for i, cell := range header {
		trimmed := strings.TrimSpace(cell)
		for _, name := range Columns {
			if strings.EqualFold(trimmed, name) {
				idx[name] = i
				break
			}
		}
	}
	return idx
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowToCard builds a record from one sheet row. Quantity digits become an
// int (blank or malformed becomes 0), the alt-art cell is coerced to bool
// (blank or unparseable becomes false), everything else loads verbatim.
func rowToCard(row []string, colIdx map[string]int) card.Card {
	qty := 0
	if s := cellAt(row, colIdx["QTY"]); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			qty = n
		}
	}

	alt := false
	if s := cellAt(row, colIdx["Alt Art"]); s != "" {
		if b, err := strconv.ParseBool(strings.ToLower(s)); err == nil {
			alt = b
		}
	}

	return card.Card{
		Quantity:     qty,
		Number:       cellAt(row, colIdx["Card Number"]),
		Name:         cellAt(row, colIdx["Card Name"]),
		Crew:         cellAt(row, colIdx["Crew"]),
		Color:        cellAt(row, colIdx["Color"]),
		Foil:         cellAt(row, colIdx["Foil / Normal"]),
		Rarity:       cellAt(row, colIdx["Rarity"]),
		Kind:         cellAt(row, colIdx["Kind"]),
		AltArt:       alt,
		SpecialPower: cellAt(row, colIdx["Special Power"]),
		Notes:        cellAt(row, colIdx["Notes"]),
	}
}

// Save serializes the full table to the backing spreadsheet, overwriting
// it. The write goes to a temp file in the destination directory and is
// renamed into place, then the directory is synced, so a failed save never
// leaves a half-written collection behind. Returns *FileSaveError on any
// failure; the in-memory table is untouched either way.
func Save(path string, tbl *collection.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return &FileSaveError{Path: path, Err: err}
	}

	for i, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return &FileSaveError{Path: path, Err: err}
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return &FileSaveError{Path: path, Err: err}
		}
	}

	for r, c := range tbl.Records() {
		if err := writeRecordRow(f, r+2, c); err != nil {
			return &FileSaveError{Path: path, Err: err}
		}
	}

	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return &FileSaveError{Path: path, Err: err}
		}
	}

	tmpPath := path + ".tmp"
	if err := f.SaveAs(tmpPath); err != nil {
		return &FileSaveError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &FileSaveError{Path: path, Err: err}
	}

	// Fsync the parent directory so the rename metadata is durable.
	if dir, err := os.Open(filepath.Dir(path)); err == nil {
		_ = dir.Sync()
		_ = dir.Close()
	}

	log.Printf("component=store action=save path=%s records=%d", path, tbl.Len())
	return nil
}

// writeRecordRow writes one record at the given 1-based sheet row. Unset
// text fields leave their cells blank; the alt-art flag is written as a real
// spreadsheet boolean.
func writeRecordRow(f *excelize.File, row int, c card.Card) error {
	values := []any{
		c.Quantity,
		c.Number,
		c.Name,
		c.Crew,
		c.Color,
		c.Foil,
		c.Rarity,
		c.Kind,
		c.AltArt,
		c.SpecialPower,
		c.Notes,
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if b, ok := v.(bool); ok {
			if err := f.SetCellBool(SheetName, cell, b); err != nil {
				return err
			}
			continue
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
