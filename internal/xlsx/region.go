// Package xlsx renders report results into styled Office Open XML
// workbooks: multiple independently anchored regions on one sheet, each
// with a styled header, positional row banding, per-column number formats
// and a named-table registration.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Anchor is the 1-based top-left coordinate of a region.
type Anchor struct {
	Row int
	Col int
}

// NumFmt selects the number format applied to a region column.
type NumFmt int

const (
	FmtText NumFmt = iota
	FmtCurrency
	FmtInteger
)

// Region is a rectangular block: a header row followed by data rows,
// registered as a named table spanning exactly header+data.
type Region struct {
	// Name becomes the workbook table name; it must be a valid table
	// identifier (letters, digits, underscores, no leading digit).
	Name    string
	Anchor  Anchor
	Header  []string
	Rows    [][]any
	Formats map[int]NumFmt // column offset within the region -> format
	// Width optionally sets the column width for the whole region span.
	Width float64
}

// cell returns the cell name at a column/row offset from the anchor.
func (a Anchor) cell(dcol, drow int) (string, error) {
	name, err := excelize.CoordinatesToCellName(a.Col+dcol, a.Row+drow)
	if err != nil {
		return "", fmt.Errorf("cell at (%d,%d)+(%d,%d): %w", a.Row, a.Col, drow, dcol, err)
	}
	return name, nil
}
