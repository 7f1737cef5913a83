package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/tapsheet-dev/tapsheet/internal/report"
)

// Fixed side-by-side dashboard layout: transactions on the left, item
// totals in the middle, KPI groups on the right.
var (
	dataAnchor   = Anchor{Row: 1, Col: 1}  // A1
	totalsAnchor = Anchor{Row: 1, Col: 7}  // G1
	kpiAnchor    = Anchor{Row: 1, Col: 12} // L1
)

// RenderDashboard builds a standalone one-sheet workbook from a report
// result and returns it as an in-memory byte buffer.
func RenderDashboard(res *report.Result, sheet, currency string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	r, err := NewRenderer(f, sheet, currency)
	if err != nil {
		return nil, err
	}
	if err := r.HideGridlines(); err != nil {
		return nil, err
	}

	dataRows := make([][]any, 0, len(res.Filtered))
	for _, txn := range res.Filtered {
		dataRows = append(dataRows, []any{txn.TimeOfDay(), txn.Description, txn.GrossPrice.InexactFloat64()})
	}
	if err := r.Region(Region{
		Name:    "SalesData",
		Anchor:  dataAnchor,
		Header:  []string{"Time", "Description", "Price"},
		Rows:    dataRows,
		Formats: map[int]NumFmt{2: FmtCurrency},
		Width:   16,
	}); err != nil {
		return nil, err
	}

	totalsRows := make([][]any, 0, len(res.Totals)+1)
	for _, row := range res.Totals {
		totalsRows = append(totalsRows, []any{row.Description, row.Quantity.InexactFloat64(), row.Total.InexactFloat64()})
	}
	totalsRows = append(totalsRows, []any{"TOTAL", nil, res.GrandTotal.InexactFloat64()})
	if err := r.Region(Region{
		Name:    "ItemTotals",
		Anchor:  totalsAnchor,
		Header:  []string{"Description", "Quantity", "Total"},
		Rows:    totalsRows,
		Formats: map[int]NumFmt{1: FmtInteger, 2: FmtCurrency},
		Width:   16,
	}); err != nil {
		return nil, err
	}

	groupNames := make([]string, 0, len(res.Groups))
	for name := range res.Groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	kpiRows := make([][]any, 0, len(groupNames))
	for _, name := range groupNames {
		gt := res.Groups[name]
		kpiRows = append(kpiRows, []any{name, gt.Quantity.InexactFloat64(), gt.Total.InexactFloat64()})
	}
	if err := r.Region(Region{
		Name:    "GroupTotals",
		Anchor:  kpiAnchor,
		Header:  []string{"Group", "Quantity", "Total"},
		Rows:    kpiRows,
		Formats: map[int]NumFmt{1: FmtInteger, 2: FmtCurrency},
		Width:   16,
	}); err != nil {
		return nil, err
	}

	// Headline sits under the KPI region, never inside it.
	headlineRow := kpiAnchor.Row + len(kpiRows) + 3
	if headlineRow < 8 {
		headlineRow = 8
	}
	headline := Anchor{Row: headlineRow, Col: kpiAnchor.Col}
	if err := r.Headline(headline, "TOTAL", res.GrandTotal); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf, nil
}

// RenderIntoTemplate writes the filtered rows and totals into an existing
// template workbook, on the sheet named by sheet. The template owns header
// rows and styling; values are written starting at row 2, transactions in
// columns A-C and totals in columns E-F with a trailing TOTAL row. Fails
// before writing anything if the sheet is absent.
func RenderIntoTemplate(template io.Reader, sheet string, res *report.Result) (*bytes.Buffer, error) {
	f, err := excelize.OpenReader(template)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("looking up sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in template", sheet)
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	for i, txn := range res.Filtered {
		row := i + 2
		if err := set(1, row, txn.TimeOfDay()); err != nil {
			return nil, fmt.Errorf("writing transaction row %d: %w", row, err)
		}
		if err := set(2, row, txn.Description); err != nil {
			return nil, fmt.Errorf("writing transaction row %d: %w", row, err)
		}
		if err := set(3, row, txn.GrossPrice.InexactFloat64()); err != nil {
			return nil, fmt.Errorf("writing transaction row %d: %w", row, err)
		}
	}

	for i, total := range res.Totals {
		row := i + 2
		if err := set(5, row, total.Description); err != nil {
			return nil, fmt.Errorf("writing totals row %d: %w", row, err)
		}
		if err := set(6, row, total.Total.InexactFloat64()); err != nil {
			return nil, fmt.Errorf("writing totals row %d: %w", row, err)
		}
	}
	totalRow := len(res.Totals) + 2
	if err := set(5, totalRow, "TOTAL"); err != nil {
		return nil, fmt.Errorf("writing TOTAL row: %w", err)
	}
	if err := set(6, totalRow, res.GrandTotal.InexactFloat64()); err != nil {
		return nil, fmt.Errorf("writing TOTAL row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf, nil
}
