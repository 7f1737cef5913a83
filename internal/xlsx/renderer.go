package xlsx

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	headerFill = "4F81BD" // steel blue, white bold font on top
	bandFill   = "F2F2F2" // light gray for even data rows
	tableStyle = "TableStyleLight1"
)

// styleKey identifies one combination of banding and number format.
type styleKey struct {
	banded bool
	format NumFmt
}

// Renderer writes styled regions onto one sheet of a workbook.
type Renderer struct {
	f        *excelize.File
	sheet    string
	currency string

	headerStyle   int
	headlineLabel int
	headlineValue int
	cellStyles    map[styleKey]int
}

// NewRenderer prepares styles for the given sheet. The currency symbol is
// suffixed in the accounting number format, per the source locale.
func NewRenderer(f *excelize.File, sheet, currency string) (*Renderer, error) {
	r := &Renderer{
		f:          f,
		sheet:      sheet,
		currency:   currency,
		cellStyles: make(map[styleKey]int),
	}

	var err error
	r.headerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	r.headlineLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating headline label style: %w", err)
	}

	numFmt := r.currencyFormat()
	r.headlineValue, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 14},
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating headline value style: %w", err)
	}

	return r, nil
}

// currencyFormat returns the accounting format with the symbol suffixed
// ("1 234,56 €" convention), not prefixed.
func (r *Renderer) currencyFormat() string {
	return fmt.Sprintf("#,##0.00\\ \"%s\"", r.currency)
}

// style returns (creating on first use) the style for a data cell.
func (r *Renderer) style(key styleKey) (int, error) {
	if id, ok := r.cellStyles[key]; ok {
		return id, nil
	}

	s := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}
	if key.banded {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bandFill}}
	}
	switch key.format {
	case FmtCurrency:
		numFmt := r.currencyFormat()
		s.CustomNumFmt = &numFmt
	case FmtInteger:
		numFmt := "#,##0"
		s.CustomNumFmt = &numFmt
	}

	id, err := r.f.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("creating cell style: %w", err)
	}
	r.cellStyles[key] = id
	return id, nil
}

// HideGridlines turns sheet gridlines off.
func (r *Renderer) HideGridlines() error {
	show := false
	if err := r.f.SetSheetView(r.sheet, 0, &excelize.ViewOptions{ShowGridLines: &show}); err != nil {
		return fmt.Errorf("hiding gridlines: %w", err)
	}
	return nil
}

// Region writes one region: styled header, banded data rows, per-column
// number formats, a named table over exactly header+data, and the column
// width when set. Banding is positional — every second data row within the
// region, regardless of content. The named table disables its own row
// stripes so the explicit fill is the only banding.
func (r *Renderer) Region(reg Region) error {
	if len(reg.Header) == 0 {
		return fmt.Errorf("region %s: header required", reg.Name)
	}

	for i, h := range reg.Header {
		cell, err := reg.Anchor.cell(i, 0)
		if err != nil {
			return err
		}
		if err := r.f.SetCellValue(r.sheet, cell, h); err != nil {
			return fmt.Errorf("region %s: writing header: %w", reg.Name, err)
		}
	}

	firstHeader, err := reg.Anchor.cell(0, 0)
	if err != nil {
		return err
	}
	lastHeader, err := reg.Anchor.cell(len(reg.Header)-1, 0)
	if err != nil {
		return err
	}
	if err := r.f.SetCellStyle(r.sheet, firstHeader, lastHeader, r.headerStyle); err != nil {
		return fmt.Errorf("region %s: styling header: %w", reg.Name, err)
	}

	for i, row := range reg.Rows {
		banded := (i+1)%2 == 0 // even 1-based positions
		for j := range reg.Header {
			cell, err := reg.Anchor.cell(j, i+1)
			if err != nil {
				return err
			}
			if j < len(row) && row[j] != nil {
				if err := r.f.SetCellValue(r.sheet, cell, row[j]); err != nil {
					return fmt.Errorf("region %s: writing row %d: %w", reg.Name, i+1, err)
				}
			}
			styleID, err := r.style(styleKey{banded: banded, format: reg.Formats[j]})
			if err != nil {
				return err
			}
			if err := r.f.SetCellStyle(r.sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("region %s: styling row %d: %w", reg.Name, i+1, err)
			}
		}
	}

	// Header-only regions are not registered; a table needs data rows.
	if len(reg.Rows) > 0 {
		lastCell, err := reg.Anchor.cell(len(reg.Header)-1, len(reg.Rows))
		if err != nil {
			return err
		}
		stripes := false
		if err := r.f.AddTable(r.sheet, &excelize.Table{
			Range:          firstHeader + ":" + lastCell,
			Name:           reg.Name,
			StyleName:      tableStyle,
			ShowRowStripes: &stripes,
		}); err != nil {
			return fmt.Errorf("region %s: registering table: %w", reg.Name, err)
		}
	}

	if reg.Width > 0 {
		firstCol, err := excelize.ColumnNumberToName(reg.Anchor.Col)
		if err != nil {
			return fmt.Errorf("region %s: %w", reg.Name, err)
		}
		lastCol, err := excelize.ColumnNumberToName(reg.Anchor.Col + len(reg.Header) - 1)
		if err != nil {
			return fmt.Errorf("region %s: %w", reg.Name, err)
		}
		if err := r.f.SetColWidth(r.sheet, firstCol, lastCol, reg.Width); err != nil {
			return fmt.Errorf("region %s: setting column width: %w", reg.Name, err)
		}
	}
	return nil
}

// Headline writes the grand-total cell pair: a bold label and a larger,
// right-aligned, currency-formatted value.
func (r *Renderer) Headline(a Anchor, label string, value decimal.Decimal) error {
	labelCell, err := a.cell(0, 0)
	if err != nil {
		return err
	}
	valueCell, err := a.cell(1, 0)
	if err != nil {
		return err
	}

	if err := r.f.SetCellValue(r.sheet, labelCell, label); err != nil {
		return fmt.Errorf("writing headline label: %w", err)
	}
	if err := r.f.SetCellStyle(r.sheet, labelCell, labelCell, r.headlineLabel); err != nil {
		return fmt.Errorf("styling headline label: %w", err)
	}

	if err := r.f.SetCellValue(r.sheet, valueCell, value.InexactFloat64()); err != nil {
		return fmt.Errorf("writing headline value: %w", err)
	}
	if err := r.f.SetCellStyle(r.sheet, valueCell, valueCell, r.headlineValue); err != nil {
		return fmt.Errorf("styling headline value: %w", err)
	}
	return nil
}
