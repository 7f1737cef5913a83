package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

// ColumnMapping names the CSV columns the pipeline reads. Quantity and
// Account are optional; leave them empty for exports without those columns.
type ColumnMapping struct {
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity,omitempty"`
	Price       string `yaml:"price"`
	Account     string `yaml:"account,omitempty"`
}

// Locale describes the formatting conventions of an export.
type Locale struct {
	// DateLayout is the Go reference layout applied after month translation.
	DateLayout string `yaml:"date_layout"`
	// MonthNames maps source-locale month abbreviations to the English
	// abbreviations time.Parse understands. Applied to the date field only.
	MonthNames map[string]string `yaml:"month_names,omitempty"`
	// DecimalComma converts "," to "." in numeric fields before parsing.
	DecimalComma bool `yaml:"decimal_comma"`
	// CurrencySymbol is stripped from amounts and reused by report rendering.
	CurrencySymbol string `yaml:"currency_symbol"`
}

// sumUpDateLayout matches SumUp export timestamps like "3 Jan 2024 14:05".
const sumUpDateLayout = "2 Jan 2006 15:04"

// FrenchMonths maps the French month abbreviations SumUp emits.
func FrenchMonths() map[string]string {
	return map[string]string{
		"janv.": "Jan",
		"févr.": "Feb",
		"mars":  "Mar",
		"avr.":  "Apr",
		"mai":   "May",
		"juin":  "Jun",
		"juil.": "Jul",
		"août":  "Aug",
		"sept.": "Sep",
		"oct.":  "Oct",
		"nov.":  "Nov",
		"déc.":  "Dec",
	}
}

// SumUpParser parses SumUp transaction CSV exports.
type SumUpParser struct {
	format  string
	Columns ColumnMapping
	Locale  Locale
}

// NewSumUpFR returns the parser for the French-locale export
// (Date, Description, Quantité, Prix (TTC), Compte).
func NewSumUpFR() *SumUpParser {
	return &SumUpParser{
		format: "sumup-fr",
		Columns: ColumnMapping{
			Date:        "Date",
			Description: "Description",
			Quantity:    "Quantité",
			Price:       "Prix (TTC)",
			Account:     "Compte",
		},
		Locale: Locale{
			DateLayout:     sumUpDateLayout,
			MonthNames:     FrenchMonths(),
			DecimalComma:   true,
			CurrencySymbol: "€",
		},
	}
}

// NewSumUpEN returns the parser for the English-locale export
// (Date, Description, Quantity, Price (Gross), Account).
func NewSumUpEN() *SumUpParser {
	return &SumUpParser{
		format: "sumup-en",
		Columns: ColumnMapping{
			Date:        "Date",
			Description: "Description",
			Quantity:    "Quantity",
			Price:       "Price (Gross)",
			Account:     "Account",
		},
		Locale: Locale{
			DateLayout:     sumUpDateLayout,
			DecimalComma:   false,
			CurrencySymbol: "€",
		},
	}
}

// NewSumUp returns a parser with caller-supplied column and locale settings.
func NewSumUp(format string, columns ColumnMapping, locale Locale) *SumUpParser {
	return &SumUpParser{format: format, Columns: columns, Locale: locale}
}

// Format returns the parser name.
func (p *SumUpParser) Format() string { return p.format }

// columnIndex holds resolved header positions. -1 = column absent.
type columnIndex struct {
	date    int
	desc    int
	qty     int
	price   int
	account int
}

// Parse reads a SumUp CSV and returns Transactions. Any unparsable row
// aborts the whole import; there is no best-effort partial result.
func (p *SumUpParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // export variants differ in column count

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading sumup CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	cols, err := p.mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := p.parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// mapHeader resolves the configured column names against the header row.
// Date, Description and Price are required; Quantity and Account may be
// absent from the export.
func (p *SumUpParser) mapHeader(header []string) (columnIndex, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
		return -1
	}

	cols := columnIndex{
		date:    find(p.Columns.Date),
		desc:    find(p.Columns.Description),
		qty:     -1,
		price:   find(p.Columns.Price),
		account: -1,
	}
	if p.Columns.Quantity != "" {
		cols.qty = find(p.Columns.Quantity)
	}
	if p.Columns.Account != "" {
		cols.account = find(p.Columns.Account)
	}

	for _, req := range []struct {
		name string
		idx  int
	}{
		{p.Columns.Date, cols.date},
		{p.Columns.Description, cols.desc},
		{p.Columns.Price, cols.price},
	} {
		if req.idx < 0 {
			return columnIndex{}, fmt.Errorf("column %q not found in CSV header", req.name)
		}
	}
	return cols, nil
}

func (p *SumUpParser) parseRow(rec []string, cols columnIndex) (model.Transaction, error) {
	for _, idx := range []int{cols.date, cols.desc, cols.price} {
		if idx >= len(rec) {
			return model.Transaction{}, fmt.Errorf("expected at least %d fields, got %d", idx+1, len(rec))
		}
	}

	rawDate := rec[cols.date]
	ts, err := p.parseTimestamp(rawDate)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rawDate, err)
	}

	price, err := p.parseAmount(rec[cols.price])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing price %q: %w", rec[cols.price], err)
	}

	qty := decimal.NewFromInt(1)
	if cols.qty >= 0 && cols.qty < len(rec) && strings.TrimSpace(rec[cols.qty]) != "" {
		qty, err = p.parseAmount(rec[cols.qty])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing quantity %q: %w", rec[cols.qty], err)
		}
	}

	account := ""
	if cols.account >= 0 && cols.account < len(rec) {
		account = rec[cols.account]
	}

	return model.Transaction{
		Timestamp:   ts,
		Description: rec[cols.desc],
		Quantity:    qty,
		GrossPrice:  price,
		Account:     account,
	}, nil
}

// parseTimestamp translates source-locale month abbreviations and parses
// the result with the configured layout. Translation touches only the date
// field, never descriptions or other columns.
func (p *SumUpParser) parseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for from, to := range p.Locale.MonthNames {
		s = strings.Replace(s, from, to, 1)
	}
	return time.Parse(p.Locale.DateLayout, s)
}

// parseAmount strips the currency symbol and spacing, normalizes the
// decimal separator, then parses as a decimal.
func (p *SumUpParser) parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if p.Locale.CurrencySymbol != "" {
		s = strings.ReplaceAll(s, p.Locale.CurrencySymbol, "")
	}
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")
	if p.Locale.DecimalComma {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
