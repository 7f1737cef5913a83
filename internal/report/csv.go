package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

// TotalsHeader is the CSV header for an exported totals table.
const TotalsHeader = "description,quantity,total"

// BucketsHeader is the CSV header for an exported bucket table.
const BucketsHeader = "bucket_start,total"

const bucketTimeFormat = "15:04"

// WriteTotals writes the totals table as CSV, including the trailing
// TOTAL row.
func WriteTotals(w io.Writer, rows []model.TotalsRow, grand decimal.Decimal) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TotalsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		rec := []string{row.Description, row.Quantity.String(), row.Total.StringFixed(2)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := cw.Write([]string{"TOTAL", "", grand.StringFixed(2)}); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}
	return cw.Error()
}

// WriteBuckets writes the half-hour bucket table as CSV.
func WriteBuckets(w io.Writer, buckets []model.TimeBucket) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(BucketsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, b := range buckets {
		rec := []string{b.Start.Format(bucketTimeFormat), b.Total.StringFixed(2)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
