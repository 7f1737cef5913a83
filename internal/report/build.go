package report

import (
	"github.com/shopspring/decimal"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

// Params configures one report build.
type Params struct {
	Selection []string
	DateRange *model.DateRange
	Groups    map[string][]string
}

// Result bundles everything the rendering layers consume.
type Result struct {
	Filtered   []model.Transaction
	Totals     []model.TotalsRow
	GrandTotal decimal.Decimal
	Buckets    []model.TimeBucket
	Groups     map[string]model.GroupTotal
}

// Build runs the whole pipeline: filter, aggregate, bucket, group split.
// Returns ErrEmptySelection without doing any work when no descriptions
// are selected.
func Build(txns []model.Transaction, p Params) (*Result, error) {
	if len(p.Selection) == 0 {
		return nil, ErrEmptySelection
	}

	filtered := Filter(txns, p.Selection, p.DateRange)
	totals, grand := Aggregate(filtered, p.Selection)

	return &Result{
		Filtered:   filtered,
		Totals:     totals,
		GrandTotal: grand,
		Buckets:    BucketByHalfHour(filtered),
		Groups:     SplitByGroup(filtered, p.Groups),
	}, nil
}
