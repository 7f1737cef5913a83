// Package report implements the pure data transformations behind a service
// report: selection filtering, per-description totals, half-hour sales
// buckets and KPI group splits.
package report

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

// ErrEmptySelection is returned by Build when no descriptions are selected.
// It is a no-op notice for the caller, not a data error.
var ErrEmptySelection = errors.New("no descriptions selected")

// bucketSize is the time-of-day aggregation window.
const bucketSize = 30 * time.Minute

// Filter returns the transactions whose description is in selection and,
// when dr is non-nil, whose date falls inside the range (inclusive both
// ends). Relative order is preserved. An empty selection yields nil.
func Filter(txns []model.Transaction, selection []string, dr *model.DateRange) []model.Transaction {
	if len(selection) == 0 {
		return nil
	}

	selected := make(map[string]bool, len(selection))
	for _, desc := range selection {
		selected[desc] = true
	}

	var out []model.Transaction
	for _, txn := range txns {
		if !selected[txn.Description] {
			continue
		}
		if dr != nil && !dr.Contains(txn.Timestamp) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// Aggregate produces one TotalsRow per description, in list order, summing
// quantity and gross price over matching transactions. Descriptions with no
// matches still get a zero row. Repeated entries in the list are collapsed
// to their first occurrence. The returned grand total is the sum of all row
// totals.
func Aggregate(txns []model.Transaction, descriptions []string) ([]model.TotalsRow, decimal.Decimal) {
	seen := make(map[string]int, len(descriptions))
	var rows []model.TotalsRow
	for _, desc := range descriptions {
		if _, dup := seen[desc]; dup {
			continue
		}
		seen[desc] = len(rows)
		rows = append(rows, model.TotalsRow{Description: desc})
	}

	for _, txn := range txns {
		i, ok := seen[txn.Description]
		if !ok {
			continue
		}
		rows[i].Quantity = rows[i].Quantity.Add(txn.Quantity)
		rows[i].Total = rows[i].Total.Add(txn.GrossPrice)
	}

	grand := decimal.Zero
	for _, row := range rows {
		grand = grand.Add(row.Total)
	}
	return rows, grand
}

// BucketByHalfHour sums gross prices into half-hour windows keyed by the
// timestamp floored to the preceding 30-minute boundary. Empty buckets are
// omitted; results are sorted ascending by bucket start.
func BucketByHalfHour(txns []model.Transaction) []model.TimeBucket {
	sums := make(map[time.Time]decimal.Decimal)
	for _, txn := range txns {
		key := txn.Timestamp.Truncate(bucketSize)
		sums[key] = sums[key].Add(txn.GrossPrice)
	}

	buckets := make([]model.TimeBucket, 0, len(sums))
	for start, total := range sums {
		buckets = append(buckets, model.TimeBucket{Start: start, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

// SplitByGroup sums quantity and gross price per named group, where each
// group is defined by its own description set. Groups are independent; a
// description may belong to more than one group.
func SplitByGroup(txns []model.Transaction, groups map[string][]string) map[string]model.GroupTotal {
	totals := make(map[string]model.GroupTotal, len(groups))
	for name, members := range groups {
		member := make(map[string]bool, len(members))
		for _, desc := range members {
			member[desc] = true
		}

		var gt model.GroupTotal
		for _, txn := range txns {
			if !member[txn.Description] {
				continue
			}
			gt.Quantity = gt.Quantity.Add(txn.Quantity)
			gt.Total = gt.Total.Add(txn.GrossPrice)
		}
		totals[name] = gt
	}
	return totals
}
