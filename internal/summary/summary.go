// Package summary renders a report result as terminal tables: item totals,
// half-hour sales and KPI groups with optional prior-period comparison.
package summary

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/tapsheet-dev/tapsheet/internal/report"
)

const bucketTimeFormat = "15:04"

// Print writes the whole on-screen summary. prev maps group names to
// user-supplied prior-period quantities; groups without an entry get no
// comparison column value.
func Print(w io.Writer, res *report.Result, currency string, prev map[string]decimal.Decimal) {
	printTotals(w, res, currency)
	printBuckets(w, res, currency)
	printGroups(w, res, currency, prev)
}

func money(d decimal.Decimal, currency string) string {
	return d.StringFixed(2) + " " + currency
}

func printTotals(w io.Writer, res *report.Result, currency string) {
	fmt.Fprintln(w, "Item totals")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Description", "Quantity", "Total"})
	for _, row := range res.Totals {
		table.Append([]string{row.Description, row.Quantity.String(), money(row.Total, currency)})
	}
	table.SetFooter([]string{"TOTAL", "", money(res.GrandTotal, currency)})
	table.Render()
}

func printBuckets(w io.Writer, res *report.Result, currency string) {
	if len(res.Buckets) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSales by half hour")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"From", "Total"})
	for _, b := range res.Buckets {
		table.Append([]string{b.Start.Format(bucketTimeFormat), money(b.Total, currency)})
	}
	table.Render()
}

func printGroups(w io.Writer, res *report.Result, currency string, prev map[string]decimal.Decimal) {
	if len(res.Groups) == 0 {
		return
	}
	fmt.Fprintln(w, "\nKPI groups")

	names := make([]string, 0, len(res.Groups))
	for name := range res.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	compare := len(prev) > 0

	table := tablewriter.NewWriter(w)
	if compare {
		table.SetHeader([]string{"Group", "Quantity", "Total", "Previous", "Change"})
	} else {
		table.SetHeader([]string{"Group", "Quantity", "Total"})
	}

	for _, name := range names {
		gt := res.Groups[name]
		row := []string{name, gt.Quantity.String(), money(gt.Total, currency)}
		if compare {
			if p, ok := prev[name]; ok {
				delta := gt.Quantity.Sub(p)
				sign := ""
				if delta.IsPositive() {
					sign = "+"
				}
				row = append(row, p.String(), sign+delta.String())
			} else {
				row = append(row, "", "")
			}
		}
		table.Append(row)
	}
	table.Render()
}
