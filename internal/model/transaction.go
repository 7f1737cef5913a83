package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one parsed row of a point-of-sale CSV export.
type Transaction struct {
	Timestamp   time.Time
	Description string
	Quantity    decimal.Decimal
	GrossPrice  decimal.Decimal // tax-inclusive (TTC)
	Account     string          // informational only
}

// Date returns the calendar-date component (midnight, same location).
func (t Transaction) Date() time.Time {
	y, m, d := t.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Timestamp.Location())
}

// TimeOfDay returns the zero-padded "HH:MM" component.
func (t Transaction) TimeOfDay() string {
	return t.Timestamp.Format("15:04")
}

// DateRange is an inclusive calendar-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date component of ts falls within the range,
// inclusive on both ends.
func (r DateRange) Contains(ts time.Time) bool {
	y, m, d := ts.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
	return !day.Before(r.Start) && !day.After(r.End)
}
