package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalsRow is the per-description aggregation result.
type TotalsRow struct {
	Description string
	Quantity    decimal.Decimal
	Total       decimal.Decimal
}

// TimeBucket is the summed gross price of all transactions whose timestamp
// falls in [Start, Start+30min).
type TimeBucket struct {
	Start time.Time
	Total decimal.Decimal
}

// GroupTotal holds the summed quantity and gross price for one KPI group.
type GroupTotal struct {
	Quantity decimal.Decimal
	Total    decimal.Decimal
}
