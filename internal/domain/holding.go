package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingPair links a principal column to the valuation column right after it.
// The indexes are positions in CleanedTable.Columns; sheets often repeat the same
// valuation header for every holding, so names alone do not identify a column.
type HoldingPair struct {
	Name            string
	PrincipalColumn string
	ValuationColumn string
	PrincipalIndex  int
	ValuationIndex  int
}

// HoldingSummary is the current state of one holding.
// ReturnPct = (Valuation - Principal) / Principal * 100, and zero when Principal is zero.
type HoldingSummary struct {
	Name      string
	Valuation decimal.Decimal // what the holding is worth now
	Principal decimal.Decimal // what was put in
	ReturnPct decimal.Decimal
}

// HoldingHistoryPoint is one (date, holding) entry of the long-format return series
type HoldingHistoryPoint struct {
	Date      time.Time
	Holding   string
	ReturnPct decimal.Decimal
}
