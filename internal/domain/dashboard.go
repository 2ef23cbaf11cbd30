package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GrowthPoint is one point of the total-assets series
type GrowthPoint struct {
	Date  time.Time
	Total decimal.Decimal
}

// GoalProgress measures the current total against the savings target.
// Remaining never goes below zero and Ratio is clamped to [0, 1].
type GoalProgress struct {
	Current   decimal.Decimal
	Target    decimal.Decimal
	Remaining decimal.Decimal
	Ratio     float64
}

// Dashboard gathers everything derived from one load of the sheet.
// Snapshot is nil when the cleaned table has no rows yet; that is a valid state, not an error.
type Dashboard struct {
	Table    *CleanedTable
	Snapshot *Snapshot
	Holdings []HoldingSummary
	History  []HoldingHistoryPoint
	Buckets  []BucketTotal
	Accounts []AccountBalance
	Growth   []GrowthPoint
	Goal     GoalProgress
}

// HasData reports whether a latest snapshot could be selected
func (d *Dashboard) HasData() bool {
	return d != nil && d.Snapshot != nil
}
