package transform

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// GrowthSeries returns the total-assets column over time, in table order.
// A missing or non-numeric column yields an empty series.
func GrowthSeries(table *domain.CleanedTable, totalColumn string) []domain.GrowthPoint {
	if table.IsEmpty() {
		return nil
	}

	idx := table.Index(totalColumn)
	if idx < 0 || table.Columns[idx].Kind != domain.ColumnKindNumeric {
		return nil
	}

	points := make([]domain.GrowthPoint, 0, len(table.Rows))
	for _, row := range table.Rows {
		points = append(points, domain.GrowthPoint{Date: row.Date, Total: row.Values[idx]})
	}

	return points
}

// Progress measures current against target.
// Logic:
//   - Remaining = max(target - current, 0)
//   - Ratio = current / target, clamped to [0, 1]
//   - A target that is not positive leaves Remaining and Ratio at zero
func Progress(current, target decimal.Decimal) domain.GoalProgress {
	progress := domain.GoalProgress{
		Current:   current,
		Target:    target,
		Remaining: decimal.Zero,
	}

	if !target.IsPositive() {
		return progress
	}

	progress.Remaining = decimal.Max(target.Sub(current), decimal.Zero)

	ratio := current.Div(target).InexactFloat64()
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	progress.Ratio = ratio

	return progress
}
