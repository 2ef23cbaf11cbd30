package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PairHoldings finds every principal column and pairs it with the column right after it.
// The pairing is positional: the next column must exist, be numeric, and not be another
// principal column. Any violation is reported as domain.ErrUnpairedPrincipalColumn.
func PairHoldings(table *domain.CleanedTable, cfg domain.SheetConfig) ([]domain.HoldingPair, error) {
	var pairs []domain.HoldingPair

	for i, col := range table.Columns {
		if col.Kind != domain.ColumnKindNumeric || !strings.Contains(col.Name, cfg.PrincipalMarker) {
			continue
		}

		if i+1 >= len(table.Columns) {
			return nil, fmt.Errorf("%w: %q is the last column", domain.ErrUnpairedPrincipalColumn, col.Name)
		}

		next := table.Columns[i+1]
		if next.Kind != domain.ColumnKindNumeric || strings.Contains(next.Name, cfg.PrincipalMarker) {
			return nil, fmt.Errorf("%w: %q is followed by %q", domain.ErrUnpairedPrincipalColumn, col.Name, next.Name)
		}

		pairs = append(pairs, domain.HoldingPair{
			Name:            holdingName(col.Name, cfg.PrincipalSuffix),
			PrincipalColumn: col.Name,
			ValuationColumn: next.Name,
			PrincipalIndex:  i,
			ValuationIndex:  i + 1,
		})
	}

	return pairs, nil
}

func holdingName(principalColumn, suffix string) string {
	name := strings.TrimSpace(strings.TrimSuffix(principalColumn, suffix))
	if name == "" {
		return principalColumn
	}
	return name
}

// ReturnPct calculates (valuation - principal) / principal * 100.
// A zero principal yields a zero return rather than a division error.
func ReturnPct(valuation, principal decimal.Decimal) decimal.Decimal {
	if principal.IsZero() {
		return decimal.Zero
	}
	return valuation.Sub(principal).Mul(hundred).Div(principal)
}

// SummarizeHoldings computes the current state of every pair from the snapshot
func SummarizeHoldings(snapshot *domain.Snapshot, pairs []domain.HoldingPair) []domain.HoldingSummary {
	if snapshot == nil {
		return nil
	}

	summaries := make([]domain.HoldingSummary, 0, len(pairs))
	for _, pair := range pairs {
		principal := snapshot.At(pair.PrincipalIndex)
		valuation := snapshot.At(pair.ValuationIndex)

		summaries = append(summaries, domain.HoldingSummary{
			Name:      pair.Name,
			Valuation: valuation,
			Principal: principal,
			ReturnPct: ReturnPct(valuation, principal),
		})
	}

	return summaries
}

// HoldingHistory builds the long-format return series used by trend charts.
// Points are grouped by holding in pair order; within a holding, rows keep table order.
func HoldingHistory(table *domain.CleanedTable, pairs []domain.HoldingPair) []domain.HoldingHistoryPoint {
	if table.IsEmpty() || len(pairs) == 0 {
		return nil
	}

	points := make([]domain.HoldingHistoryPoint, 0, len(table.Rows)*len(pairs))
	for _, pair := range pairs {
		for _, row := range table.Rows {
			points = append(points, domain.HoldingHistoryPoint{
				Date:      row.Date,
				Holding:   pair.Name,
				ReturnPct: ReturnPct(valueAt(row, pair.ValuationIndex), valueAt(row, pair.PrincipalIndex)),
			})
		}
	}

	return points
}

func valueAt(row domain.Row, idx int) decimal.Decimal {
	if idx < 0 || idx >= len(row.Values) {
		return decimal.Zero
	}
	return row.Values[idx]
}
