package transform

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// AggregateBuckets sums the snapshot values of each bucket's member columns.
// A column missing from the snapshot contributes zero: tracked accounts come and go.
// Totals are returned in definition order.
func AggregateBuckets(snapshot *domain.Snapshot, defs []domain.BucketDefinition) []domain.BucketTotal {
	if snapshot == nil {
		return nil
	}

	totals := make([]domain.BucketTotal, 0, len(defs))
	for _, def := range defs {
		total := decimal.Zero
		for _, col := range def.Columns {
			if v, ok := snapshot.Get(col); ok {
				total = total.Add(v)
			}
		}
		totals = append(totals, domain.BucketTotal{Label: def.Label, Total: total})
	}

	return totals
}

// AccountBalances lists the snapshot value of each configured account column.
// Accounts absent from the sheet are left out.
func AccountBalances(snapshot *domain.Snapshot, accounts []string) []domain.AccountBalance {
	if snapshot == nil {
		return nil
	}

	balances := make([]domain.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		amount, ok := snapshot.Get(account)
		if !ok {
			continue
		}
		balances = append(balances, domain.AccountBalance{Account: account, Amount: amount})
	}

	return balances
}
