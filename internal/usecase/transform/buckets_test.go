package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

func snapshotOf(values map[string]string) *domain.Snapshot {
	s := &domain.Snapshot{Values: make(map[string]decimal.Decimal)}
	for k, v := range values {
		s.Columns = append(s.Columns, k)
		s.Values[k] = decimal.RequireFromString(v)
	}
	return s
}

func TestAggregateBuckets(t *testing.T) {
	snapshot := snapshotOf(map[string]string{
		"삼성증권": "7000000",
		"KB증권":  "3000000",
		"업비트":   "5500000",
		"우리은행":  "1000000",
	})

	defs := []domain.BucketDefinition{
		{Label: "주식", Columns: []string{"삼성증권", "KB증권", "한국투자증권"}},
		{Label: "코인", Columns: []string{"업비트"}},
		{Label: "현금", Columns: []string{"우리은행", "카카오뱅크"}},
		{Label: "부동산", Columns: []string{"아파트"}},
	}

	totals := AggregateBuckets(snapshot, defs)
	require.Len(t, totals, 4)

	// Configured order is kept and missing columns count as zero
	assert.Equal(t, "주식", totals[0].Label)
	assertDecimal(t, "10000000", totals[0].Total)
	assert.Equal(t, "코인", totals[1].Label)
	assertDecimal(t, "5500000", totals[1].Total)
	assert.Equal(t, "현금", totals[2].Label)
	assertDecimal(t, "1000000", totals[2].Total)
	assert.Equal(t, "부동산", totals[3].Label)
	assert.True(t, totals[3].Total.IsZero())
}

func TestAggregateBuckets_NilSnapshot(t *testing.T) {
	assert.Nil(t, AggregateBuckets(nil, domain.DefaultSheetConfig().Buckets))
}

func TestAccountBalances(t *testing.T) {
	snapshot := snapshotOf(map[string]string{
		"업비트":  "5500000",
		"삼성증권": "7000000",
	})

	balances := AccountBalances(snapshot, []string{"삼성증권", "KB증권", "업비트"})

	require.Len(t, balances, 2)
	assert.Equal(t, "삼성증권", balances[0].Account)
	assertDecimal(t, "7000000", balances[0].Amount)
	assert.Equal(t, "업비트", balances[1].Account)
	assertDecimal(t, "5500000", balances[1].Amount)

	assert.Nil(t, AccountBalances(nil, []string{"업비트"}))
}
