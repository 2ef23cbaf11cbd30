package transform

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

func rawTable(records ...[]string) *domain.RawTable {
	return &domain.RawTable{Records: records}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal compares by value, so 20 and 20.00 are equal
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got.String()), msgAndArgs...)
	}
}

func assertTablesEqual(t *testing.T, want, got *domain.CleanedTable) {
	t.Helper()
	require.Equal(t, want.Columns, got.Columns)
	require.Len(t, got.Rows, len(want.Rows))

	for i := range want.Rows {
		assert.True(t, want.Rows[i].Date.Equal(got.Rows[i].Date), "row %d date", i)
		assert.Equal(t, want.Rows[i].Remarks, got.Rows[i].Remarks, "row %d remarks", i)
		for j := range want.Rows[i].Values {
			assert.True(t, want.Rows[i].Values[j].Equal(got.Rows[i].Values[j]), "row %d column %d", i, j)
		}
	}
}

// portfolioSheet mirrors the published sheet: a title row, a blank row, then the table.
// Rows are newest first.
func portfolioSheet() *domain.RawTable {
	return rawTable(
		[]string{"감독 투자 현황", "", "", "", "", "", "", ""},
		[]string{"", "", "", "", "", "", "", ""},
		[]string{" 날짜", "총 자산 ", "삼성증권", "업비트", "삼성전자 원금", "삼성전자 평가액", "비트코인 원금", "비트코인 평가액", "비고", "nan"},
		[]string{"2024-03-01", "12,500,000", "7,000,000", "5,500,000", "5,000,000", "6,000,000", "4,000,000", "5,000,000", "상여금", ""},
		[]string{"2024-02-01", "10,000,000", "6,000,000", "4,000,000", "5,000,000", "5,500,000", "0", "0", "", ""},
		[]string{"합계", "", "", "", "", "", "", "", "", ""},
	)
}
