package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Convention tells which end of the sheet holds the most recent record
type Convention string

const (
	ConventionFirstRow Convention = "first-row"
	ConventionLastRow  Convention = "last-row"
)

// ParseConvention accepts "first", "last", "first-row" or "last-row" (case-insensitive)
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", string(ConventionFirstRow):
		return ConventionFirstRow, nil
	case "last", string(ConventionLastRow):
		return ConventionLastRow, nil
	default:
		return "", fmt.Errorf("invalid latest-row convention %q: must be first or last", s)
	}
}

// Snapshot is the single row treated as the current state of the portfolio
type Snapshot struct {
	Date    time.Time
	Columns []string                   // numeric column names, in table order
	Values  map[string]decimal.Decimal // numeric values by column name, first column wins
	Cells   []decimal.Decimal          // the selected row, aligned with CleanedTable.Columns
}

// Get returns the value of the named column and whether the column exists
func (s *Snapshot) Get(name string) (decimal.Decimal, bool) {
	v, ok := s.Values[name]
	return v, ok
}

// At returns the value of the column at position i, zero when out of range
func (s *Snapshot) At(i int) decimal.Decimal {
	if i < 0 || i >= len(s.Cells) {
		return decimal.Zero
	}
	return s.Cells[i]
}
