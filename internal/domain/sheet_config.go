package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SheetConfig describes how to read the published sheet and what to derive from it.
// Every field is externally settable; DefaultSheetConfig matches the household
// portfolio sheet the dashboard was built for.
type SheetConfig struct {
	DateMarker          string   // header cell of the date column, also used to locate the header row
	RemarkColumns       []string // free-text columns kept out of numeric parsing
	PrincipalMarker     string   // substring identifying principal columns
	PrincipalSuffix     string   // stripped from a principal column name to get the holding name
	PlaceholderColumn   string   // literal header of blank trailing columns, dropped on cleaning
	ThousandsSeparators string   // characters removed before numeric parsing
	DateLayouts         []string // time.Parse layouts tried in order

	Latest         Convention
	Buckets        []BucketDefinition
	AccountColumns []string
	TotalColumn    string
	Target         decimal.Decimal
}

// DefaultSheetConfig returns the layout of the household portfolio sheet.
func DefaultSheetConfig() SheetConfig {
	return SheetConfig{
		DateMarker:          "날짜",
		RemarkColumns:       []string{"비고"},
		PrincipalMarker:     "원금",
		PrincipalSuffix:     " 원금",
		PlaceholderColumn:   "nan",
		ThousandsSeparators: ",",
		DateLayouts:         []string{DateFormat, "2006. 1. 2", "2006/01/02", "2006-01-02 15:04:05"},
		Latest:              ConventionFirstRow,
		Buckets: []BucketDefinition{
			{Label: "주식", Columns: []string{"삼성증권", "KB증권", "한국투자증권"}},
			{Label: "코인", Columns: []string{"업비트"}},
			{Label: "현금", Columns: []string{"우리은행", "카카오뱅크"}},
		},
		AccountColumns: []string{"삼성증권", "KB증권", "한국투자증권", "업비트", "우리은행", "카카오뱅크"},
		TotalColumn:    "총 자산",
		Target:         decimal.NewFromInt(350000000),
	}
}

// IsRemark reports whether the named column is configured as free text
func (c *SheetConfig) IsRemark(name string) bool {
	for _, r := range c.RemarkColumns {
		if r == name {
			return true
		}
	}
	return false
}

// Validate ensures the configuration can drive a transformation
func (c *SheetConfig) Validate() error {
	if c.DateMarker == "" {
		return errors.New("date marker cannot be empty")
	}

	if c.PrincipalMarker == "" {
		return errors.New("principal marker cannot be empty")
	}

	if len(c.DateLayouts) == 0 {
		return errors.New("at least one date layout is required")
	}

	if c.Latest != ConventionFirstRow && c.Latest != ConventionLastRow {
		return fmt.Errorf("invalid latest-row convention %q", c.Latest)
	}

	for i := range c.Buckets {
		if err := c.Buckets[i].Validate(); err != nil {
			return fmt.Errorf("invalid bucket #%d: %w", i+1, err)
		}
	}

	if c.Target.IsNegative() {
		return errors.New("target amount cannot be negative")
	}

	return nil
}
