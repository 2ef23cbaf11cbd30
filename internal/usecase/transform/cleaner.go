package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// Clean promotes raw.Records[headerRow] to column headers and types every row below it.
// Logic:
//   - Header names are trimmed; blank and placeholder columns are dropped
//   - The first column named cfg.DateMarker is the date column, remark columns stay text
//   - Every other cell loses its thousands separators and parses as a decimal, 0 on failure
//   - Dates parse with the first matching layout and lose their time component;
//     rows whose date does not parse are dropped
//
// Row order is preserved. A table with no rows left is a valid result.
func Clean(raw *domain.RawTable, headerRow int, cfg domain.SheetConfig) (*domain.CleanedTable, error) {
	if raw.IsEmpty() {
		return nil, domain.ErrNoData
	}

	if headerRow < 0 || headerRow >= len(raw.Records) {
		return nil, fmt.Errorf("header row %d out of range for %d records", headerRow, len(raw.Records))
	}

	header := raw.Records[headerRow]
	columns := make([]domain.Column, 0, len(header))
	sources := make([]int, 0, len(header)) // position of each kept column in the raw record
	dateIdx := -1

	for j, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" || name == cfg.PlaceholderColumn {
			continue
		}

		kind := domain.ColumnKindNumeric
		switch {
		case name == cfg.DateMarker && dateIdx < 0:
			kind = domain.ColumnKindDate
			dateIdx = len(columns)
		case name == cfg.DateMarker || cfg.IsRemark(name):
			kind = domain.ColumnKindRemark
		}

		columns = append(columns, domain.Column{Name: name, Kind: kind})
		sources = append(sources, j)
	}

	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: row %d has no %q column", domain.ErrHeaderNotFound, headerRow, cfg.DateMarker)
	}

	body := raw.Records[headerRow+1:]
	rows := make([]domain.Row, 0, len(body))

	for _, record := range body {
		date, ok := parseDate(cellAt(record, sources[dateIdx]), cfg.DateLayouts)
		if !ok {
			continue
		}

		row := domain.Row{
			Date:    date,
			Values:  make([]decimal.Decimal, len(columns)),
			Remarks: make([]string, len(columns)),
		}

		for i, col := range columns {
			cell := cellAt(record, sources[i])
			switch col.Kind {
			case domain.ColumnKindRemark:
				row.Remarks[i] = strings.TrimSpace(cell)
			case domain.ColumnKindNumeric:
				row.Values[i] = parseNumber(cell, cfg.ThousandsSeparators)
			}
		}

		rows = append(rows, row)
	}

	return &domain.CleanedTable{Columns: columns, Rows: rows}, nil
}

// cellAt returns the j-th cell of a record, or "" for short records
func cellAt(record []string, j int) string {
	if j < len(record) {
		return record[j]
	}
	return ""
}

// parseNumber strips separators and parses a decimal, substituting zero for anything unparseable
func parseNumber(cell, separators string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	for _, sep := range separators {
		s = strings.ReplaceAll(s, string(sep), "")
	}

	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseDate tries each layout in order and truncates the result to the day, in UTC
func parseDate(cell string, layouts []string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
