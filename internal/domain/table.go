package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the ISO-8601 day format used when a cleaned table is written back out.
const DateFormat = "2006-01-02"

// RawTable holds the cells of a sheet exactly as decoded from CSV.
// Records may start with title or blank rows; the header row is somewhere inside Records.
type RawTable struct {
	Records [][]string
}

// IsEmpty reports whether the table carries no records at all
func (r *RawTable) IsEmpty() bool {
	return r == nil || len(r.Records) == 0
}

// ColumnKind tells how the cells of a column are typed after cleaning
type ColumnKind string

const (
	ColumnKindDate    ColumnKind = "DATE"
	ColumnKindRemark  ColumnKind = "REMARK"
	ColumnKindNumeric ColumnKind = "NUMERIC"
)

// Column is a named, typed column of a CleanedTable
type Column struct {
	Name string
	Kind ColumnKind
}

// Row is a single dated record of a CleanedTable.
// Values and Remarks are aligned with CleanedTable.Columns: Values holds the parsed
// number for NUMERIC columns (zero elsewhere), Remarks holds the text of REMARK columns.
type Row struct {
	Date    time.Time
	Values  []decimal.Decimal
	Remarks []string
}

// CleanedTable is a RawTable after header promotion, trimming and typing.
// Row order is the order of the source sheet.
type CleanedTable struct {
	Columns []Column
	Rows    []Row
}

// IsEmpty reports whether the table has no rows
func (t *CleanedTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Index returns the position of the first column with the given name, or -1
func (t *CleanedTable) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Value returns the numeric value of the named column in row i.
// The second result is false when the column does not exist or is not numeric.
func (t *CleanedTable) Value(i int, name string) (decimal.Decimal, bool) {
	idx := t.Index(name)
	if idx < 0 || t.Columns[idx].Kind != ColumnKindNumeric {
		return decimal.Zero, false
	}
	return t.Rows[i].Values[idx], true
}

// Raw writes the table back out as a RawTable whose first record is the header.
// Dates use DateFormat and numbers their canonical decimal form, so cleaning the
// result again yields an equal table.
func (t *CleanedTable) Raw() *RawTable {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}

	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, header)

	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			switch c.Kind {
			case ColumnKindDate:
				record[i] = row.Date.Format(DateFormat)
			case ColumnKindRemark:
				record[i] = row.Remarks[i]
			default:
				record[i] = row.Values[i].String()
			}
		}
		records = append(records, record)
	}

	return &RawTable{Records: records}
}
