package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// SelectLatest returns the row holding the most recent record.
// Which end of the table that is depends on how the sheet is appended to, so it is
// decided by the convention and never assumed.
func SelectLatest(table *domain.CleanedTable, convention domain.Convention) (*domain.Snapshot, error) {
	if table.IsEmpty() {
		return nil, domain.ErrNoData
	}

	var row domain.Row
	switch convention {
	case domain.ConventionFirstRow:
		row = table.Rows[0]
	case domain.ConventionLastRow:
		row = table.Rows[len(table.Rows)-1]
	default:
		return nil, fmt.Errorf("invalid latest-row convention %q", convention)
	}

	snapshot := &domain.Snapshot{
		Date:   row.Date,
		Values: make(map[string]decimal.Decimal),
		Cells:  row.Values,
	}

	for i, col := range table.Columns {
		if col.Kind != domain.ColumnKindNumeric {
			continue
		}
		if _, seen := snapshot.Values[col.Name]; seen {
			continue
		}
		snapshot.Columns = append(snapshot.Columns, col.Name)
		snapshot.Values[col.Name] = row.Values[i]
	}

	return snapshot, nil
}
