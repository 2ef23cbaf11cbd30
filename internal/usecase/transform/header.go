package transform

import (
	"fmt"
	"strings"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// LocateHeader finds the header row of a sheet that may start with title or blank rows.
// Logic:
//   - Scan rows top to bottom, and cells left to right
//   - The first row holding a cell equal to marker (after trimming) is the header
//
// Returns domain.ErrNoData for an empty table and domain.ErrHeaderNotFound when no cell matches.
// It never falls back to row zero.
func LocateHeader(raw *domain.RawTable, marker string) (int, error) {
	if raw.IsEmpty() {
		return -1, domain.ErrNoData
	}

	for i, record := range raw.Records {
		for _, cell := range record {
			if strings.TrimSpace(cell) == marker {
				return i, nil
			}
		}
	}

	return -1, fmt.Errorf("%w: no cell equals %q in %d rows", domain.ErrHeaderNotFound, marker, len(raw.Records))
}
