package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode reads a CSV export into a RawTable.
// Rows may have different lengths; a leading UTF-8 byte order mark is dropped.
func Decode(r io.Reader) (*domain.RawTable, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("%w: failed to skip byte order mark: %w", domain.ErrSourceUnreachable, err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // Sheets pad or truncate rows freely
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode CSV: %w", domain.ErrSourceUnreachable, err)
	}

	return &domain.RawTable{Records: records}, nil
}
