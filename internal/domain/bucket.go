package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// BucketDefinition groups source columns under a broader asset type (equities, crypto, cash...)
type BucketDefinition struct {
	Label   string
	Columns []string
}

// Validate ensures the bucket definition adheres to domain rules
func (b *BucketDefinition) Validate() error {
	if b.Label == "" {
		return errors.New("bucket label cannot be empty")
	}

	if len(b.Columns) == 0 {
		return errors.New("bucket must reference at least one column")
	}

	for _, c := range b.Columns {
		if c == "" {
			return errors.New("bucket column name cannot be empty")
		}
	}

	return nil
}

// BucketTotal is the latest value of a bucket: the sum of its member columns
type BucketTotal struct {
	Label string
	Total decimal.Decimal
}

// AccountBalance is the latest value of a single account column (a broker, a bank...)
type AccountBalance struct {
	Account string
	Amount  decimal.Decimal
}
