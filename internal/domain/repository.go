package domain

import "context"

// TableSource retrieves the raw sheet.
// Implementations wrap every transport failure in ErrSourceUnreachable.
type TableSource interface {
	// Fetch returns the sheet as decoded CSV records
	Fetch(ctx context.Context) (*RawTable, error)
}

// RefreshLogRepository defines the interface for refresh log persistence operations
type RefreshLogRepository interface {
	// Add records the outcome of a refresh
	Add(ctx context.Context, record *RefreshRecord) error

	// ListRecent retrieves the most recent records, newest first
	ListRecent(ctx context.Context, limit int) ([]*RefreshRecord, error)
}
