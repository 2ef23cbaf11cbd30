package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RefreshStatus is the outcome of one dashboard refresh
type RefreshStatus string

const (
	RefreshStatusOK             RefreshStatus = "OK"
	RefreshStatusEmpty          RefreshStatus = "EMPTY"
	RefreshStatusUnreachable    RefreshStatus = "UNREACHABLE"
	RefreshStatusNoData         RefreshStatus = "NO_DATA"
	RefreshStatusHeaderNotFound RefreshStatus = "HEADER_NOT_FOUND"
	RefreshStatusUnpairedColumn RefreshStatus = "UNPAIRED_COLUMN"
	RefreshStatusFailed         RefreshStatus = "FAILED"
)

// StatusFromError classifies the error of a refresh.
// A nil error is OK; callers mark empty tables themselves.
func StatusFromError(err error) RefreshStatus {
	switch {
	case err == nil:
		return RefreshStatusOK
	case errors.Is(err, ErrSourceUnreachable):
		return RefreshStatusUnreachable
	case errors.Is(err, ErrNoData):
		return RefreshStatusNoData
	case errors.Is(err, ErrHeaderNotFound):
		return RefreshStatusHeaderNotFound
	case errors.Is(err, ErrUnpairedPrincipalColumn):
		return RefreshStatusUnpairedColumn
	default:
		return RefreshStatusFailed
	}
}

// RefreshRecord is the operational trace of one load of the sheet.
// Only the outcome is kept; portfolio figures are never persisted.
type RefreshRecord struct {
	ID        uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	Status    RefreshStatus
	Rows      int    // rows left after cleaning
	Message   string // error text, empty on success
}
