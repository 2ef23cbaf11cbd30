package domain

import "errors"

// Error taxonomy shared by the transformer and its adapters.
// Cell-level parse failures never surface here: they are recovered where they happen.
var (
	// ErrSourceUnreachable is returned when the published sheet could not be fetched or decoded.
	ErrSourceUnreachable = errors.New("source unreachable")

	// ErrNoData is returned when there is no input table, or no row to select from.
	ErrNoData = errors.New("no data")

	// ErrHeaderNotFound is returned when no cell of the sheet matches the date-column marker.
	ErrHeaderNotFound = errors.New("header row not found")

	// ErrUnpairedPrincipalColumn is returned when a principal column has no valuation column after it.
	ErrUnpairedPrincipalColumn = errors.New("principal column has no valuation column")
)
