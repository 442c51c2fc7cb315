package models

import "errors"

// Engine error taxonomy. Both are terminal: the engine never retries and
// never returns a partial result alongside one of these.
var (
	// ErrInvalidInput marks a negative quantity, price, or amount supplied
	// to a calculator.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDateRange marks a start date after the end date in an
	// inflation computation. Dates are never silently swapped.
	ErrInvalidDateRange = errors.New("invalid date range")
)
