package engine

import "errors"

var (
	// ErrInvalidSide is returned for a side value outside {Buy, Sell}.
	ErrInvalidSide = errors.New("invalid side")
	// ErrNonPositiveQuantity is returned for a zero or negative quantity.
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	// ErrNonPositiveAmount is returned by AddFunds for a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrInvalidCurrency is returned by AddFunds for an unsupported currency code.
	ErrInvalidCurrency = errors.New("invalid currency")
)
