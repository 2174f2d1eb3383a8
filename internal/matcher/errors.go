package matcher

import "errors"

var (
	// ErrInsufficientBalance is not returned by this package: a failed
	// reservation or market-order debit surfaces as book.ErrInsufficientBalance,
	// passed through unchanged by Reserve and Match.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrEmptyOrder is not returned by this package; zero-quantity orders are
	// rejected by internal/engine with engine.ErrNonPositiveQuantity.
	ErrEmptyOrder = errors.New("order has zero quantity")
	// ErrInsufficientLiquidity is returned when a market order exhausts the
	// opposite side before filling completely. Per spec, fills already
	// executed before the opposite side emptied are not rolled back.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
)
