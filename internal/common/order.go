package common

import (
	"time"

	"github.com/google/uuid"
)

// OrderSide is which side of the book an order sits on.
type OrderSide int

const (
	Buy OrderSide = iota
	Sell
)

func (s OrderSide) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// OrderType distinguishes resting limit orders from sweep-only market orders.
type OrderType int

const (
	LimitOrder OrderType = iota
	MarketOrder
)

func (t OrderType) String() string {
	if t == LimitOrder {
		return "limit"
	}
	return "market"
}

// OrderStatus mirrors spec.md's lifecycle invariants: Open iff resting and
// untouched, PartiallyFilled iff resting with some fill, Filled iff fully
// consumed, Cancelled iff withdrawn before full consumption.
type OrderStatus int

const (
	Open OrderStatus = iota
	PartiallyFilled
	Filled
	Cancelled
)

func (s OrderStatus) String() string {
	switch s {
	case Open:
		return "open"
	case PartiallyFilled:
		return "partially_filled"
	case Filled:
		return "filled"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Order is a single resting or in-flight order. Price is the zero value for
// market orders; callers must check Type before reading Price.
type Order struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Side              OrderSide
	Type              OrderType
	Price             Price
	OriginalQuantity  Quantity
	RemainingQuantity Quantity
	Status            OrderStatus
	Timestamp         time.Time
}

// NewLimitOrder builds an Open limit order with remaining == original.
func NewLimitOrder(userID uuid.UUID, side OrderSide, price Price, qty Quantity) *Order {
	return &Order{
		ID:                uuid.New(),
		UserID:            userID,
		Side:              side,
		Type:              LimitOrder,
		Price:             price,
		OriginalQuantity:  qty,
		RemainingQuantity: qty,
		Status:            Open,
		Timestamp:         time.Now(),
	}
}

// NewMarketOrder builds an Open market order. Market orders never rest, so
// their Open status is transient: it only describes the instant before the
// matcher first touches them.
func NewMarketOrder(userID uuid.UUID, side OrderSide, qty Quantity) *Order {
	return &Order{
		ID:                uuid.New(),
		UserID:            userID,
		Side:              side,
		Type:              MarketOrder,
		OriginalQuantity:  qty,
		RemainingQuantity: qty,
		Status:            Open,
		Timestamp:         time.Now(),
	}
}

// IsFullyFilled reports whether the order has no remaining quantity.
func (o *Order) IsFullyFilled() bool {
	return o.RemainingQuantity.IsZero()
}

// Fill decrements remaining by qty and updates Status accordingly.
func (o *Order) Fill(qty Quantity) {
	o.RemainingQuantity = o.RemainingQuantity.Sub(qty)
	if o.IsFullyFilled() {
		o.Status = Filled
	} else {
		o.Status = PartiallyFilled
	}
}

// MarkCancelled sets status without touching RemainingQuantity: a cancelled
// order keeps whatever remainder it had when withdrawn, for audit purposes.
func (o *Order) MarkCancelled() {
	o.Status = Cancelled
}
