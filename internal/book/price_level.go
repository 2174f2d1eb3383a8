package book

import (
	"fenrir/internal/common"

	"github.com/google/uuid"
)

// PriceLevel is a FIFO queue of resting orders sharing one price, plus a
// cached aggregate volume. Removal by id is a linear scan: levels are
// shallow in practice, and spec.md explicitly calls this acceptable.
type PriceLevel struct {
	Price       common.Price
	Orders      []*common.Order
	TotalVolume common.Quantity
}

// NewPriceLevel creates an empty level at price.
func NewPriceLevel(price common.Price) *PriceLevel {
	return &PriceLevel{Price: price}
}

// Enqueue appends order to the tail (oldest-first FIFO) and folds its
// remaining quantity into TotalVolume.
func (pl *PriceLevel) Enqueue(order *common.Order) {
	pl.Orders = append(pl.Orders, order)
	pl.TotalVolume = pl.TotalVolume.Add(order.RemainingQuantity)
}

// RemoveByID removes the order with the given id, if present, decrementing
// TotalVolume by its remaining quantity. Returns the removed order, or nil.
func (pl *PriceLevel) RemoveByID(id uuid.UUID) *common.Order {
	for i, o := range pl.Orders {
		if o.ID == id {
			pl.Orders = append(pl.Orders[:i], pl.Orders[i+1:]...)
			pl.TotalVolume = pl.TotalVolume.Sub(o.RemainingQuantity)
			return o
		}
	}
	return nil
}

// PeekHead returns the oldest resting order, or nil if the level is empty.
func (pl *PriceLevel) PeekHead() *common.Order {
	if len(pl.Orders) == 0 {
		return nil
	}
	return pl.Orders[0]
}

// OnFill decrements TotalVolume by the filled amount. The order's own
// RemainingQuantity is mutated separately by the matcher; this only keeps
// the level's cached aggregate in sync.
func (pl *PriceLevel) OnFill(qty common.Quantity) {
	pl.TotalVolume = pl.TotalVolume.Sub(qty)
}

// PopIfHeadFilled removes the head order if it has no remaining quantity,
// returning it, or nil if the head is absent or still has quantity left.
func (pl *PriceLevel) PopIfHeadFilled() *common.Order {
	if len(pl.Orders) == 0 {
		return nil
	}
	head := pl.Orders[0]
	if !head.IsFullyFilled() {
		return nil
	}
	pl.Orders = pl.Orders[1:]
	return head
}

// IsEmpty reports whether the level has no resting orders.
func (pl *PriceLevel) IsEmpty() bool {
	return len(pl.Orders) == 0
}
