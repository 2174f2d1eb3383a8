// Package book implements the two-sided order book: a bids side sorted
// descending by price, an asks side sorted ascending by price, a by-id index
// of all resting orders, and the per-user balance ledger. It holds no
// matching logic of its own; internal/matcher walks it.
package book

import (
	"github.com/google/uuid"
	"github.com/tidwall/btree"

	"fenrir/internal/common"
)

// Levels is a sorted map from price to PriceLevel. Bids and asks use the
// same generic container with opposite comparators, following the teacher's
// orderbook.go: a single "take first key" primitive serves both sides once
// the bid side's comparator is inverted.
type Levels = btree.BTreeG[*PriceLevel]

// Book is the single-instrument (BTC/USD) order book plus its balance
// ledger. Multi-instrument support is explicitly out of spec.md's scope, so
// unlike the teacher's Engine (which keyed a map of OrderBooks by asset
// type), Book wraps exactly one bid/ask pair.
type Book struct {
	Bids *Levels // sorted descending by price (best bid first)
	Asks *Levels // sorted ascending by price (best ask first)

	ordersByID map[uuid.UUID]*common.Order
	balances   map[uuid.UUID]*common.UserBalance
}

// New constructs an empty book.
func New() *Book {
	bids := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.Price.Greater(b.Price)
	})
	asks := btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.Price.Less(b.Price)
	})
	return &Book{
		Bids:       bids,
		Asks:       asks,
		ordersByID: make(map[uuid.UUID]*common.Order),
		balances:   make(map[uuid.UUID]*common.UserBalance),
	}
}

func (b *Book) levelsFor(side common.OrderSide) *Levels {
	if side == common.Buy {
		return b.Bids
	}
	return b.Asks
}

// BestBid returns the highest resting bid price, if any.
func (b *Book) BestBid() (common.Price, bool) {
	level, ok := b.Bids.Min()
	if !ok {
		return common.Price{}, false
	}
	return level.Price, true
}

// BestAsk returns the lowest resting ask price, if any.
func (b *Book) BestAsk() (common.Price, bool) {
	level, ok := b.Asks.Min()
	if !ok {
		return common.Price{}, false
	}
	return level.Price, true
}

// AddResting routes a limit order with nonzero remainder into its side's
// level map, creating the level on demand, and indexes it by id. Callers
// (the matcher) must only call this after matching leaves remainder > 0.
func (b *Book) AddResting(order *common.Order) {
	levels := b.levelsFor(order.Side)
	level, ok := levels.Get(&PriceLevel{Price: order.Price})
	if !ok {
		level = NewPriceLevel(order.Price)
		levels.Set(level)
	}
	level.Enqueue(order)
	b.ordersByID[order.ID] = order
}

// OrderByID looks up a resting order without removing it.
func (b *Book) OrderByID(id uuid.UUID) (*common.Order, bool) {
	o, ok := b.ordersByID[id]
	return o, ok
}

// Cancel removes the order with id from the book. Ownership is checked
// before any mutation: a NotOwner error leaves the book untouched, resolving
// spec.md §9's "cancel loses the order on ownership mismatch" bug by
// reordering the check ahead of the removal instead of restoring afterward.
func (b *Book) Cancel(userID, id uuid.UUID) (*common.Order, error) {
	order, ok := b.ordersByID[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}

	levels := b.levelsFor(order.Side)
	level, ok := levels.Get(&PriceLevel{Price: order.Price})
	if ok {
		level.RemoveByID(id)
		if level.IsEmpty() {
			levels.Delete(level)
		}
	}
	delete(b.ordersByID, id)
	order.MarkCancelled()
	return order, nil
}

// RemoveFilledMaker drops a fully-filled maker from the head of its level
// and from the by-id index, deleting the level if it is now empty. The
// matcher calls this once a fill brings the maker's remaining to zero.
func (b *Book) RemoveFilledMaker(order *common.Order) {
	levels := b.levelsFor(order.Side)
	level, ok := levels.Get(&PriceLevel{Price: order.Price})
	if ok {
		level.PopIfHeadFilled()
		if level.IsEmpty() {
			levels.Delete(level)
		}
	}
	delete(b.ordersByID, order.ID)
}

// DepthLevel is a single (price, aggregate volume) pair as reported by Depth.
type DepthLevel struct {
	Price  common.Price
	Volume common.Quantity
}

// Depth returns the top-n price levels per side in sort order. Empty sides
// yield empty slices, never nil-vs-empty ambiguity matters to callers.
func (b *Book) Depth(n int) (bids, asks []DepthLevel) {
	bids = make([]DepthLevel, 0, n)
	b.Bids.Scan(func(level *PriceLevel) bool {
		if len(bids) >= n {
			return false
		}
		bids = append(bids, DepthLevel{Price: level.Price, Volume: level.TotalVolume})
		return true
	})
	asks = make([]DepthLevel, 0, n)
	b.Asks.Scan(func(level *PriceLevel) bool {
		if len(asks) >= n {
			return false
		}
		asks = append(asks, DepthLevel{Price: level.Price, Volume: level.TotalVolume})
		return true
	})
	return bids, asks
}
