package common

import (
	"time"

	"github.com/google/uuid"
)

// Trade is an immutable execution record. Price is always the maker's
// resting limit price: price improvement accrues to the taker, never the
// other way round.
type Trade struct {
	ID           uuid.UUID
	MakerOrderID uuid.UUID
	TakerOrderID uuid.UUID
	MakerUserID  uuid.UUID
	TakerUserID  uuid.UUID
	Price        Price
	Quantity     Quantity
	Timestamp    time.Time
}

// NewTrade stamps a fresh trade with a new id and the current time.
func NewTrade(makerOrderID, takerOrderID, makerUserID, takerUserID uuid.UUID, price Price, qty Quantity) Trade {
	return Trade{
		ID:           uuid.New(),
		MakerOrderID: makerOrderID,
		TakerOrderID: takerOrderID,
		MakerUserID:  makerUserID,
		TakerUserID:  takerUserID,
		Price:        price,
		Quantity:     qty,
		Timestamp:    time.Now(),
	}
}
