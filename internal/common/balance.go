package common

import "github.com/google/uuid"

// UserBalance is the per-user ledger: a free bucket the user can spend or
// withdraw against, and a locked bucket holding reservations for resting
// limit orders (design (A) from spec.md §4.4 / §9). Locked is never
// addressable by a caller directly; it only moves between free and locked
// through Reserve/ReleaseLocked/ConsumeLocked inside the engine.
type UserBalance struct {
	UserID uuid.UUID
	Free   map[Currency]uint64
	Locked map[Currency]uint64
}

// NewUserBalance returns a zeroed balance for both supported currencies.
func NewUserBalance(userID uuid.UUID) *UserBalance {
	return &UserBalance{
		UserID: userID,
		Free:   map[Currency]uint64{USD: 0, BTC: 0},
		Locked: map[Currency]uint64{USD: 0, BTC: 0},
	}
}

func (b *UserBalance) FreeOf(ccy Currency) uint64   { return b.Free[ccy] }
func (b *UserBalance) LockedOf(ccy Currency) uint64 { return b.Locked[ccy] }
