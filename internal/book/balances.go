package book

import (
	"github.com/google/uuid"

	"fenrir/internal/common"
)

// balanceFor returns the user's ledger, creating a zeroed one on first touch.
func (b *Book) balanceFor(userID uuid.UUID) *common.UserBalance {
	bal, ok := b.balances[userID]
	if !ok {
		bal = common.NewUserBalance(userID)
		b.balances[userID] = bal
	}
	return bal
}

// Balance returns the free and locked amounts held for userID in ccy.
func (b *Book) Balance(userID uuid.UUID, ccy common.Currency) (free, locked uint64) {
	bal := b.balanceFor(userID)
	return bal.FreeOf(ccy), bal.LockedOf(ccy)
}

// AddFunds credits the user's free balance, e.g. from a deposit command.
func (b *Book) AddFunds(userID uuid.UUID, ccy common.Currency, amount uint64) {
	bal := b.balanceFor(userID)
	bal.Free[ccy] += amount
}

// Reserve moves amount from free to locked, failing with
// ErrInsufficientBalance and leaving both buckets untouched if free is short.
// This is the single reservation point order placement must go through:
// spec.md §9's double-debit bug came from the engine calling a Debit-like
// primitive a second time after Reserve already removed the funds from free.
func (b *Book) Reserve(userID uuid.UUID, ccy common.Currency, amount uint64) error {
	bal := b.balanceFor(userID)
	if bal.Free[ccy] < amount {
		return ErrInsufficientBalance
	}
	bal.Free[ccy] -= amount
	bal.Locked[ccy] += amount
	return nil
}

// ReleaseLocked moves amount from locked back to free, e.g. refunding the
// untraded remainder of a cancelled order. Panics on underflow: a locked
// balance going negative means reservation accounting has already
// diverged from the book, which is a corruption bug, not a runtime error.
func (b *Book) ReleaseLocked(userID uuid.UUID, ccy common.Currency, amount uint64) {
	bal := b.balanceFor(userID)
	if bal.Locked[ccy] < amount {
		panic("book: locked balance underflow on release")
	}
	bal.Locked[ccy] -= amount
	bal.Free[ccy] += amount
}

// ConsumeLocked removes amount from locked without crediting it anywhere;
// callers use this for a limit order's leg of a trade (maker or taker),
// crediting the counterparty
// separately via Credit. Panics on underflow for the same reason as
// ReleaseLocked.
func (b *Book) ConsumeLocked(userID uuid.UUID, ccy common.Currency, amount uint64) {
	bal := b.balanceFor(userID)
	if bal.Locked[ccy] < amount {
		panic("book: locked balance underflow on consume")
	}
	bal.Locked[ccy] -= amount
}

// Credit adds amount directly to the user's free balance.
func (b *Book) Credit(userID uuid.UUID, ccy common.Currency, amount uint64) {
	bal := b.balanceFor(userID)
	bal.Free[ccy] += amount
}

// Debit removes amount from the user's free balance, failing with
// ErrInsufficientBalance if short. Used for the market-order leg of a trade,
// which reserves nothing up front and so is checked on every fill; a failure
// mid-order leaves earlier fills in place (see SPEC_FULL.md's market-order
// no-rollback note).
func (b *Book) Debit(userID uuid.UUID, ccy common.Currency, amount uint64) error {
	bal := b.balanceFor(userID)
	if bal.Free[ccy] < amount {
		return ErrInsufficientBalance
	}
	bal.Free[ccy] -= amount
	return nil
}
