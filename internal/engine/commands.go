package engine

import (
	"github.com/google/uuid"

	"fenrir/internal/book"
	"fenrir/internal/common"
)

// Command is one of the six request variants the engine loop accepts, plus
// the supplemented LogBook debug command. Every variant carries its own
// reply channel, buffered to capacity 1, so the engine's send back to the
// caller is always non-blocking: a caller that stopped listening (a
// producer-side cancellation) never stalls the single-writer loop.
type Command interface {
	isCommand()
}

// PlaceLimit submits a resting-capable order at a fixed price.
type PlaceLimit struct {
	UserID uuid.UUID
	Side   common.OrderSide
	Price  common.Price
	Qty    common.Quantity
	Reply  chan Response
}

// PlaceMarket submits a sweep-only order with no limit price.
type PlaceMarket struct {
	UserID uuid.UUID
	Side   common.OrderSide
	Qty    common.Quantity
	Reply  chan Response
}

// Cancel withdraws a resting order the caller owns.
type Cancel struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
	Reply   chan Response
}

// GetDepth reports the top n price levels on each side.
type GetDepth struct {
	N     int
	Reply chan Response
}

// GetBalance reports a user's free and locked balances.
type GetBalance struct {
	UserID uuid.UUID
	Reply  chan Response
}

// AddFunds credits a user's free balance in one currency.
type AddFunds struct {
	UserID   uuid.UUID
	Currency common.Currency
	Amount   uint64
	Reply    chan Response
}

// LogBook asks the engine to zerolog-dump a depth snapshot. It is a debug
// command kept from the wire protocol's existing MessageType; it touches no
// order or balance state and has no reply payload beyond acknowledgement.
type LogBook struct {
	Reply chan Response
}

func (PlaceLimit) isCommand()  {}
func (PlaceMarket) isCommand() {}
func (Cancel) isCommand()      {}
func (GetDepth) isCommand()    {}
func (GetBalance) isCommand()  {}
func (AddFunds) isCommand()    {}
func (LogBook) isCommand()     {}

// Response is one of the success variants below, or Error on failure.
type Response interface {
	isResponse()
}

// OrderPlaced is the shared success response for PlaceLimit and PlaceMarket.
type OrderPlaced struct {
	OrderID uuid.UUID
	Trades  []common.Trade
	Status  string
}

// Order placement status strings, exactly as spec.md §6 names them.
const (
	StatusAddedToBook = "Added to book"
	StatusMatched     = "Matched"
	StatusFilled      = "Filled"
	StatusNoLiquidity = "No liquidity"
)

// OrderCancelled reports the outcome of a Cancel command.
type OrderCancelled struct {
	OrderID uuid.UUID
	Success bool
}

// OrderBookDepth reports the top levels of both book sides.
type OrderBookDepth struct {
	Bids []book.DepthLevel
	Asks []book.DepthLevel
}

// BalanceReport reports one user's free and locked balances per currency.
type BalanceReport struct {
	UserID uuid.UUID
	Free   map[common.Currency]uint64
	Locked map[common.Currency]uint64
}

// FundsAdded reports the new free balance after an AddFunds command.
type FundsAdded struct {
	UserID     uuid.UUID
	Currency   common.Currency
	NewBalance uint64
}

// Acknowledged is the reply to LogBook: it carries no payload, it only
// confirms the engine processed the command.
type Acknowledged struct{}

// Error is the shared failure response for every command variant.
type Error struct {
	Message string
}

func (OrderPlaced) isResponse()    {}
func (OrderCancelled) isResponse() {}
func (OrderBookDepth) isResponse() {}
func (BalanceReport) isResponse()  {}
func (FundsAdded) isResponse()     {}
func (Acknowledged) isResponse()   {}
func (Error) isResponse()          {}
