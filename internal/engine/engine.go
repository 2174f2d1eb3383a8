// Package engine serializes all book, matcher, and balance mutation behind
// a single-writer command loop: one goroutine owns internal/book.Book, and
// every caller communicates with it by sending a Command and waiting on its
// own reply channel.
package engine

import (
	"context"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"fenrir/internal/book"
	"fenrir/internal/common"
	"fenrir/internal/matcher"
	"fenrir/internal/metrics"
)

// DefaultQueueDepth bounds how many commands may be in flight before a
// producer blocks sending. Matches spec.md §5's "bounded-in-flight queue."
const DefaultQueueDepth = 256

// DefaultDepthLevels is how many price levels GetDepth returns absent an
// explicit N.
const DefaultDepthLevels = 10

// Engine owns the book exclusively and drains commands one at a time.
// Nothing outside Run (and the functions it calls) may touch book directly.
type Engine struct {
	book     *book.Book
	commands chan Command
}

// New constructs an engine with an empty book and a bounded command queue.
func New() *Engine {
	return &Engine{
		book:     book.New(),
		commands: make(chan Command, DefaultQueueDepth),
	}
}

// Commands returns the producer-facing end of the command queue. This is
// the only handle the engine shares with callers; book, by-id index, and
// balances never leave the engine goroutine. Matches the teacher's
// net.Server pattern of handing callers an opaque interface instead of
// direct state access.
func (e *Engine) Commands() chan<- Command {
	return e.commands
}

// Run drains the command queue until ctx is cancelled, under a tomb.Tomb the
// way the teacher's net.Server and worker pool are. A fatal panic in
// dispatch (locked-balance underflow, arithmetic underflow) is not
// recovered: it terminates the process rather than leaving a silent hang.
func (e *Engine) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)
	t.Go(func() error {
		log.Info().Msg("engine running")
		for {
			select {
			case <-t.Dying():
				log.Info().Msg("engine shutting down")
				return nil
			case cmd := <-e.commands:
				e.dispatch(cmd)
			}
		}
	})
	return t.Wait()
}

func (e *Engine) dispatch(cmd Command) {
	switch c := cmd.(type) {
	case PlaceLimit:
		reply(c.Reply, e.observe("PlaceLimit", e.handlePlaceLimit(c)))
	case PlaceMarket:
		reply(c.Reply, e.observe("PlaceMarket", e.handlePlaceMarket(c)))
	case Cancel:
		reply(c.Reply, e.observe("Cancel", e.handleCancel(c)))
	case GetDepth:
		reply(c.Reply, e.handleGetDepth(c))
	case GetBalance:
		reply(c.Reply, e.handleGetBalance(c))
	case AddFunds:
		reply(c.Reply, e.observe("AddFunds", e.handleAddFunds(c)))
	case LogBook:
		e.handleLogBook()
		reply(c.Reply, Acknowledged{})
	}
	e.sampleDepth()
}

// observe records rejection and trade metrics for a dispatched response,
// tagging rejections by the command that produced them.
func (e *Engine) observe(command string, resp Response) Response {
	switch r := resp.(type) {
	case Error:
		metrics.OrdersRejected.WithLabelValues(command).Inc()
	case OrderPlaced:
		metrics.TradesExecuted.Add(float64(len(r.Trades)))
	}
	return resp
}

func (e *Engine) sampleDepth() {
	bids, asks := e.book.Depth(DefaultDepthLevels)
	metrics.BookDepth.WithLabelValues("bid").Set(float64(len(bids)))
	metrics.BookDepth.WithLabelValues("ask").Set(float64(len(asks)))
}

// reply sends resp on ch without blocking, per spec.md §5's "dropped reply
// channel is fire-and-forget completion": a caller that is no longer
// listening (buffer already full, or nobody ever receives) must never stall
// the single-writer loop.
func reply(ch chan Response, resp Response) {
	if ch == nil {
		return
	}
	select {
	case ch <- resp:
	default:
	}
}

func (e *Engine) handlePlaceLimit(c PlaceLimit) Response {
	if c.Side != common.Buy && c.Side != common.Sell {
		return Error{Message: ErrInvalidSide.Error()}
	}
	if c.Qty.IsZero() {
		return Error{Message: ErrNonPositiveQuantity.Error()}
	}

	order := common.NewLimitOrder(c.UserID, c.Side, c.Price, c.Qty)
	if err := matcher.Reserve(e.book, order); err != nil {
		return Error{Message: err.Error()}
	}

	trades, err := matcher.Match(e.book, order)
	if err != nil {
		return Error{Message: err.Error()}
	}

	status := StatusAddedToBook
	if len(trades) > 0 {
		status = StatusMatched
	}
	log.Info().Str("orderID", order.ID.String()).Str("status", status).
		Int("trades", len(trades)).Msg("limit order placed")
	return OrderPlaced{OrderID: order.ID, Trades: trades, Status: status}
}

func (e *Engine) handlePlaceMarket(c PlaceMarket) Response {
	if c.Side != common.Buy && c.Side != common.Sell {
		return Error{Message: ErrInvalidSide.Error()}
	}
	if c.Qty.IsZero() {
		return Error{Message: ErrNonPositiveQuantity.Error()}
	}

	order := common.NewMarketOrder(c.UserID, c.Side, c.Qty)
	trades, err := matcher.Match(e.book, order)
	if err != nil {
		log.Error().Err(err).Str("orderID", order.ID.String()).
			Int("trades", len(trades)).Msg("market order did not fully fill")
		return Error{Message: err.Error()}
	}

	status := StatusFilled
	if len(trades) == 0 {
		status = StatusNoLiquidity
	}
	log.Info().Str("orderID", order.ID.String()).Str("status", status).
		Int("trades", len(trades)).Msg("market order placed")
	return OrderPlaced{OrderID: order.ID, Trades: trades, Status: status}
}

func (e *Engine) handleCancel(c Cancel) Response {
	order, err := e.book.Cancel(c.UserID, c.OrderID)
	if err != nil {
		return Error{Message: err.Error()}
	}
	matcher.ReleaseRemainder(e.book, order)
	log.Info().Str("orderID", order.ID.String()).Msg("order cancelled")
	return OrderCancelled{OrderID: order.ID, Success: true}
}

func (e *Engine) handleGetDepth(c GetDepth) Response {
	n := c.N
	if n <= 0 {
		n = DefaultDepthLevels
	}
	bids, asks := e.book.Depth(n)
	return OrderBookDepth{Bids: bids, Asks: asks}
}

func (e *Engine) handleGetBalance(c GetBalance) Response {
	free := map[common.Currency]uint64{}
	locked := map[common.Currency]uint64{}
	for _, ccy := range []common.Currency{common.USD, common.BTC} {
		f, l := e.book.Balance(c.UserID, ccy)
		free[ccy] = f
		locked[ccy] = l
	}
	return BalanceReport{UserID: c.UserID, Free: free, Locked: locked}
}

func (e *Engine) handleAddFunds(c AddFunds) Response {
	if !c.Currency.Valid() {
		return Error{Message: ErrInvalidCurrency.Error()}
	}
	if c.Amount == 0 {
		return Error{Message: ErrNonPositiveAmount.Error()}
	}
	e.book.AddFunds(c.UserID, c.Currency, c.Amount)
	free, _ := e.book.Balance(c.UserID, c.Currency)
	log.Info().Str("userID", c.UserID.String()).Str("currency", string(c.Currency)).
		Uint64("amount", c.Amount).Msg("funds added")
	return FundsAdded{UserID: c.UserID, Currency: c.Currency, NewBalance: free}
}

func (e *Engine) handleLogBook() {
	bids, asks := e.book.Depth(DefaultDepthLevels)
	log.Info().Any("bids", bids).Any("asks", asks).Msg("book snapshot")
}
