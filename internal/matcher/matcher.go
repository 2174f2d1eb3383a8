// Package matcher implements price-time-priority matching against a
// internal/book.Book and the settlement that follows each fill.
package matcher

import (
	"github.com/rs/zerolog/log"

	"fenrir/internal/book"
	"fenrir/internal/common"
)

// Match submits order against bk's opposite side, producing zero or more
// trades. A limit order with remaining quantity after matching rests on the
// book; a market order's unfilled remainder is simply dropped, matching
// spec.md's documented "no rollback, no resting" market-order semantics.
func Match(bk *book.Book, order *common.Order) ([]common.Trade, error) {
	if order.Side == common.Buy {
		return matchBuy(bk, order)
	}
	return matchSell(bk, order)
}

func matchBuy(bk *book.Book, taker *common.Order) ([]common.Trade, error) {
	trades := make([]common.Trade, 0)

	for !taker.IsFullyFilled() {
		askPrice, ok := bk.BestAsk()
		if !ok {
			break
		}
		if taker.Type == common.LimitOrder && taker.Price.Less(askPrice) {
			break
		}

		level, _ := bk.Asks.Get(&book.PriceLevel{Price: askPrice})
		maker := level.PeekHead()
		if maker == nil {
			break
		}

		qty := common.Min(taker.RemainingQuantity, maker.RemainingQuantity)
		if err := settle(bk, taker, maker, askPrice, qty); err != nil {
			return trades, err
		}

		taker.Fill(qty)
		maker.Fill(qty)
		level.OnFill(qty)

		trade := common.NewTrade(maker.ID, taker.ID, maker.UserID, taker.UserID, askPrice, qty)
		if maker.IsFullyFilled() {
			bk.RemoveFilledMaker(maker)
		}
		logTrade(bk, trade)
		trades = append(trades, trade)
	}

	if !taker.IsFullyFilled() {
		if taker.Type == common.LimitOrder {
			bk.AddResting(taker)
		} else {
			return trades, ErrInsufficientLiquidity
		}
	}
	return trades, nil
}

func matchSell(bk *book.Book, taker *common.Order) ([]common.Trade, error) {
	trades := make([]common.Trade, 0)

	for !taker.IsFullyFilled() {
		bidPrice, ok := bk.BestBid()
		if !ok {
			break
		}
		if taker.Type == common.LimitOrder && taker.Price.Greater(bidPrice) {
			break
		}

		level, _ := bk.Bids.Get(&book.PriceLevel{Price: bidPrice})
		maker := level.PeekHead()
		if maker == nil {
			break
		}

		qty := common.Min(taker.RemainingQuantity, maker.RemainingQuantity)
		if err := settle(bk, maker, taker, bidPrice, qty); err != nil {
			return trades, err
		}

		taker.Fill(qty)
		maker.Fill(qty)
		level.OnFill(qty)

		trade := common.NewTrade(maker.ID, taker.ID, maker.UserID, taker.UserID, bidPrice, qty)
		if maker.IsFullyFilled() {
			bk.RemoveFilledMaker(maker)
		}
		logTrade(bk, trade)
		trades = append(trades, trade)
	}

	if !taker.IsFullyFilled() {
		if taker.Type == common.LimitOrder {
			bk.AddResting(taker)
		} else {
			return trades, ErrInsufficientLiquidity
		}
	}
	return trades, nil
}

// logTrade reports the fill and, as the engine-internal analogue of the
// market-data depth query, the best bid/ask left standing after it.
func logTrade(bk *book.Book, t common.Trade) {
	event := log.Info().
		Str("tradeID", t.ID.String()).
		Str("makerOrderID", t.MakerOrderID.String()).
		Str("takerOrderID", t.TakerOrderID.String()).
		Str("price", t.Price.String()).
		Str("quantity", t.Quantity.String())
	if bestBid, ok := bk.BestBid(); ok {
		event = event.Str("bestBid", bestBid.String())
	}
	if bestAsk, ok := bk.BestAsk(); ok {
		event = event.Str("bestAsk", bestAsk.String())
	}
	if t.MakerUserID == t.TakerUserID {
		log.Warn().Str("tradeID", t.ID.String()).Str("userID", t.MakerUserID.String()).
			Msg("self-trade executed")
	}
	event.Msg("trade executed")
}
