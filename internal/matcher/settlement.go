package matcher

import (
	"fenrir/internal/book"
	"fenrir/internal/common"
)

// settle moves balances for one fill of qty at price between a buy-side and
// a sell-side order. It is symmetric in maker/taker: a maker's own price
// always equals the trade price, so the generic "refund the difference
// between own price and trade price" formula below naturally refunds zero
// for makers and only pays out price improvement to a taker whose limit
// beat the price it crossed.
//
// This is design (A) from the settlement walkthrough: resting limit orders
// settle out of locked balance, market orders settle directly against free
// balance, resolving the double-debit bug by giving reservation exactly one
// entry point (book.Reserve, called once at placement) and exactly one exit
// point per fill (ConsumeLocked here).
//
// Makers never rest as market orders (spec.md §3), so at most one side here
// is a market leg, and a market leg's Debit is the only mutation that can
// fail. Debit both potential market legs before crediting or consuming
// anything, so a failed Debit leaves both sides' balances untouched instead
// of minting BTC or USD out of a half-applied trade.
func settle(bk *book.Book, buyOrder, sellOrder *common.Order, price common.Price, qty common.Quantity) error {
	usdValue := common.TradeValue(price, qty)

	if buyOrder.Type == common.MarketOrder {
		if err := bk.Debit(buyOrder.UserID, common.USD, usdValue); err != nil {
			return err
		}
	}
	if sellOrder.Type == common.MarketOrder {
		if err := bk.Debit(sellOrder.UserID, common.BTC, qty.Raw()); err != nil {
			return err
		}
	}

	if buyOrder.Type == common.LimitOrder {
		owed := common.TradeValue(buyOrder.Price, qty)
		bk.ConsumeLocked(buyOrder.UserID, common.USD, owed)
		if refund := buyOrder.Price.Sub(price); refund > 0 {
			bk.Credit(buyOrder.UserID, common.USD, common.TradeValue(common.NewPrice(refund), qty))
		}
	}
	bk.Credit(buyOrder.UserID, common.BTC, qty.Raw())

	if sellOrder.Type == common.LimitOrder {
		bk.ConsumeLocked(sellOrder.UserID, common.BTC, qty.Raw())
	}
	bk.Credit(sellOrder.UserID, common.USD, usdValue)

	return nil
}

// Reserve locks the funds a new limit order commits at placement time: USD
// sized to price x quantity for a buy, raw BTC quantity for a sell. Market
// orders never reserve; their settlement debits free balance per fill
// instead (see settle above), which is why Reserve is only ever called from
// the limit-order placement path.
func Reserve(bk *book.Book, order *common.Order) error {
	switch order.Side {
	case common.Buy:
		amount := common.TradeValue(order.Price, order.OriginalQuantity)
		return bk.Reserve(order.UserID, common.USD, amount)
	default:
		return bk.Reserve(order.UserID, common.BTC, order.OriginalQuantity.Raw())
	}
}

// ReleaseRemainder refunds the still-locked portion of a cancelled limit
// order back to free balance.
func ReleaseRemainder(bk *book.Book, order *common.Order) {
	switch order.Side {
	case common.Buy:
		amount := common.TradeValue(order.Price, order.RemainingQuantity)
		bk.ReleaseLocked(order.UserID, common.USD, amount)
	default:
		bk.ReleaseLocked(order.UserID, common.BTC, order.RemainingQuantity.Raw())
	}
}
