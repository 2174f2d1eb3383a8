package matcher

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/book"
	"fenrir/internal/common"
)

func price(v float64) common.Price       { return common.PriceFromFloat(v) }
func qty(v float64) common.Quantity      { return common.QuantityFromFloat(v) }
func fund(b *book.Book, u uuid.UUID, ccy common.Currency, amount uint64) {
	b.AddFunds(u, ccy, amount)
}

// placeLimit reserves and matches a limit order exactly the way
// internal/engine's PlaceLimit handler does.
func placeLimit(t *testing.T, b *book.Book, user uuid.UUID, side common.OrderSide, p float64, q float64) (*common.Order, []common.Trade) {
	t.Helper()
	order := common.NewLimitOrder(user, side, price(p), qty(q))
	require.NoError(t, Reserve(b, order))
	trades, err := Match(b, order)
	require.NoError(t, err)
	return order, trades
}

// TestRestingThenMatchingLimit mirrors spec.md §8 scenario 1.
func TestRestingThenMatchingLimit(t *testing.T) {
	b := book.New()
	u1, u2 := uuid.New(), uuid.New()
	fund(b, u1, common.USD, common.TradeValue(price(100000), qty(1)))
	fund(b, u2, common.BTC, qty(10).Raw())

	_, trades := placeLimit(t, b, u2, common.Sell, 50000, 1)
	assert.Empty(t, trades)

	bids, asks := b.Depth(1)
	assert.Empty(t, bids)
	require.Len(t, asks, 1)
	assert.True(t, asks[0].Price.Equal(price(50000)))

	_, trades = placeLimit(t, b, u1, common.Buy, 50000, 1)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(price(50000)))
	assert.True(t, trades[0].Quantity.Equal(qty(1)))

	bids, asks = b.Depth(1)
	assert.Empty(t, bids)
	assert.Empty(t, asks)

	u1BTC, _ := b.Balance(u1, common.BTC)
	u2BTC, _ := b.Balance(u2, common.BTC)
	u1USD, _ := b.Balance(u1, common.USD)
	u2USD, _ := b.Balance(u2, common.USD)
	assert.Equal(t, qty(1).Raw(), u1BTC)
	assert.Equal(t, qty(9).Raw(), u2BTC)
	assert.Equal(t, common.TradeValue(price(50000), qty(1)), u1USD)
	assert.Equal(t, common.TradeValue(price(50000), qty(1)), u2USD)
}

func TestPriceImprovementRefundedToTaker(t *testing.T) {
	b := book.New()
	maker, taker := uuid.New(), uuid.New()
	fund(b, maker, common.BTC, qty(1).Raw())
	fund(b, taker, common.USD, common.TradeValue(price(51000), qty(1)))

	placeLimit(t, b, maker, common.Sell, 50000, 1)
	_, trades := placeLimit(t, b, taker, common.Buy, 51000, 1)

	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(price(50000)), "trade settles at the maker's resting price")

	free, locked := b.Balance(taker, common.USD)
	assert.Equal(t, common.TradeValue(price(1000), qty(1)), free, "taker is refunded the 1000 USD price improvement")
	assert.Equal(t, uint64(0), locked)
}

func TestCancelRefundsReservation(t *testing.T) {
	b := book.New()
	user := uuid.New()
	fund(b, user, common.USD, common.TradeValue(price(50000), qty(2)))

	order, _ := placeLimit(t, b, user, common.Buy, 50000, 2)

	free, locked := b.Balance(user, common.USD)
	assert.Equal(t, uint64(0), free)
	assert.Equal(t, common.TradeValue(price(50000), qty(2)), locked)

	cancelled, err := b.Cancel(user, order.ID)
	require.NoError(t, err)
	ReleaseRemainder(b, cancelled)

	free, locked = b.Balance(user, common.USD)
	assert.Equal(t, common.TradeValue(price(50000), qty(2)), free)
	assert.Equal(t, uint64(0), locked)
}

func TestMarketOrderExhaustsBookReturnsInsufficientLiquidity(t *testing.T) {
	b := book.New()
	maker, taker := uuid.New(), uuid.New()
	fund(b, maker, common.BTC, qty(1).Raw())
	fund(b, taker, common.USD, common.TradeValue(price(1_000_000), qty(2)))

	placeLimit(t, b, maker, common.Sell, 50000, 1)

	order := common.NewMarketOrder(taker, common.Buy, qty(2))
	trades, err := Match(b, order)

	assert.ErrorIs(t, err, ErrInsufficientLiquidity)
	require.Len(t, trades, 1, "the first unit fills before liquidity runs out")
	assert.True(t, order.RemainingQuantity.Equal(qty(1)), "partial fill is not rolled back")
}

func TestSelfTradeIsAllowed(t *testing.T) {
	b := book.New()
	user := uuid.New()
	fund(b, user, common.BTC, qty(1).Raw())
	fund(b, user, common.USD, common.TradeValue(price(50000), qty(1)))

	placeLimit(t, b, user, common.Sell, 50000, 1)
	_, trades := placeLimit(t, b, user, common.Buy, 50000, 1)

	require.Len(t, trades, 1)
	assert.Equal(t, trades[0].MakerUserID, trades[0].TakerUserID)
}

// TestMarketSellInsufficientBalanceLeavesMakerUntouched guards against a
// regression where the buy-side leg of settle committed before the
// market-sell taker's BTC debit was attempted: the maker's resting buy would
// get BTC credited even though the taker's Debit then failed and no trade
// was recorded, minting BTC from nothing.
func TestMarketSellInsufficientBalanceLeavesMakerUntouched(t *testing.T) {
	b := book.New()
	maker, taker := uuid.New(), uuid.New()
	fund(b, maker, common.USD, common.TradeValue(price(50000), qty(1)))

	placeLimit(t, b, maker, common.Buy, 50000, 1)

	order := common.NewMarketOrder(taker, common.Sell, qty(1))
	trades, err := Match(b, order)

	assert.ErrorIs(t, err, book.ErrInsufficientBalance)
	assert.Empty(t, trades, "taker never had BTC to sell, so no trade settles")

	makerBTC, _ := b.Balance(maker, common.BTC)
	assert.Equal(t, uint64(0), makerBTC, "maker must not receive BTC for a trade that never settled")

	_, makerUSDLocked := b.Balance(maker, common.USD)
	assert.Equal(t, common.TradeValue(price(50000), qty(1)), makerUSDLocked, "maker's reservation is untouched")
}

func TestFIFOWithinPriceLevel(t *testing.T) {
	b := book.New()
	first, second, taker := uuid.New(), uuid.New(), uuid.New()
	fund(b, first, common.BTC, qty(1).Raw())
	fund(b, second, common.BTC, qty(1).Raw())
	fund(b, taker, common.USD, common.TradeValue(price(50000), qty(1)))

	placeLimit(t, b, first, common.Sell, 50000, 1)
	placeLimit(t, b, second, common.Sell, 50000, 1)

	_, trades := placeLimit(t, b, taker, common.Buy, 50000, 1)
	require.Len(t, trades, 1)
	assert.Equal(t, first, trades[0].MakerUserID, "earlier resting order at the same price fills first")
}
