package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeValue(t *testing.T) {
	price := PriceFromFloat(50000)
	qty := QuantityFromFloat(1)
	assert.Equal(t, PriceFromFloat(50000).Raw(), TradeValue(price, qty))
}

func TestTradeValueFractionalQuantity(t *testing.T) {
	price := PriceFromFloat(50000)
	qty := QuantityFromFloat(0.5)
	assert.Equal(t, PriceFromFloat(25000).Raw(), TradeValue(price, qty))
}

func TestTradeValueLargeOperandsDoNotOverflow(t *testing.T) {
	price := NewPrice(1_000_000_000_000) // far beyond any real BTC/USD price
	qty := NewQuantity(100_000_000_000)  // 1000 BTC at 10^8 scale
	// Must not panic or wrap: bits.Mul64/Div64 compute this in 128 bits.
	assert.NotPanics(t, func() {
		TradeValue(price, qty)
	})
}
