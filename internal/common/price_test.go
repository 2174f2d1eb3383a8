package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfEvenTiesToEvenNeighbor(t *testing.T) {
	assert.Equal(t, uint64(2), roundHalfEven(1.5))
	assert.Equal(t, uint64(2), roundHalfEven(2.5))
	assert.Equal(t, uint64(4), roundHalfEven(3.5))
	assert.Equal(t, uint64(1), roundHalfEven(1.4))
	assert.Equal(t, uint64(2), roundHalfEven(1.6))
}

func TestPriceComparisons(t *testing.T) {
	low := NewPrice(100)
	high := NewPrice(200)

	assert.True(t, low.Less(high))
	assert.True(t, high.Greater(low))
	assert.True(t, low.LessOrEqual(low))
	assert.True(t, high.GreaterOrEqual(high))
	assert.True(t, low.Equal(NewPrice(100)))
}

func TestPriceSubUnderflowPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewPrice(1).Sub(NewPrice(2))
	})
}

func TestPriceRoundTrip(t *testing.T) {
	p := PriceFromFloat(50000.5)
	assert.InDelta(t, 50000.5, p.Float64(), 0.000001)
}
