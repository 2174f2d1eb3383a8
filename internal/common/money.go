package common

import "math/bits"

// TradeValue computes the USD value of qty units at price, returned as a raw
// USD balance amount (scale PriceScale). This is the "usd_cents_scaled =
// price_raw * qty_raw / quantity_scale" computation spec.md's settlement
// section calls for, done in 128-bit integer arithmetic via bits.Mul64 /
// bits.Div64 rather than float64 multiplication, so a large fill can never
// lose precision or silently overflow the hot settlement path.
func TradeValue(price Price, qty Quantity) uint64 {
	hi, lo := bits.Mul64(price.raw, qty.raw)
	quotient, _ := bits.Div64(hi, lo, QuantityScale)
	return quotient
}
