// Package wire is the boundary between the engine's fixed-point types and
// the outside world: the binary TCP framing and the decimal text
// representations of price and quantity that appear on it. Nothing in
// internal/book or internal/matcher imports this package — conversion
// happens once, at ingest and at response time, exactly as spec.md's
// numerics design requires.
package wire

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"fenrir/internal/common"
)

// ParsePrice converts a decimal string into a fixed-point Price, rounding to
// Price's six-decimal scale. Using shopspring/decimal here (rather than
// strconv.ParseFloat) avoids the binary-float representation error a
// literal like "0.1" would otherwise introduce before it ever reaches the
// matching loop.
func ParsePrice(s string) (common.Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return common.Price{}, fmt.Errorf("wire: invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return common.Price{}, fmt.Errorf("wire: negative price %q", s)
	}
	raw := d.Mul(decimal.NewFromInt(int64(common.PriceScale))).Round(0)
	return common.NewPrice(raw.BigInt().Uint64()), nil
}

// ParseQuantity converts a decimal string into a fixed-point Quantity,
// rounding to Quantity's eight-decimal scale.
func ParseQuantity(s string) (common.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return common.Quantity{}, fmt.Errorf("wire: invalid quantity %q: %w", s, err)
	}
	if !d.IsPositive() {
		return common.Quantity{}, fmt.Errorf("wire: quantity %q must be positive", s)
	}
	raw := d.Mul(decimal.NewFromInt(int64(common.QuantityScale))).Round(0)
	return common.NewQuantity(raw.BigInt().Uint64()), nil
}

// ParseAmount converts a decimal string into a raw balance amount scaled for
// ccy (PriceScale for USD, QuantityScale for BTC), for AddFunds.
func ParseAmount(s string, ccy common.Currency) (uint64, error) {
	scale, ok := ccy.Scale()
	if !ok {
		return 0, fmt.Errorf("wire: invalid currency %q", ccy)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("wire: invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("wire: amount %q must be positive", s)
	}
	raw := d.Mul(decimal.NewFromInt(int64(scale))).Round(0)
	return raw.BigInt().Uint64(), nil
}

// FormatAmount renders a raw balance amount back to a decimal string for
// display, e.g. in GetBalance responses and the CLI client.
func FormatAmount(amount uint64, ccy common.Currency) string {
	scale, ok := ccy.Scale()
	if !ok {
		return "0"
	}
	places := decimalPlaces(scale)
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0).
		DivRound(decimal.NewFromInt(int64(scale)), int32(places)).String()
}

// decimalPlaces reports how many fractional digits scale represents.
func decimalPlaces(scale uint64) int {
	n := 0
	for s := scale; s > 1; s /= 10 {
		n++
	}
	return n
}
