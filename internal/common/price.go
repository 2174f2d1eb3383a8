package common

import (
	"fmt"
	"math"
)

// PriceScale is the fixed-point scale for Price: six decimal places.
const PriceScale uint64 = 1_000_000

// Price is a non-negative fixed-point integer at scale 10^6. It wraps a plain
// uint64 so that comparisons inside the matching loop are native integer
// comparisons, never float comparisons. Conversion to and from a decimal
// scalar only happens at the boundary (command ingest, depth reporting) per
// the engine's numerics design — never inside Matcher's inner loop.
type Price struct {
	raw uint64
}

// NewPrice wraps a raw scaled integer directly. Used when a value is already
// known in fixed-point form, e.g. round-tripping off the wire.
func NewPrice(raw uint64) Price {
	return Price{raw: raw}
}

// PriceFromFloat constructs a Price from a decimal scalar, rounding
// half-to-even at the last representable digit (six decimal places).
func PriceFromFloat(value float64) Price {
	return Price{raw: roundHalfEven(value * float64(PriceScale))}
}

// Raw returns the underlying scaled integer.
func (p Price) Raw() uint64 { return p.raw }

// Float64 converts back to a decimal scalar for boundary use (depth
// reporting, wire responses). Never call this inside the matching loop.
func (p Price) Float64() float64 { return float64(p.raw) / float64(PriceScale) }

func (p Price) String() string { return fmt.Sprintf("%.6f", p.Float64()) }

func (p Price) Equal(o Price) bool          { return p.raw == o.raw }
func (p Price) Less(o Price) bool           { return p.raw < o.raw }
func (p Price) Greater(o Price) bool        { return p.raw > o.raw }
func (p Price) LessOrEqual(o Price) bool    { return p.raw <= o.raw }
func (p Price) GreaterOrEqual(o Price) bool { return p.raw >= o.raw }

// Sub returns p-o as a raw scaled integer, suitable for a refund amount. The
// caller (matcher settlement) only ever calls this when p >= o (a taker's own
// limit price is never worse than the trade price it crossed), but we guard
// anyway: an underflow here would indicate a matching logic defect, not a
// user-triggered precondition failure, so it panics rather than wrapping.
func (p Price) Sub(o Price) uint64 {
	if o.raw > p.raw {
		panic(fmt.Sprintf("common: price subtraction underflow: %d - %d", p.raw, o.raw))
	}
	return p.raw - o.raw
}

// roundHalfEven rounds v to the nearest integer, breaking exact ties toward
// the even neighbor (banker's rounding), matching spec.md's requirement that
// decimal-to-fixed-point conversion round half-to-even at the last
// representable digit.
func roundHalfEven(v float64) uint64 {
	floor := math.Floor(v)
	diff := v - floor
	switch {
	case diff < 0.5:
		return uint64(floor)
	case diff > 0.5:
		return uint64(floor) + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return uint64(floor)
		}
		return uint64(floor) + 1
	}
}
