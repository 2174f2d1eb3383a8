package common

import "fmt"

// QuantityScale is the fixed-point scale for Quantity: eight decimal places.
const QuantityScale uint64 = 100_000_000

// Quantity is a non-negative fixed-point integer at scale 10^8.
type Quantity struct {
	raw uint64
}

// NewQuantity wraps a raw scaled integer directly.
func NewQuantity(raw uint64) Quantity {
	return Quantity{raw: raw}
}

// QuantityFromFloat constructs a Quantity from a decimal scalar, rounding
// half-to-even at the last representable digit.
func QuantityFromFloat(value float64) Quantity {
	return Quantity{raw: roundHalfEven(value * float64(QuantityScale))}
}

// Raw returns the underlying scaled integer.
func (q Quantity) Raw() uint64 { return q.raw }

// Float64 converts back to a decimal scalar for boundary use.
func (q Quantity) Float64() float64 { return float64(q.raw) / float64(QuantityScale) }

func (q Quantity) String() string { return fmt.Sprintf("%.8f", q.Float64()) }

func (q Quantity) IsZero() bool          { return q.raw == 0 }
func (q Quantity) Equal(o Quantity) bool { return q.raw == o.raw }
func (q Quantity) Less(o Quantity) bool  { return q.raw < o.raw }

// Add never overflows in realistic bounds (total BTC/USD supply is well
// inside uint64 range at either scale), so it is not checked.
func (q Quantity) Add(o Quantity) Quantity {
	return Quantity{raw: q.raw + o.raw}
}

// Sub is a checked subtraction: subtracting more than the current value is a
// programmer error (it means some caller double-decremented a remaining
// quantity), not a user-triggered precondition failure, so it panics instead
// of wrapping.
func (q Quantity) Sub(o Quantity) Quantity {
	if o.raw > q.raw {
		panic(fmt.Sprintf("common: quantity subtraction underflow: %d - %d", q.raw, o.raw))
	}
	return Quantity{raw: q.raw - o.raw}
}

// Min returns the smaller of q and o, used by the matcher to size a fill.
func Min(a, b Quantity) Quantity {
	if a.raw < b.raw {
		return a
	}
	return b
}
