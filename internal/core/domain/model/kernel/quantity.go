package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quantity is a value object for line and order quantities. It wraps a
// decimal so fractional units (kilograms, litres) survive arithmetic
// without floating-point drift.
//
// A Quantity constructed via NewQuantity is strictly positive; quantities
// of zero or less are rejected at construction rather than clamped. The
// zero value represents "no quantity" and is only produced internally
// (e.g. an unshipped line's shipped counter).
type Quantity struct {
	value decimal.Decimal
}

// ZeroQuantity returns the zero quantity. Used for counters that have not
// accumulated anything yet, never for a requested amount.
func ZeroQuantity() Quantity {
	return Quantity{value: decimal.Zero}
}

// NewQuantity creates a strictly positive Quantity.
// Rejects zero and negative values; there is no clamping into range.
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is not greater than 0", value))
	}
	return Quantity{value: value}, nil
}

// QuantityFromString parses a decimal string into a strictly positive Quantity.
func QuantityFromString(s string) (Quantity, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(value)
}

// RestoreQuantity rebuilds a Quantity from persistence without the
// positivity check, so zero counters round-trip. Negative values are
// still rejected: storage must never hold a negative quantity.
func RestoreQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is negative", value))
	}
	return Quantity{value: value}, nil
}

// Decimal returns the underlying decimal value.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// String returns the decimal string form, e.g. "2.5".
func (q Quantity) String() string {
	return q.value.String()
}

// IsZero reports whether the quantity is exactly zero.
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// IsPositive reports whether the quantity is greater than zero.
func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Sub returns the difference q - other. The result may be negative;
// callers compare against zero to detect overcommit.
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity{value: q.value.Sub(other.value)}
}

// GreaterThan reports whether q > other.
func (q Quantity) GreaterThan(other Quantity) bool {
	return q.value.GreaterThan(other.value)
}

// LessThan reports whether q < other.
func (q Quantity) LessThan(other Quantity) bool {
	return q.value.LessThan(other.value)
}

// IsEqual reports whether two quantities are numerically equal.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value.Equal(other.value)
}
