package coinsphere

import (
	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

// Quantity is an amount of tokens.
type Quantity struct {
	value decimal.Decimal
}

// Q is a convenient factory for constant quantities. It panics if value is
// not a valid number.
func Q[T dmath.Input](value T) Quantity {
	return Quantity{value: dmath.Must(dmath.ToDecimal(value))}
}

// ParseQuantity reads a quantity from its decimal representation.
func ParseQuantity(s string) (Quantity, error) {
	d, err := dmath.Parse(s)
	return Quantity{value: d}, err
}

func (t Quantity) Decimal() decimal.Decimal        { return t.value }
func (t Quantity) Equal(p Quantity) bool           { return t.value.Equal(p.value) }
func (t Quantity) LessThan(quantity Quantity) bool { return t.value.LessThan(quantity.value) }
func (t Quantity) GreaterThan(p Quantity) bool     { return t.value.GreaterThan(p.value) }
func (t Quantity) Add(p Quantity) Quantity         { return Quantity{value: t.value.Add(p.value)} }
func (t Quantity) Sub(p Quantity) Quantity         { return Quantity{value: t.value.Sub(p.value)} }
func (t Quantity) IsNegative() bool                { return t.value.IsNegative() }
func (t Quantity) IsPositive() bool                { return t.value.IsPositive() }
func (t Quantity) IsZero() bool                    { return t.value.IsZero() }
func (q Quantity) String() string                  { return q.value.String() }

// Round returns the quantity rounded to places, half away from zero.
func (t Quantity) Round(places int32) Quantity {
	return Quantity{value: dmath.Must(dmath.RoundTo(t.value, places))}
}

// MarshalJSON implements the json.Marshaler interface.
func (t Quantity) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}

// UnmarshalJSON accepts both JSON numbers and decimal strings.
func (t *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	return t.value.UnmarshalJSON(decimalBytes)
}
