// Package dmath provides exact decimal arithmetic for money, token amounts and
// percentages.
//
// All helpers accept any [Input] (native numbers, decimal strings, or
// decimal.Decimal values), coerce them with [ToDecimal] and return a new
// decimal.Decimal. Addition, subtraction and multiplication are exact.
// Division is rounded to [Precision] significant digits, half away from zero.
//
// Division by exact zero is an error in [Divide]. [Percentage] and
// [WeightedAverage] return zero for an empty base instead.
//
// The package has no mutable state: the shopspring global
// decimal.DivisionPrecision is never read nor written.
package dmath

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of significant digits kept by division.
const Precision = 28

// CurrencyPlaces is the default number of decimal places for fiat amounts.
const CurrencyPlaces = 2

var (
	// ErrInvalidNumericFormat is returned when an input cannot be read as a decimal.
	ErrInvalidNumericFormat = errors.New("invalid numeric format")
	// ErrDivisionByZero is returned by Divide when the divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Input is the set of values the helpers accept.
//
// A nil *decimal.Decimal and an invalid decimal.NullDecimal stand for a
// missing value and are read as zero.
type Input interface {
	int | int32 | int64 | uint | uint32 | uint64 |
		float32 | float64 |
		string | json.Number |
		decimal.Decimal | decimal.NullDecimal | *decimal.Decimal
}

// ToDecimal converts v to a decimal.
//
// A decimal.Decimal is returned unchanged, not rescaled nor copied.
func ToDecimal[T Input](v T) (decimal.Decimal, error) {
	switch x := any(v).(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, nil
		}
		return *x, nil
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero, nil
		}
		return x.Decimal, nil
	case string:
		return Parse(x)
	case json.Number:
		return Parse(string(x))
	case float64:
		return fromFloat(x, 64)
	case float32:
		return fromFloat(float64(x), 32)
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case uint:
		return decimal.NewFromUint64(uint64(x)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(x)), nil
	case uint64:
		return decimal.NewFromUint64(x), nil
	default:
		panic("unreachable")
	}
}

// Parse reads a decimal string such as "123.456", "-0.5" or "1e-8".
func Parse(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return decimal.Zero, fmt.Errorf("%w: empty string", ErrInvalidNumericFormat)
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumericFormat, s)
	}
	return d, nil
}

// fromFloat converts through the shortest representation that round-trips
// to the same float, so 0.1 becomes exactly 0.1.
func fromFloat(f float64, bits int) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidNumericFormat, f)
	}
	if bits == 32 {
		return decimal.NewFromFloat32(float32(f)), nil
	}
	return decimal.NewFromFloat(f), nil
}

// Must panics if err is not nil. It is meant for constant inputs.
func Must(d decimal.Decimal, err error) decimal.Decimal {
	if err != nil {
		panic(err)
	}
	return d
}

// pair coerces both operands, reporting the first failure.
func pair[A, B Input](a A, b B) (x, y decimal.Decimal, err error) {
	if x, err = ToDecimal(a); err != nil {
		return
	}
	y, err = ToDecimal(b)
	return
}

// Add returns a+b.
func Add[A, B Input](a A, b B) (decimal.Decimal, error) {
	x, y, err := pair(a, b)
	if err != nil {
		return decimal.Zero, err
	}
	return x.Add(y), nil
}

// Subtract returns a-b.
func Subtract[A, B Input](a A, b B) (decimal.Decimal, error) {
	x, y, err := pair(a, b)
	if err != nil {
		return decimal.Zero, err
	}
	return x.Sub(y), nil
}

// Multiply returns a*b.
func Multiply[A, B Input](a A, b B) (decimal.Decimal, error) {
	x, y, err := pair(a, b)
	if err != nil {
		return decimal.Zero, err
	}
	return x.Mul(y), nil
}

// Divide returns a/b rounded to Precision significant digits.
// It fails with ErrDivisionByZero when b is exactly zero.
func Divide[A, B Input](a A, b B) (decimal.Decimal, error) {
	x, y, err := pair(a, b)
	if err != nil {
		return decimal.Zero, err
	}
	if y.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return quo(x, y), nil
}

// Percentage returns part/whole*100, or zero when whole is exactly zero.
func Percentage[A, B Input](part A, whole B) (decimal.Decimal, error) {
	x, y, err := pair(part, whole)
	if err != nil {
		return decimal.Zero, err
	}
	if y.IsZero() {
		return decimal.Zero, nil
	}
	return quo(x, y).Mul(hundred), nil
}

var hundred = decimal.NewFromInt(100)

// WeightedAverage returns (price1*weight1 + price2*weight2) / (weight1+weight2).
//
// It is zero when the total weight is zero. When a single weight is zero the
// result is the other price.
func WeightedAverage[P1, W1, P2, W2 Input](price1 P1, weight1 W1, price2 P2, weight2 W2) (decimal.Decimal, error) {
	p1, w1, err := pair(price1, weight1)
	if err != nil {
		return decimal.Zero, err
	}
	p2, w2, err := pair(price2, weight2)
	if err != nil {
		return decimal.Zero, err
	}
	total := w1.Add(w2)
	if total.IsZero() {
		return decimal.Zero, nil
	}
	return quo(p1.Mul(w1).Add(p2.Mul(w2)), total), nil
}

// RoundTo rounds v to places decimal places, half away from zero
// (1.5 -> 2, 2.5 -> 3, -2.5 -> -3).
func RoundTo[T Input](v T, places int32) (decimal.Decimal, error) {
	d, err := ToDecimal(v)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(places), nil
}

// RoundCurrency rounds v to CurrencyPlaces.
func RoundCurrency[T Input](v T) (decimal.Decimal, error) {
	return RoundTo(v, CurrencyPlaces)
}

// ToNumber rounds d to places and returns the nearest float64.
//
// This is where precision is given up, only for display or storage; results
// must not be fed back into calculations.
func ToNumber(d decimal.Decimal, places int32) float64 {
	return d.Round(places).InexactFloat64()
}

// ToFixed formats d with exactly places decimal places.
func ToFixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// Sum adds up values. An empty slice sums to zero.
func Sum[T Input](values []T) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, v := range values {
		d, err := ToDecimal(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("value #%d: %w", i, err)
		}
		total = total.Add(d)
	}
	return total, nil
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func Compare[A, B Input](a A, b B) (int, error) {
	x, y, err := pair(a, b)
	if err != nil {
		return 0, err
	}
	return x.Cmp(y), nil
}

// Max returns the greater of a and b, b when they are equal.
func Max[A, B Input](a A, b B) (decimal.Decimal, error) {
	x, y, err := pair(a, b)
	if err != nil {
		return decimal.Zero, err
	}
	if x.GreaterThan(y) {
		return x, nil
	}
	return y, nil
}

// Min returns the lesser of a and b, b when they are equal.
func Min[A, B Input](a A, b B) (decimal.Decimal, error) {
	x, y, err := pair(a, b)
	if err != nil {
		return decimal.Zero, err
	}
	if x.LessThan(y) {
		return x, nil
	}
	return y, nil
}

// IsZero reports whether v is exactly zero.
func IsZero[T Input](v T) (bool, error) {
	d, err := ToDecimal(v)
	return err == nil && d.IsZero(), err
}

// IsPositive reports whether v is strictly greater than zero.
func IsPositive[T Input](v T) (bool, error) {
	d, err := ToDecimal(v)
	return err == nil && d.IsPositive(), err
}

// IsNegative reports whether v is strictly less than zero.
func IsNegative[T Input](v T) (bool, error) {
	d, err := ToDecimal(v)
	return err == nil && d.IsNegative(), err
}

// quo divides x by a non zero y and keeps Precision significant digits,
// rounding once.
func quo(x, y decimal.Decimal) decimal.Decimal {
	ax, ay := adjusted(x), adjusted(y)
	e := ax - ay
	if x.Abs().Shift(-ax).LessThan(y.Abs().Shift(-ay)) {
		e--
	}
	return x.DivRound(y, Precision-1-e)
}

// adjusted returns the exponent of the most significant digit of d,
// e.g. 2 for 123.4 and -3 for 0.00123.
func adjusted(d decimal.Decimal) int32 {
	if d.IsZero() {
		return 0
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	return int32(digits) - 1 + d.Exponent()
}
