package coinsphere

import (
	"testing"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

// EUR is a helper for test to create euro money from const
func EUR[T dmath.Input](v T) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD[T dmath.Input](v T) Money { return M(v, "USD") }

// sameMoney reports whether a and b have the same currency and value.
func sameMoney(a, b Money) bool {
	return a.Currency() == b.Currency() && a.Decimal().Equal(b.Decimal())
}

// D is a helper for test to create a decimal from a decimal string.
func D(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q) error = %v", s, err)
	}
	return d
}

// price is a helper for test to create a known average buy price.
func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// newTestPortfolio returns a USD portfolio with the given holdings added in order.
func newTestPortfolio(t *testing.T, holdings ...HoldingInput) *Portfolio {
	t.Helper()
	p, err := NewPortfolio("test", "USD")
	if err != nil {
		t.Fatalf("NewPortfolio() error = %v", err)
	}
	for _, in := range holdings {
		if _, err := p.AddHolding(in); err != nil {
			t.Fatalf("AddHolding(%s) error = %v", in.Symbol, err)
		}
	}
	return p
}
