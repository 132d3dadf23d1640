package coinsphere

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{USD(3042.5), "$3,042.50"},
		{USD("0.004"), "$0.00"},
		{USD("-12.345"), "-$12.35"},
		{EUR("1234567.891"), "€1,234,567.89"},
		{M("1234.5", "JPY"), "¥1,235"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("Money(%s %s).String() = %q, want %q", tc.m.Decimal(), tc.m.Currency(), got, tc.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{USD(5), "+$5.00"},
		{USD(-5), "-$5.00"},
		{USD("0.004"), "-"},
		{USD("-0.004"), "-"},
	}
	for _, tc := range testCases {
		if got := tc.m.SignedString(); got != tc.want {
			t.Errorf("Money(%s).SignedString() = %q, want %q", tc.m.Decimal(), got, tc.want)
		}
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	testCases := []struct {
		name string
		m    Money
		want string
	}{
		{"rounded to the currency", USD("1.005"), `{"currency":"USD","amount":"1.01"}`},
		{"exact", USD("1.005").exact(), `{"currency":"USD","amount":"1.005"}`},
		{"no currency", M("2.5", ""), `{"amount":"2.5"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.m)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("json.Marshal() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3
	if got := USD(0.1).Add(USD(0.2)); !sameMoney(got, USD("0.3")) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", got.Decimal())
	}
	if got := USD("100.50").Mul(Q(10)); !sameMoney(got, USD("1005")) {
		t.Errorf("100.50 * 10 = %s, want 1005", got.Decimal())
	}
	if got := USD(10).Sub(USD("10.01")); !sameMoney(got, USD("-0.01")) {
		t.Errorf("10 - 10.01 = %s, want -0.01", got.Decimal())
	}
	if got := (Money{}).Add(EUR(2)); got.Currency() != "EUR" {
		t.Errorf("Currency() = %q, want EUR", got.Currency())
	}
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("USD + EUR did not panic")
		}
	}()
	USD(1).Add(EUR(1))
}

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "jpy"} {
		if err := ValidateCurrency(code); err != nil {
			t.Errorf("ValidateCurrency(%q) error = %v", code, err)
		}
	}
	for _, code := range []string{"", "BTC1", "NOPE"} {
		if err := ValidateCurrency(code); !errors.Is(err, ErrInvalidCurrency) {
			t.Errorf("ValidateCurrency(%q) error = %v, want %v", code, err, ErrInvalidCurrency)
		}
	}
}

func TestPercent_String(t *testing.T) {
	if got := Percent(8.46).String(); got != "8.46%" {
		t.Errorf("String() = %q, want 8.46%%", got)
	}
	if got := Percent(8.46).SignedString(); got != "+8.46%" {
		t.Errorf("SignedString() = %q, want +8.46%%", got)
	}
	if got := Percent(-0.001).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want -", got)
	}
}
