package coinsphere

import (
	"errors"
	"fmt"
	"slices"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrInvalidSymbol       = errors.New("invalid token symbol")
	ErrInvalidAmount       = errors.New("amount must be strictly positive")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrHoldingNotFound     = errors.New("holding not found")
	ErrInsufficientHolding = errors.New("insufficient holding")
)

// DefaultCurrency is the reporting currency of a portfolio that does not set one.
const DefaultCurrency = "USD"

// Portfolio is a named set of holdings valued in a single fiat currency.
type Portfolio struct {
	ID       string
	Name     string
	Currency string
	Holdings []*Holding
	// Transactions is the log of recorded transactions, oldest first.
	Transactions []Transaction
}

// NewPortfolio creates an empty portfolio. An empty currency defaults to
// DefaultCurrency.
func NewPortfolio(name, currency string) (*Portfolio, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	return &Portfolio{Name: name, Currency: currency}, nil
}

// Holding returns the holding for symbol, or nil.
func (p *Portfolio) Holding(symbol string) *Holding {
	symbol = normalizeSymbol(symbol)
	for _, h := range p.Holdings {
		if h.Symbol == symbol {
			return h
		}
	}
	return nil
}

// Symbols returns the symbols of all holdings, in portfolio order.
func (p *Portfolio) Symbols() []string {
	symbols := make([]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}

// AddHolding adds tokens to the portfolio.
//
// If the portfolio already holds the symbol, the amounts are added and the
// average buy price becomes the average of both prices weighted by their
// amounts. When only the incoming price is known it replaces the old one, when
// only the existing one is known it is kept. Non-empty source fields replace
// the existing ones.
func (p *Portfolio) AddHolding(in HoldingInput) (*Holding, error) {
	symbol := normalizeSymbol(in.Symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, in.Amount)
	}
	if in.AverageBuyPrice.Valid && in.AverageBuyPrice.Decimal.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidPrice, in.AverageBuyPrice.Decimal)
	}

	h := p.Holding(symbol)
	if h == nil {
		h = &Holding{
			Symbol:          symbol,
			Name:            in.Name,
			Amount:          Quantity{value: in.Amount},
			AverageBuyPrice: in.AverageBuyPrice,
			Source:          in.Source,
			SourceID:        in.SourceID,
		}
		p.Holdings = append(p.Holdings, h)
		return h, nil
	}

	switch {
	case in.AverageBuyPrice.Valid && h.AverageBuyPrice.Valid:
		avg, err := dmath.WeightedAverage(h.AverageBuyPrice, h.Amount.value, in.AverageBuyPrice, in.Amount)
		if err != nil {
			return nil, fmt.Errorf("cannot compute average buy price of %s: %w", symbol, err)
		}
		h.AverageBuyPrice = decimal.NewNullDecimal(avg)
	case in.AverageBuyPrice.Valid:
		h.AverageBuyPrice = in.AverageBuyPrice
	}
	h.Amount = h.Amount.Add(Quantity{value: in.Amount})
	if h.Name == "" {
		h.Name = in.Name
	}
	if in.Source != "" {
		h.Source = in.Source
	}
	if in.SourceID != "" {
		h.SourceID = in.SourceID
	}
	return h, nil
}

// Sell removes amount tokens from the holding of symbol. The average buy price
// is unchanged. A holding sold down to exactly zero is removed from the
// portfolio, the returned holding then has a zero amount.
func (p *Portfolio) Sell(symbol string, amount decimal.Decimal) (*Holding, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	h := p.Holding(symbol)
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrHoldingNotFound, normalizeSymbol(symbol))
	}
	sold := Quantity{value: amount}
	if h.Amount.LessThan(sold) {
		return nil, fmt.Errorf("%w: cannot sell %s %s, only %s held", ErrInsufficientHolding, amount, h.Symbol, h.Amount)
	}
	h.Amount = h.Amount.Sub(sold)
	if h.Amount.IsZero() {
		p.Holdings = slices.DeleteFunc(p.Holdings, func(x *Holding) bool { return x == h })
	}
	return h, nil
}

// SetPrices updates the current price of every holding found in prices
// (keyed by symbol) and returns the number of holdings updated.
func (p *Portfolio) SetPrices(prices map[string]decimal.Decimal) int {
	n := 0
	for _, h := range p.Holdings {
		if price, ok := prices[h.Symbol]; ok {
			h.CurrentPrice = price
			n++
		}
	}
	return n
}
