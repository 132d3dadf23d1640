package coinsphere

import (
	"strings"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

// Holding is a position in a single token.
type Holding struct {
	Symbol string
	Name   string
	Amount Quantity
	// AverageBuyPrice is the cost basis per token, in the portfolio currency.
	// It is not valid when the purchase price is unknown.
	AverageBuyPrice decimal.NullDecimal
	// CurrentPrice is the latest known market price, in the portfolio currency.
	CurrentPrice decimal.Decimal
	Source       string // where the holding comes from, e.g. "manual" or an exchange name.
	SourceID     string
}

// HoldingInput describes tokens added to a portfolio.
type HoldingInput struct {
	Symbol          string
	Name            string
	Amount          decimal.Decimal
	AverageBuyPrice decimal.NullDecimal
	Source          string
	SourceID        string
}

// Value returns the market value of the holding: current price times amount.
func (h *Holding) Value() decimal.Decimal {
	return dmath.Must(dmath.Multiply(h.CurrentPrice, h.Amount.value))
}

// Cost returns the cost basis of the holding: average buy price times amount.
// An unknown buy price counts as zero.
func (h *Holding) Cost() decimal.Decimal {
	return dmath.Must(dmath.Multiply(h.AverageBuyPrice, h.Amount.value))
}

// ProfitLoss returns the unrealized profit (or loss when negative).
func (h *Holding) ProfitLoss() decimal.Decimal {
	return dmath.Must(dmath.Subtract(h.Value(), h.Cost()))
}

// ProfitLossPercentage returns the profit or loss relative to the cost basis,
// zero when the cost basis is not strictly positive.
func (h *Holding) ProfitLossPercentage() decimal.Decimal {
	cost := h.Cost()
	if !cost.IsPositive() {
		return decimal.Zero
	}
	return dmath.Must(dmath.Percentage(h.ProfitLoss(), cost))
}

// normalizeSymbol returns the canonical form of a token symbol.
func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
