package coinsphere

import (
	"sort"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

// Stats summarizes the value of a portfolio.
type Stats struct {
	Currency             string
	TotalValue           Money
	TotalCost            Money
	ProfitLoss           Money
	ProfitLossPercentage Percent // relative to TotalCost
	HoldingsCount        int
}

// Stats computes the portfolio statistics from the current prices.
//
// The profit and loss percentage is zero when the total cost is not strictly
// positive (no known buy price).
func (p *Portfolio) Stats() Stats {
	totalValue, totalCost := Money{cur: p.Currency}, Money{cur: p.Currency}
	for _, h := range p.Holdings {
		totalValue = totalValue.Add(p.money(h.Value()))
		totalCost = totalCost.Add(p.money(h.Cost()))
	}
	profitLoss := totalValue.Sub(totalCost)

	return Stats{
		Currency:             p.Currency,
		TotalValue:           totalValue,
		TotalCost:            totalCost,
		ProfitLoss:           profitLoss,
		ProfitLossPercentage: percent(relative(profitLoss, totalCost)),
		HoldingsCount:        len(p.Holdings),
	}
}

// money returns d in the portfolio currency.
func (p *Portfolio) money(d decimal.Decimal) Money { return Money{value: d, cur: p.Currency} }

// relative returns part as a percentage of whole, zero when whole is not
// strictly positive.
func relative(part, whole Money) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return dmath.Must(dmath.Percentage(part.value, whole.value))
}

func (s Stats) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", s.Currency)
	w.Append("totalValue", s.TotalValue)
	w.Append("totalCost", s.TotalCost)
	w.Append("profitLoss", s.ProfitLoss)
	w.Append("profitLossPercentage", float64(s.ProfitLossPercentage))
	w.Append("holdingsCount", s.HoldingsCount)
	return w.MarshalJSON()
}

// AllocationEntry is the share of a single token in the portfolio value.
type AllocationEntry struct {
	Symbol     string
	Name       string
	Amount     Quantity // rounded to 8 decimal places
	Price      Money
	Value      Money
	Percentage Percent
}

// Allocation is the breakdown of a portfolio value by token, largest first.
type Allocation struct {
	Currency   string
	TotalValue Money
	Entries    []AllocationEntry
}

// amountPlaces is the precision of token amounts in reports.
const amountPlaces = 8

// Allocation computes the share of each holding in the portfolio value.
//
// Entries are sorted by value, largest first, then by symbol. Percentages are
// zero when the total value is not strictly positive.
func (p *Portfolio) Allocation() Allocation {
	totalValue := Money{cur: p.Currency}
	values := make([]Money, len(p.Holdings))
	for i, h := range p.Holdings {
		values[i] = p.money(h.CurrentPrice).Mul(h.Amount)
		totalValue = totalValue.Add(values[i])
	}

	entries := make([]AllocationEntry, 0, len(p.Holdings))
	for i, h := range p.Holdings {
		entries = append(entries, AllocationEntry{
			Symbol:     h.Symbol,
			Name:       h.Name,
			Amount:     h.Amount.Round(amountPlaces),
			Price:      p.money(h.CurrentPrice).exact(),
			Value:      values[i],
			Percentage: percent(relative(values[i], totalValue)),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if c := entries[i].Value.value.Cmp(entries[j].Value.value); c != 0 {
			return c > 0
		}
		return entries[i].Symbol < entries[j].Symbol
	})

	return Allocation{
		Currency:   p.Currency,
		TotalValue: totalValue,
		Entries:    entries,
	}
}

func (e AllocationEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", e.Symbol)
	w.Optional("name", e.Name)
	w.Append("amount", e.Amount)
	w.Append("price", e.Price)
	w.Append("value", e.Value)
	w.Append("percentage", float64(e.Percentage))
	return w.MarshalJSON()
}

func (a Allocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", a.Currency)
	w.Append("totalValue", a.TotalValue)
	w.Append("allocations", a.Entries)
	return w.MarshalJSON()
}

// PerformanceEntry is the unrealized profit or loss of a single holding.
type PerformanceEntry struct {
	Symbol          string
	Name            string
	Amount          Quantity
	AverageBuyPrice decimal.NullDecimal // unknown when no buy price is known
	CurrentPrice    Money
	Cost            Money
	Value           Money
	ProfitLoss      Money
	// ProfitLossPercentage is relative to Cost, zero when Cost is not
	// strictly positive.
	ProfitLossPercentage Percent

	pct decimal.Decimal
}

// Performance is the profit or loss of every holding, best first.
type Performance struct {
	Currency string
	Entries  []PerformanceEntry
}

// Performance computes the unrealized profit or loss of each holding.
//
// Entries are sorted by profit and loss percentage, best first, then by
// profit and loss, then by symbol.
func (p *Portfolio) Performance() Performance {
	entries := make([]PerformanceEntry, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		cost := p.money(h.Cost())
		value := p.money(h.Value())
		pnl := value.Sub(cost)
		pct := relative(pnl, cost)
		e := PerformanceEntry{
			Symbol:               h.Symbol,
			Name:                 h.Name,
			Amount:               h.Amount.Round(amountPlaces),
			AverageBuyPrice:      h.AverageBuyPrice,
			CurrentPrice:         p.money(h.CurrentPrice).exact(),
			Cost:                 cost,
			Value:                value,
			ProfitLoss:           pnl,
			ProfitLossPercentage: percent(pct),
			pct:                  pct,
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if c := entries[i].pct.Cmp(entries[j].pct); c != 0 {
			return c > 0
		}
		if c := entries[i].ProfitLoss.value.Cmp(entries[j].ProfitLoss.value); c != 0 {
			return c > 0
		}
		return entries[i].Symbol < entries[j].Symbol
	})
	return Performance{Currency: p.Currency, Entries: entries}
}

// Top returns the n best performers among the holdings with a cost basis
// strictly positive. n <= 0 keeps all of them.
func (r Performance) Top(n int) Performance {
	top := Performance{Currency: r.Currency, Entries: []PerformanceEntry{}}
	for _, e := range r.Entries {
		if n > 0 && len(top.Entries) == n {
			break
		}
		if e.Cost.IsPositive() {
			top.Entries = append(top.Entries, e)
		}
	}
	return top
}

func (e PerformanceEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", e.Symbol)
	w.Optional("name", e.Name)
	w.Append("amount", e.Amount)
	if e.AverageBuyPrice.Valid {
		w.Append("averageBuyPrice", Money{value: e.AverageBuyPrice.Decimal, cur: e.Cost.cur}.exact())
	}
	w.Append("currentPrice", e.CurrentPrice)
	w.Append("cost", e.Cost)
	w.Append("value", e.Value)
	w.Append("profitLoss", e.ProfitLoss)
	w.Append("profitLossPercentage", float64(e.ProfitLossPercentage))
	return w.MarshalJSON()
}

func (r Performance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", r.Currency)
	w.Append("holdings", r.Entries)
	return w.MarshalJSON()
}
