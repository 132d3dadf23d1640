package coinsphere

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPortfolio_Stats(t *testing.T) {
	p := newTestPortfolio(t,
		HoldingInput{Symbol: "ETH", Amount: decimal.NewFromInt(10), AverageBuyPrice: price("100.50")},
		HoldingInput{Symbol: "ETH", Amount: decimal.NewFromInt(5), AverageBuyPrice: price("120.25")},
		HoldingInput{Symbol: "ETH", Amount: decimal.NewFromInt(15), AverageBuyPrice: price("95.75")},
	)
	p.SetPrices(map[string]decimal.Decimal{"ETH": D(t, "110")})

	s := p.Stats()
	if got := s.TotalValue.String(); got != "$3,300.00" {
		t.Errorf("TotalValue = %s, want $3,300.00", got)
	}
	if got := s.TotalCost.String(); got != "$3,042.50" {
		t.Errorf("TotalCost = %s, want $3,042.50", got)
	}
	if got := s.ProfitLoss.String(); got != "$257.50" {
		t.Errorf("ProfitLoss = %s, want $257.50", got)
	}
	if !s.ProfitLossPercentage.Equal(8.46) {
		t.Errorf("ProfitLossPercentage = %v, want 8.46", s.ProfitLossPercentage)
	}
	if s.HoldingsCount != 1 {
		t.Errorf("HoldingsCount = %d, want 1", s.HoldingsCount)
	}

	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"currency":"USD",` +
		`"totalValue":{"currency":"USD","amount":"3300"},` +
		`"totalCost":{"currency":"USD","amount":"3042.5"},` +
		`"profitLoss":{"currency":"USD","amount":"257.5"},` +
		`"profitLossPercentage":8.46,"holdingsCount":1}`
	if string(got) != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
}

func TestPortfolio_Stats_NoCost(t *testing.T) {
	testCases := []struct {
		name     string
		holdings []HoldingInput
	}{
		{"empty portfolio", nil},
		{"unknown buy price", []HoldingInput{{Symbol: "DOGE", Amount: decimal.NewFromInt(1000)}}},
		{"airdrop", []HoldingInput{{Symbol: "AIR", Amount: decimal.NewFromInt(10), AverageBuyPrice: price("0")}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPortfolio(t, tc.holdings...)
			p.SetPrices(map[string]decimal.Decimal{"DOGE": D(t, "0.1"), "AIR": D(t, "2")})
			s := p.Stats()
			if !s.TotalCost.IsZero() {
				t.Errorf("TotalCost = %s, want 0", s.TotalCost.Decimal())
			}
			if s.ProfitLossPercentage != 0 {
				t.Errorf("ProfitLossPercentage = %v, want 0", s.ProfitLossPercentage)
			}
			if !sameMoney(s.ProfitLoss, s.TotalValue) {
				t.Errorf("ProfitLoss = %s, want %s", s.ProfitLoss.Decimal(), s.TotalValue.Decimal())
			}
		})
	}
}

func TestPortfolio_Allocation(t *testing.T) {
	p := newTestPortfolio(t,
		HoldingInput{Symbol: "DOGE", Amount: decimal.NewFromInt(1000)},
		HoldingInput{Symbol: "XRP", Amount: decimal.NewFromInt(1)},
		HoldingInput{Symbol: "ETH", Amount: decimal.NewFromInt(2)},
		HoldingInput{Symbol: "ADA", Amount: decimal.NewFromInt(1)},
		HoldingInput{Symbol: "BTC", Name: "Bitcoin", Amount: D(t, "0.5")},
	)
	p.SetPrices(map[string]decimal.Decimal{
		"BTC":  D(t, "60000"),
		"ETH":  D(t, "3000"),
		"DOGE": D(t, "0.1"),
	})

	a := p.Allocation()
	if got := a.TotalValue.String(); got != "$36,100.00" {
		t.Errorf("TotalValue = %s, want $36,100.00", got)
	}

	want := []struct {
		symbol string
		value  Money
		pct    Percent
	}{
		{"BTC", USD(30000), 83.10},
		{"ETH", USD(6000), 16.62},
		{"DOGE", USD(100), 0.28},
		{"ADA", USD(0), 0},
		{"XRP", USD(0), 0},
	}
	if len(a.Entries) != len(want) {
		t.Fatalf("len(Entries) = %d, want %d", len(a.Entries), len(want))
	}
	for i, w := range want {
		e := a.Entries[i]
		if e.Symbol != w.symbol {
			t.Errorf("Entries[%d].Symbol = %s, want %s", i, e.Symbol, w.symbol)
		}
		if !sameMoney(e.Value, w.value) {
			t.Errorf("Entries[%d].Value = %s, want %s", i, e.Value.Decimal(), w.value.Decimal())
		}
		if !e.Percentage.Equal(w.pct) {
			t.Errorf("Entries[%d].Percentage = %v, want %v", i, e.Percentage, w.pct)
		}
	}
}

func TestPortfolio_Allocation_Empty(t *testing.T) {
	p := newTestPortfolio(t, HoldingInput{Symbol: "BTC", Amount: decimal.NewFromInt(1)})
	a := p.Allocation()
	if !a.TotalValue.IsZero() {
		t.Errorf("TotalValue = %s, want 0", a.TotalValue.Decimal())
	}
	if a.Entries[0].Percentage != 0 {
		t.Errorf("Percentage = %v, want 0", a.Entries[0].Percentage)
	}
}

func TestAllocation_MarshalJSON(t *testing.T) {
	p := newTestPortfolio(t,
		HoldingInput{Symbol: "BTC", Name: "Bitcoin", Amount: D(t, "0.500000004")},
	)
	p.SetPrices(map[string]decimal.Decimal{"BTC": D(t, "60000.123")})

	got, err := json.Marshal(p.Allocation())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"currency":"USD","totalValue":{"currency":"USD","amount":"30000.06"},"allocations":[` +
		`{"symbol":"BTC","name":"Bitcoin","amount":"0.5",` +
		`"price":{"currency":"USD","amount":"60000.123"},` +
		`"value":{"currency":"USD","amount":"30000.06"},"percentage":100}]}`
	if string(got) != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
}

func TestPortfolio_Performance(t *testing.T) {
	p := newTestPortfolio(t,
		HoldingInput{Symbol: "BTC", Amount: D(t, "0.5"), AverageBuyPrice: price("40000")},
		HoldingInput{Symbol: "DOGE", Amount: decimal.NewFromInt(1000)},
		HoldingInput{Symbol: "SOL", Amount: decimal.NewFromInt(10), AverageBuyPrice: price("100")},
		HoldingInput{Symbol: "AIR", Amount: decimal.NewFromInt(10), AverageBuyPrice: price("0")},
		HoldingInput{Symbol: "ETH", Amount: decimal.NewFromInt(2), AverageBuyPrice: price("1500")},
	)
	p.SetPrices(map[string]decimal.Decimal{
		"BTC":  D(t, "60000"),
		"ETH":  D(t, "3000"),
		"DOGE": D(t, "0.1"),
		"SOL":  D(t, "80"),
		"AIR":  D(t, "2"),
	})

	want := []struct {
		symbol string
		cost   Money
		pnl    Money
		pct    Percent
	}{
		{"ETH", USD(3000), USD(3000), 100},
		{"BTC", USD(20000), USD(10000), 50},
		{"DOGE", USD(0), USD(100), 0},
		{"AIR", USD(0), USD(20), 0},
		{"SOL", USD(1000), USD(-200), -20},
	}
	perf := p.Performance()
	if len(perf.Entries) != len(want) {
		t.Fatalf("len(Entries) = %d, want %d", len(perf.Entries), len(want))
	}
	for i, w := range want {
		e := perf.Entries[i]
		if e.Symbol != w.symbol {
			t.Errorf("Entries[%d].Symbol = %s, want %s", i, e.Symbol, w.symbol)
		}
		if !sameMoney(e.Cost, w.cost) {
			t.Errorf("Entries[%d].Cost = %s, want %s", i, e.Cost.Decimal(), w.cost.Decimal())
		}
		if !sameMoney(e.ProfitLoss, w.pnl) {
			t.Errorf("Entries[%d].ProfitLoss = %s, want %s", i, e.ProfitLoss.Decimal(), w.pnl.Decimal())
		}
		if !e.ProfitLossPercentage.Equal(w.pct) {
			t.Errorf("Entries[%d].ProfitLossPercentage = %v, want %v", i, e.ProfitLossPercentage, w.pct)
		}
	}

	var top []string
	for _, e := range perf.Top(0).Entries {
		top = append(top, e.Symbol)
	}
	if got, want := strings.Join(top, ","), "ETH,BTC,SOL"; got != want {
		t.Errorf("Top(0) = %s, want %s", got, want)
	}
	top = nil
	for _, e := range perf.Top(2).Entries {
		top = append(top, e.Symbol)
	}
	if got, want := strings.Join(top, ","), "ETH,BTC"; got != want {
		t.Errorf("Top(2) = %s, want %s", got, want)
	}
}

func TestHolding_ProfitLossPercentage(t *testing.T) {
	testCases := []struct {
		avg  decimal.NullDecimal
		want string
	}{
		{price("100"), "25"},
		{price("160"), "-21.875"},
		{price("0"), "0"},
		{decimal.NullDecimal{}, "0"},
	}
	for _, tc := range testCases {
		h := &Holding{Symbol: "X", Amount: Q(4), AverageBuyPrice: tc.avg, CurrentPrice: D(t, "125")}
		if got := h.ProfitLossPercentage(); !got.Equal(D(t, tc.want)) {
			t.Errorf("ProfitLossPercentage(avg %v) = %s, want %s", tc.avg, got, tc.want)
		}
	}
}

func TestPerformance_MarshalJSON(t *testing.T) {
	p := newTestPortfolio(t,
		HoldingInput{Symbol: "ETH", Amount: decimal.NewFromInt(2), AverageBuyPrice: price("1500")},
		HoldingInput{Symbol: "DOGE", Amount: decimal.NewFromInt(1000)},
	)
	p.SetPrices(map[string]decimal.Decimal{"ETH": D(t, "3000"), "DOGE": D(t, "0.1")})

	got, err := json.Marshal(p.Performance())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"currency":"USD","holdings":[` +
		`{"symbol":"ETH","amount":"2","averageBuyPrice":{"currency":"USD","amount":"1500"},` +
		`"currentPrice":{"currency":"USD","amount":"3000"},"cost":{"currency":"USD","amount":"3000"},` +
		`"value":{"currency":"USD","amount":"6000"},"profitLoss":{"currency":"USD","amount":"3000"},` +
		`"profitLossPercentage":100},` +
		`{"symbol":"DOGE","amount":"1000","currentPrice":{"currency":"USD","amount":"0.1"},` +
		`"cost":{"currency":"USD","amount":"0"},"value":{"currency":"USD","amount":"100"},` +
		`"profitLoss":{"currency":"USD","amount":"100"},"profitLossPercentage":0}]}`
	if string(got) != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
}
