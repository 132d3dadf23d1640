package renderer

import (
	"bytes"

	"github.com/coinsphere/coinsphere"
	md "github.com/nao1215/markdown"
)

// PerformanceMarkdown renders the profit or loss of each holding, best first.
func PerformanceMarkdown(name string, r coinsphere.Performance) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title("Performance", name))
	if len(r.Entries) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Avg Price", "Price", "Cost", "Value", "P/L", "P/L %"},
	}
	for _, e := range r.Entries {
		avg := "-"
		if e.AverageBuyPrice.Valid {
			avg = priceString(coinsphere.M(e.AverageBuyPrice.Decimal, r.Currency))
		}
		table.Rows = append(table.Rows, []string{
			e.Symbol,
			avg,
			priceString(e.CurrentPrice),
			e.Cost.String(),
			e.Value.String(),
			e.ProfitLoss.SignedString(),
			e.ProfitLossPercentage.SignedString(),
		})
	}
	doc.Table(table)
	return doc.String()
}
