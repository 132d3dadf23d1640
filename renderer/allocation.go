package renderer

import (
	"bytes"

	"github.com/coinsphere/coinsphere"
	md "github.com/nao1215/markdown"
)

// AllocationMarkdown renders the breakdown of a portfolio value by token.
func AllocationMarkdown(name string, a coinsphere.Allocation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title("Allocation", name))
	if len(a.Entries) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Amount", "Price", "Value", "Share"},
	}
	for _, e := range a.Entries {
		table.Rows = append(table.Rows, []string{
			e.Symbol,
			e.Name,
			e.Amount.String(),
			priceString(e.Price),
			e.Value.String(),
			e.Percentage.String(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "", "", "", md.Bold(a.TotalValue.String()), "",
	})
	doc.Table(table)
	return doc.String()
}

// priceString shows sub unit prices in full, they would round to zero in the
// currency format.
func priceString(m coinsphere.Money) string {
	if m.IsZero() || m.Decimal().Abs().GreaterThanOrEqual(one) {
		return m.String()
	}
	return m.Decimal().String() + " " + m.Currency()
}
