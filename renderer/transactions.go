package renderer

import (
	"bytes"

	"github.com/coinsphere/coinsphere"
	md "github.com/nao1215/markdown"
)

// TransactionsMarkdown renders a transaction log, amounts in currency.
func TransactionsMarkdown(name, currency string, txs []coinsphere.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title("Transactions", name))
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Type", "Symbol", "Amount", "Price", "Fee", "Total"},
	}
	for _, tx := range txs {
		date := ""
		if !tx.Timestamp.IsZero() {
			date = tx.Timestamp.UTC().Format("2006-01-02")
		}
		price, total := "-", "-"
		if tx.Price.Valid {
			price = priceString(coinsphere.M(tx.Price.Decimal, currency))
		}
		if t, ok := tx.Total(currency); ok {
			total = t.String()
		}
		fee := "-"
		if !tx.Fee.IsZero() {
			fee = coinsphere.M(tx.Fee, currency).String()
		}
		table.Rows = append(table.Rows, []string{
			date,
			string(tx.Type),
			tx.Symbol,
			tx.Amount.String(),
			price,
			fee,
			total,
		})
	}
	doc.Table(table)
	return doc.String()
}
