package renderer

import (
	"bytes"
	"strconv"

	"github.com/coinsphere/coinsphere"
	md "github.com/nao1215/markdown"
)

// StatsMarkdown renders the value summary of a portfolio.
func StatsMarkdown(name string, s coinsphere.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title("Portfolio Value", name))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total Value"), md.Bold(s.TotalValue.String())},
		Rows: [][]string{
			{"Total Cost", s.TotalCost.String()},
			{"Profit / Loss", s.ProfitLoss.SignedString()},
			{"Profit / Loss %", s.ProfitLossPercentage.SignedString()},
			{"Holdings", strconv.Itoa(s.HoldingsCount)},
		},
	})
	return doc.String()
}
