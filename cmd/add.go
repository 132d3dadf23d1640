package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/coinsphere/coinsphere"
	"github.com/coinsphere/coinsphere/dmath"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// txFlags are the flags shared by the commands recording a transaction.
type txFlags struct {
	symbol string
	amount string
	price  string
	fee    string
	notes  string
}

func (c *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Token symbol, e.g. BTC")
	f.StringVar(&c.amount, "a", "", "Amount of tokens, e.g. 0.5")
	f.StringVar(&c.fee, "fee", "", "Fee paid in the portfolio currency")
	f.StringVar(&c.notes, "notes", "", "Free text stored with the transaction")
}

// transaction parses the flags into a transaction. With a price it is a trade,
// without one a transfer.
func (c *txFlags) transaction(incoming bool) (coinsphere.Transaction, error) {
	tx := coinsphere.Transaction{
		Symbol:    c.symbol,
		Notes:     c.notes,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
	var err error
	if tx.Amount, err = dmath.Parse(c.amount); err != nil {
		return tx, fmt.Errorf("amount: %w", err)
	}
	if c.fee != "" {
		if tx.Fee, err = dmath.Parse(c.fee); err != nil {
			return tx, fmt.Errorf("fee: %w", err)
		}
	}
	if c.price != "" {
		price, err := dmath.Parse(c.price)
		if err != nil {
			return tx, fmt.Errorf("price: %w", err)
		}
		tx.Price = decimal.NewNullDecimal(price)
	}
	switch {
	case incoming && tx.Price.Valid:
		tx.Type = coinsphere.TxBuy
	case incoming:
		tx.Type = coinsphere.TxTransferIn
	case tx.Price.Valid:
		tx.Type = coinsphere.TxSell
	default:
		tx.Type = coinsphere.TxTransferOut
	}
	return tx, nil
}

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	txFlags
	name     string
	source   string
	sourceID string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add tokens to the portfolio" }
func (*addCmd) Usage() string {
	return `coinsphere add -s <symbol> -a <amount> [-p <price>] [-fee <fee>] [-n <name>] [-notes <text>] [-source <source>] [-source-id <id>]

  Adds tokens to a holding and records the transaction. With -p it is a buy,
  the fee is part of its cost. Without -p it is a transfer in and the
  purchase price is unknown.
  When the holding already exists, the average buy price becomes the average
  of both prices weighted by their amounts.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.StringVar(&c.price, "p", "", "Buy price per token in the portfolio currency")
	f.StringVar(&c.name, "n", "", "Token name")
	f.StringVar(&c.source, "source", "manual", "Where the tokens come from, e.g. an exchange name")
	f.StringVar(&c.sourceID, "source-id", "", "Identifier in the source")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %v\n", err)
		return subcommands.ExitUsageError
	}
	tx.Source, tx.SourceID = c.source, c.sourceID

	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	h, err := p.Record(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if h.Name == "" {
		h.Name = c.name
	}
	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(describe(p, h))
	return subcommands.ExitSuccess
}

// describe returns a one line summary of a holding.
func describe(p *coinsphere.Portfolio, h *coinsphere.Holding) string {
	if h.Amount.IsZero() {
		return fmt.Sprintf("%s: sold out", h.Symbol)
	}
	avg := "unknown"
	if h.AverageBuyPrice.Valid {
		avg = dmath.ToFixed(h.AverageBuyPrice.Decimal, dmath.CurrencyPlaces) + " " + p.Currency
	}
	return fmt.Sprintf("%s: %s held, average buy price %s", h.Symbol, h.Amount, avg)
}
