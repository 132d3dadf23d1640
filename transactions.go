package coinsphere

import (
	"errors"
	"fmt"
	"time"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

// TxType is the kind of a transaction.
type TxType string

// Transaction types.
const (
	TxBuy         TxType = "buy"
	TxSell        TxType = "sell"
	TxTransferIn  TxType = "transfer_in"
	TxTransferOut TxType = "transfer_out"
)

var (
	ErrInvalidTxType = errors.New("invalid transaction type")
	ErrInvalidFee    = errors.New("fee must not be negative")
)

// Incoming reports whether the transaction adds tokens to the portfolio.
func (t TxType) Incoming() bool { return t == TxBuy || t == TxTransferIn }

func (t TxType) valid() bool {
	switch t {
	case TxBuy, TxSell, TxTransferIn, TxTransferOut:
		return true
	}
	return false
}

// Transaction records a movement of tokens in or out of the portfolio.
type Transaction struct {
	Type   TxType
	Symbol string
	Amount decimal.Decimal
	// Price is the price of one token in the portfolio currency, unknown for
	// most transfers.
	Price     decimal.NullDecimal
	Fee       decimal.Decimal // in the portfolio currency
	Timestamp time.Time
	Source    string
	SourceID  string
	Notes     string
}

// Validate checks the transaction fields and normalizes its symbol.
func (tx *Transaction) Validate() error {
	if !tx.Type.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTxType, tx.Type)
	}
	tx.Symbol = normalizeSymbol(tx.Symbol)
	if tx.Symbol == "" {
		return ErrInvalidSymbol
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, tx.Amount)
	}
	if tx.Price.Valid && tx.Price.Decimal.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidPrice, tx.Price.Decimal)
	}
	if tx.Fee.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidFee, tx.Fee)
	}
	return nil
}

// UnitCost returns the cost of one token including its share of the fee.
// It is unknown when the price is.
func (tx Transaction) UnitCost() (decimal.NullDecimal, error) {
	if !tx.Price.Valid {
		return decimal.NullDecimal{}, nil
	}
	if tx.Fee.IsZero() {
		return tx.Price, nil
	}
	share, err := dmath.Divide(tx.Fee, tx.Amount)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	cost, err := dmath.Add(tx.Price, share)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(cost), nil
}

// Total returns what the transaction cost or yielded in currency: amount
// times price, plus the fee for incoming tokens, minus it for outgoing ones.
// ok is false when the price is unknown.
func (tx Transaction) Total(currency string) (total Money, ok bool) {
	if !tx.Price.Valid {
		return Money{}, false
	}
	gross := Money{value: tx.Price.Decimal, cur: currency}.Mul(Quantity{value: tx.Amount})
	fee := Money{value: tx.Fee, cur: currency}
	if tx.Type.Incoming() {
		return gross.Add(fee), true
	}
	return gross.Sub(fee), true
}

// Record applies the transaction to the holdings and appends it to the
// portfolio log. Incoming tokens are merged at their unit cost, fee
// included; outgoing tokens are sold and keep the average buy price.
func (p *Portfolio) Record(tx Transaction) (*Holding, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	var h *Holding
	if tx.Type.Incoming() {
		cost, err := tx.UnitCost()
		if err != nil {
			return nil, fmt.Errorf("cannot compute unit cost of %s: %w", tx.Symbol, err)
		}
		h, err = p.AddHolding(HoldingInput{
			Symbol:          tx.Symbol,
			Amount:          tx.Amount,
			AverageBuyPrice: cost,
			Source:          tx.Source,
			SourceID:        tx.SourceID,
		})
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		h, err = p.Sell(tx.Symbol, tx.Amount)
		if err != nil {
			return nil, err
		}
	}
	p.Transactions = append(p.Transactions, tx)
	return h, nil
}

// Replay builds a portfolio by recording every transaction in order.
func Replay(name, currency string, txs []Transaction) (*Portfolio, error) {
	p, err := NewPortfolio(name, currency)
	if err != nil {
		return nil, err
	}
	for i, tx := range txs {
		if _, err := p.Record(tx); err != nil {
			return nil, fmt.Errorf("transaction #%d (%s %s): %w", i, tx.Type, tx.Symbol, err)
		}
	}
	return p, nil
}

// TransactionsOf returns the transactions of symbol, or all of them when
// symbol is empty.
func (p *Portfolio) TransactionsOf(symbol string) []Transaction {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return p.Transactions
	}
	var txs []Transaction
	for _, tx := range p.Transactions {
		if tx.Symbol == symbol {
			txs = append(txs, tx)
		}
	}
	return txs
}

// TotalFees returns the sum of all transaction fees.
func (p *Portfolio) TotalFees() Money {
	total := Money{cur: p.Currency}
	for _, tx := range p.Transactions {
		total = total.Add(Money{value: tx.Fee, cur: p.Currency})
	}
	return total
}

func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", tx.Type)
	w.Append("symbol", tx.Symbol)
	w.Append("amount", tx.Amount)
	if tx.Price.Valid {
		w.Append("price", tx.Price.Decimal)
	}
	if !tx.Fee.IsZero() {
		w.Append("fee", tx.Fee)
	}
	if !tx.Timestamp.IsZero() {
		w.Append("timestamp", tx.Timestamp.UTC().Format(time.RFC3339))
	}
	w.Optional("source", tx.Source)
	w.Optional("sourceId", tx.SourceID)
	w.Optional("notes", tx.Notes)
	return w.MarshalJSON()
}
