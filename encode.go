package coinsphere

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a portfolio file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath returns the format matching the file extension, JSON unless
// the extension is .yaml or .yml.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// portfolioRecord is the persisted form of a Portfolio.
//
// Numbers are read as text so that no value ever goes through a float.
type portfolioRecord struct {
	ID       string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string          `json:"name" yaml:"name"`
	Currency string          `json:"currency" yaml:"currency"`
	Holdings []holdingRecord `json:"holdings" yaml:"holdings"`

	Transactions []transactionRecord `json:"transactions,omitempty" yaml:"transactions,omitempty"`
}

type holdingRecord struct {
	Symbol          string      `json:"symbol" yaml:"symbol"`
	Name            string      `json:"name,omitempty" yaml:"name,omitempty"`
	Amount          json.Number `json:"amount" yaml:"amount"`
	AverageBuyPrice json.Number `json:"averageBuyPrice,omitempty" yaml:"averageBuyPrice,omitempty"`
	CurrentPrice    json.Number `json:"currentPrice,omitempty" yaml:"currentPrice,omitempty"`
	Source          string      `json:"source,omitempty" yaml:"source,omitempty"`
	SourceID        string      `json:"sourceId,omitempty" yaml:"sourceId,omitempty"`
}

type transactionRecord struct {
	Type      TxType      `json:"type" yaml:"type"`
	Symbol    string      `json:"symbol" yaml:"symbol"`
	Amount    json.Number `json:"amount" yaml:"amount"`
	Price     json.Number `json:"price,omitempty" yaml:"price,omitempty"`
	Fee       json.Number `json:"fee,omitempty" yaml:"fee,omitempty"`
	Timestamp string      `json:"timestamp,omitempty" yaml:"timestamp,omitempty"` // RFC 3339
	Source    string      `json:"source,omitempty" yaml:"source,omitempty"`
	SourceID  string      `json:"sourceId,omitempty" yaml:"sourceId,omitempty"`
	Notes     string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// DecodePortfolio reads a portfolio.
//
// Amounts and prices may be written as numbers or strings. A missing average
// buy price means unknown, a missing current price means zero.
func DecodePortfolio(r io.Reader, format Format) (*Portfolio, error) {
	var rec portfolioRecord
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err = dec.Decode(&rec)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&rec)
		if err == io.EOF {
			err = nil // empty document
		}
	default:
		return nil, fmt.Errorf("parse error: unsupported format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error: not a correct %v portfolio: %w", format, err)
	}

	p, err := NewPortfolio(rec.Name, rec.Currency)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	p.ID = rec.ID

	for i, hr := range rec.Holdings {
		h, err := hr.holding()
		if err != nil {
			return nil, fmt.Errorf("parse error: holding #%d (%s): %w", i, hr.Symbol, err)
		}
		if p.Holding(h.Symbol) != nil {
			return nil, fmt.Errorf("parse error: holding #%d: duplicate symbol %q", i, h.Symbol)
		}
		p.Holdings = append(p.Holdings, h)
	}

	for i, tr := range rec.Transactions {
		tx, err := tr.transaction()
		if err != nil {
			return nil, fmt.Errorf("parse error: transaction #%d (%s %s): %w", i, tr.Type, tr.Symbol, err)
		}
		p.Transactions = append(p.Transactions, tx)
	}
	return p, nil
}

func (hr holdingRecord) holding() (*Holding, error) {
	h := &Holding{
		Symbol:   normalizeSymbol(hr.Symbol),
		Name:     hr.Name,
		Source:   hr.Source,
		SourceID: hr.SourceID,
	}
	if h.Symbol == "" {
		return nil, ErrInvalidSymbol
	}

	amount, err := dmath.ToDecimal(hr.Amount)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", "amount", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("property %q: %w: got %s", "amount", ErrInvalidAmount, amount)
	}
	h.Amount = Quantity{value: amount}

	if hr.AverageBuyPrice != "" {
		avg, err := dmath.ToDecimal(hr.AverageBuyPrice)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", "averageBuyPrice", err)
		}
		h.AverageBuyPrice = decimal.NewNullDecimal(avg)
	}

	if hr.CurrentPrice != "" {
		h.CurrentPrice, err = dmath.ToDecimal(hr.CurrentPrice)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", "currentPrice", err)
		}
	}
	return h, nil
}

func (tr transactionRecord) transaction() (Transaction, error) {
	tx := Transaction{
		Type:     tr.Type,
		Symbol:   tr.Symbol,
		Source:   tr.Source,
		SourceID: tr.SourceID,
		Notes:    tr.Notes,
	}
	var err error
	if tx.Amount, err = dmath.ToDecimal(tr.Amount); err != nil {
		return Transaction{}, fmt.Errorf("property %q: %w", "amount", err)
	}
	if tr.Price != "" {
		price, err := dmath.ToDecimal(tr.Price)
		if err != nil {
			return Transaction{}, fmt.Errorf("property %q: %w", "price", err)
		}
		tx.Price = decimal.NewNullDecimal(price)
	}
	if tr.Fee != "" {
		if tx.Fee, err = dmath.ToDecimal(tr.Fee); err != nil {
			return Transaction{}, fmt.Errorf("property %q: %w", "fee", err)
		}
	}
	if tr.Timestamp != "" {
		if tx.Timestamp, err = time.Parse(time.RFC3339, tr.Timestamp); err != nil {
			return Transaction{}, fmt.Errorf("property %q: %w", "timestamp", err)
		}
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func newTransactionRecord(tx Transaction) transactionRecord {
	tr := transactionRecord{
		Type:     tx.Type,
		Symbol:   tx.Symbol,
		Amount:   json.Number(tx.Amount.String()),
		Source:   tx.Source,
		SourceID: tx.SourceID,
		Notes:    tx.Notes,
	}
	if tx.Price.Valid {
		tr.Price = json.Number(tx.Price.Decimal.String())
	}
	if !tx.Fee.IsZero() {
		tr.Fee = json.Number(tx.Fee.String())
	}
	if !tx.Timestamp.IsZero() {
		tr.Timestamp = tx.Timestamp.UTC().Format(time.RFC3339)
	}
	return tr
}

// EncodePortfolio writes a portfolio, every number as its exact decimal
// representation.
func EncodePortfolio(w io.Writer, p *Portfolio, format Format) error {
	rec := portfolioRecord{
		ID:       p.ID,
		Name:     p.Name,
		Currency: p.Currency,
		Holdings: make([]holdingRecord, 0, len(p.Holdings)),
	}
	for _, h := range p.Holdings {
		hr := holdingRecord{
			Symbol:       h.Symbol,
			Name:         h.Name,
			Amount:       json.Number(h.Amount.String()),
			CurrentPrice: json.Number(h.CurrentPrice.String()),
			Source:       h.Source,
			SourceID:     h.SourceID,
		}
		if h.AverageBuyPrice.Valid {
			hr.AverageBuyPrice = json.Number(h.AverageBuyPrice.Decimal.String())
		}
		rec.Holdings = append(rec.Holdings, hr)
	}
	for _, tx := range p.Transactions {
		rec.Transactions = append(rec.Transactions, newTransactionRecord(tx))
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("persist error: cannot marshal portfolio %q: %w", p.Name, err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("persist error: cannot marshal portfolio %q: %w", p.Name, err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("persist error: unsupported format %v", format)
	}
	return nil
}

// LoadPortfolio reads the portfolio file at path, the format is chosen from
// the extension.
func LoadPortfolio(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load error: cannot open portfolio file %q: %w", path, err)
	}
	defer f.Close()
	p, err := DecodePortfolio(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load error %s: %w", path, err)
	}
	return p, nil
}

// newFileMode is the mode of a portfolio file created by SavePortfolio.
const newFileMode os.FileMode = 0o644

// SavePortfolio writes p to path, replacing the file atomically. An existing
// file keeps its permissions.
func SavePortfolio(path string, p *Portfolio) error {
	mode := newFileMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("persist error: %w", err)
	}

	if err := EncodePortfolio(tmp, p, FormatFromPath(path)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	return nil
}
