package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/coinsphere/coinsphere"
	"github.com/shopspring/decimal"
)

// Source returns current prices of CoinGecko coin ids. *Client is a Source.
type Source interface {
	SimplePrice(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error)
}

// Updater resolves token symbols to prices through a Cache and a Source.
type Updater struct {
	Source  Source
	Cache   Cache // may be nil
	Symbols SymbolMap
	TTL     time.Duration
}

// NewUpdater returns an Updater with the default symbol map and TTL.
func NewUpdater(source Source, cache Cache) *Updater {
	return &Updater{
		Source:  source,
		Cache:   cache,
		Symbols: DefaultSymbols(),
		TTL:     DefaultTTL,
	}
}

var one = decimal.NewFromInt(1)

// Prices returns the prices of symbols in currency, keyed by symbol as given.
//
// Cached prices are used first, the others are fetched in a single request
// and cached. Stablecoins are worth exactly one US dollar. Symbols without a
// price are missing from the result and reported together as errors wrapping
// ErrPriceNotFound, the result is still valid then. Any other error means
// nothing could be fetched.
func (u *Updater) Prices(ctx context.Context, symbols []string, currency string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	var missing []error
	toFetch := make(map[string][]string) // coin id -> symbols
	var ids []string

	for _, symbol := range symbols {
		if strings.EqualFold(currency, "USD") && IsStablecoin(symbol) {
			prices[symbol] = one
			continue
		}
		if price, ok := u.cached(ctx, symbol, currency); ok {
			prices[symbol] = price
			continue
		}
		id, ok := u.Symbols.ID(symbol)
		if !ok {
			missing = append(missing, fmt.Errorf("%w: no CoinGecko id for %s", ErrPriceNotFound, symbol))
			continue
		}
		if _, seen := toFetch[id]; !seen {
			ids = append(ids, id)
		}
		toFetch[id] = append(toFetch[id], symbol)
	}

	if len(ids) > 0 {
		fetched, err := u.Source.SimplePrice(ctx, ids, currency)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			price, ok := fetched[id]
			for _, symbol := range toFetch[id] {
				if !ok || !price.IsPositive() {
					missing = append(missing, fmt.Errorf("%w: %s in %s", ErrPriceNotFound, symbol, currency))
					continue
				}
				prices[symbol] = price
				u.store(ctx, symbol, currency, price)
			}
		}
	}
	return prices, errors.Join(missing...)
}

// Refresh updates the current price of every holding of p and returns the
// number of holdings updated. Holdings without a price keep their previous
// one, they are logged.
func (u *Updater) Refresh(ctx context.Context, p *coinsphere.Portfolio) (int, error) {
	prices, err := u.Prices(ctx, p.Symbols(), p.Currency)
	if err != nil && !errors.Is(err, ErrPriceNotFound) {
		return 0, err
	}
	if err != nil {
		log.Printf("warning: %v", strings.ReplaceAll(err.Error(), "\n", "; "))
	}
	return p.SetPrices(prices), nil
}

// cached returns the cached price, cache errors are logged and count as a miss.
func (u *Updater) cached(ctx context.Context, symbol, currency string) (decimal.Decimal, bool) {
	if u.Cache == nil {
		return decimal.Zero, false
	}
	price, ok, err := u.Cache.Get(ctx, Key(symbol, currency))
	if err != nil {
		log.Printf("price cache read error for %s (ignored): %v", symbol, err)
		return decimal.Zero, false
	}
	return price, ok
}

func (u *Updater) store(ctx context.Context, symbol, currency string, price decimal.Decimal) {
	if u.Cache == nil {
		return
	}
	ttl := u.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := u.Cache.Set(ctx, Key(symbol, currency), price, ttl); err != nil {
		log.Printf("price cache write error for %s (ignored): %v", symbol, err)
	}
}
