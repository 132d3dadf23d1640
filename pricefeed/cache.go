package pricefeed

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTTL is how long a fetched price is reused.
const DefaultTTL = 5 * time.Minute

// Cache stores prices for a limited time.
type Cache interface {
	// Get returns the price stored under key. ok is false on a miss.
	Get(ctx context.Context, key string) (price decimal.Decimal, ok bool, err error)
	// Set stores price under key for ttl.
	Set(ctx context.Context, key string, price decimal.Decimal, ttl time.Duration) error
}

// Key returns the cache key of the price of symbol in currency.
func Key(symbol, currency string) string {
	return "price:" + strings.ToUpper(symbol) + ":" + strings.ToUpper(currency)
}

type memoryEntry struct {
	price   decimal.Decimal
	expires time.Time
}

// MemoryCache is an in-process Cache, safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return decimal.Zero, false, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return decimal.Zero, false, nil
	}
	return e.price, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, price decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{price: price, expires: c.now().Add(ttl)}
	return nil
}
