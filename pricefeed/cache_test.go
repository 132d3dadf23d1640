package pricefeed

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestKey(t *testing.T) {
	if got := Key("btc", "usd"); got != "price:BTC:USD" {
		t.Errorf("Key() = %s, want price:BTC:USD", got)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	if _, ok, _ := c.Get(ctx, "price:BTC:USD"); ok {
		t.Errorf("Get() on empty cache hit")
	}
	want := decimal.RequireFromString("65000.123456789012345678")
	if err := c.Set(ctx, "price:BTC:USD", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "price:BTC:USD")
	if err != nil || !ok || !got.Equal(want) {
		t.Errorf("Get() = %v, %v, %v, want %v", got, ok, err, want)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, "price:BTC:USD"); ok {
		t.Errorf("Get() hit an expired entry")
	}
}

// TestRedisCache needs a Redis server, its address is read from REDIS_ADDR.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	key := Key("TEST"+time.Now().Format("150405.000"), "USD")
	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Errorf("Get() = %v, %v, want a miss", ok, err)
	}
	want := decimal.RequireFromString("0.000000012345678901234567")
	if err := c.Set(ctx, key, want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok || !got.Equal(want) {
		t.Errorf("Get() = %v, %v, %v, want %v", got, ok, err, want)
	}
}
