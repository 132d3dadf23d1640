package pricefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// RedisCache is a Cache shared through a Redis server. Prices are stored as
// exact decimal strings.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at addr.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cannot connect to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	price, err := dmath.Parse(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("redis key %s: %w", key, err)
	}
	return price, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, price decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, key, price.String(), ttl).Err()
}

// Close closes the connection to the server.
func (c *RedisCache) Close() error { return c.client.Close() }
