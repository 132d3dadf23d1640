// Package pricefeed fetches current token prices from CoinGecko and caches
// them.
package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public CoinGecko API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// DefaultRequestDelay keeps the client under the free tier limit of about 60
// requests per minute.
const DefaultRequestDelay = 1100 * time.Millisecond

const apiKeyHeader = "x-cg-demo-api-key"

var (
	// ErrPriceNotFound is returned for a symbol without a known price.
	ErrPriceNotFound = errors.New("price not found")
	// ErrRateLimited is returned when CoinGecko answers 429.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Client is a CoinGecko API client. Its zero value is not usable, use
// NewClient.
type Client struct {
	BaseURL      string
	APIKey       string // optional
	HTTPClient   *http.Client
	RequestDelay time.Duration // minimum delay between two requests

	mu   sync.Mutex
	last time.Time
}

// NewClient returns a client for the public API. apiKey may be empty.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:      DefaultBaseURL,
		APIKey:       apiKey,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		RequestDelay: DefaultRequestDelay,
	}
}

// SimplePrice returns the price of each coin id in currency, keyed by id.
// Ids unknown to CoinGecko are absent from the result.
func (c *Client) SimplePrice(ctx context.Context, ids []string, currency string) (map[string]decimal.Decimal, error) {
	if len(ids) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	cur := strings.ToLower(currency)

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", cur)
	addr := strings.TrimSuffix(c.BaseURL, "/") + "/simple/price?" + q.Encode()

	var jobj any
	if err := c.get(ctx, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch prices of %s: %w", strings.Join(ids, ","), err)
	}

	prices := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		path := fmt.Sprintf("$[%q][%q]", id, cur)
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			// unknown ids are simply missing from the response
			continue
		}
		// jsonpath may return a list of 1 answer, keep the first one
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		num, ok := jval.(json.Number)
		if !ok {
			log.Printf("coingecko: ignoring %s price %v: not a number", id, jval)
			continue
		}
		price, err := dmath.ToDecimal(num)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s price: %w", id, err)
		}
		prices[id] = price
	}
	return prices, nil
}

// get performs an HTTP GET request and decodes the JSON response into data,
// numbers as json.Number.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.APIKey)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		log.Println("coingecko: rate limit exceeded")
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(data)
}

// wait blocks until RequestDelay has elapsed since the previous request.
func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d := c.RequestDelay - time.Since(c.last); !c.last.IsZero() && d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	c.last = time.Now()
	return nil
}
