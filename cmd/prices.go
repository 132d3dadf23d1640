package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/coinsphere/coinsphere/pricefeed"
	"github.com/google/subcommands"
)

// feedFlags are the flags shared by the commands that fetch prices.
type feedFlags struct {
	redisAddr string
	cacheDir  string
}

func (c *feedFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.redisAddr, "redis", os.Getenv(EnvRedisAddr), "Redis address of a shared price cache, defaults to $"+EnvRedisAddr)
	f.StringVar(&c.cacheDir, "cache-dir", "", "Directory of the daily HTTP cache, disabled if empty")
}

// updater returns a price updater and a function to release it.
func (c *feedFlags) updater(ctx context.Context) (*pricefeed.Updater, func(), error) {
	client := pricefeed.NewClient(os.Getenv(EnvAPIKey))
	if c.cacheDir != "" {
		client.HTTPClient = pricefeed.NewDailyClient(c.cacheDir)
	}

	if c.redisAddr == "" {
		return pricefeed.NewUpdater(client, pricefeed.NewMemoryCache()), func() {}, nil
	}
	cache, err := pricefeed.NewRedisCache(ctx, c.redisAddr, os.Getenv(EnvRedisPassword), 0)
	if err != nil {
		return nil, nil, err
	}
	return pricefeed.NewUpdater(client, cache), func() { cache.Close() }, nil
}

type pricesCmd struct {
	feedFlags
	currency string
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "update current prices from CoinGecko" }
func (*pricesCmd) Usage() string {
	return `coinsphere prices [-redis <addr>] [-cache-dir <dir>] [-c <currency>] [<symbol>...]

  Without arguments, updates the current price of every holding and saves the
  portfolio. With symbols, prints their current price and leaves the
  portfolio untouched.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	c.feedFlags.SetFlags(f)
	f.StringVar(&c.currency, "c", "", "Quote currency for symbols, defaults to the portfolio currency")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	u, release, err := c.updater(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to the price cache: %v\n", err)
		return subcommands.ExitFailure
	}
	defer release()

	if symbols := f.Args(); len(symbols) > 0 {
		currency := c.currency
		if currency == "" {
			currency = p.Currency
		}
		prices, err := u.Prices(ctx, symbols, currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		status := subcommands.ExitSuccess
		for _, symbol := range symbols {
			price, ok := prices[symbol]
			if !ok {
				status = subcommands.ExitFailure
				continue
			}
			fmt.Printf("%s %s %s\n", symbol, price, currency)
		}
		return status
	}

	n, err := u.Refresh(ctx, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating prices: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %d of %d prices\n", n, len(p.Holdings))
	return subcommands.ExitSuccess
}
