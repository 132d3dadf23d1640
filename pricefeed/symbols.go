package pricefeed

import (
	"maps"
	"strings"
)

// SymbolMap maps token symbols to CoinGecko coin ids.
type SymbolMap map[string]string

var defaultSymbols = SymbolMap{
	"ETH":  "ethereum",
	"WETH": "weth",
	"BTC":  "bitcoin",
	"WBTC": "wrapped-bitcoin",

	"USDC": "usd-coin",
	"USDT": "tether",
	"DAI":  "dai",
	"BUSD": "binance-usd",
	"FRAX": "frax",
	"LUSD": "liquity-usd",
	"MIM":  "magic-internet-money",

	"UNI":   "uniswap",
	"AAVE":  "aave",
	"COMP":  "compound-governance-token",
	"CRV":   "curve-dao-token",
	"LDO":   "lido-dao",
	"RPL":   "rocket-pool",
	"YFI":   "yearn-finance",
	"CVX":   "convex-finance",
	"BAL":   "balancer",
	"SUSHI": "sushi",

	"BNB":   "binancecoin",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"SOL":   "solana",
	"FTM":   "fantom",
	"ARB":   "arbitrum",
	"OP":    "optimism",

	"LINK":  "chainlink",
	"MKR":   "maker",
	"SNX":   "havven",
	"GRT":   "the-graph",
	"1INCH": "1inch",
	"ENS":   "ethereum-name-service",
	"GMX":   "gmx",

	"ADA":  "cardano",
	"DOGE": "dogecoin",
	"XRP":  "ripple",
	"DOT":  "polkadot",
}

// stablecoins are pegged to one US dollar.
var stablecoins = map[string]bool{
	"USDC": true, "USDT": true, "DAI": true, "BUSD": true, "FRAX": true,
	"LUSD": true, "MIM": true, "TUSD": true, "USDP": true, "GUSD": true,
}

// DefaultSymbols returns a copy of the built-in symbol map.
func DefaultSymbols() SymbolMap {
	return maps.Clone(defaultSymbols)
}

// ID returns the CoinGecko id of symbol, case insensitive.
func (m SymbolMap) ID(symbol string) (string, bool) {
	id, ok := m[strings.ToUpper(symbol)]
	return id, ok
}

// IsStablecoin reports whether symbol is a US dollar stablecoin.
func IsStablecoin(symbol string) bool {
	return stablecoins[strings.ToUpper(symbol)]
}
