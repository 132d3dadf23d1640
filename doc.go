// Package coinsphere values crypto portfolios with exact decimal arithmetic.
//
// A Portfolio is a named set of holdings, one per token symbol, each with an
// amount, an optional average buy price (the cost basis per token) and the
// latest known market price. The package provides:
//   - Holding management: adding to a holding re-computes its average buy
//     price as a quantity-weighted average; selling reduces the amount and
//     keeps the average.
//   - Valuation: total value, total cost, profit and loss, and the allocation
//     of value per token.
//   - Persistence: reading and writing portfolio files in JSON or YAML, with
//     every amount and price kept as an exact decimal string.
//
// All money math goes through the dmath package, floats only appear at the
// display boundary (Percent).
//
// This package serves as the foundational logic for the `coinsphere`
// command-line tool.
package coinsphere
