// Package renderer renders portfolio reports as markdown.
package renderer

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// title returns the report heading, with the portfolio name if any.
func title(what, name string) string {
	if name == "" {
		return what
	}
	return what + ": " + name
}
