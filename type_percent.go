package coinsphere

import (
	"fmt"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/shopspring/decimal"
)

// Percent is a display percentage, 12.5 for 12.5%.
type Percent float64

// percent converts an exact percentage for display, rounded to 2 places.
func percent(d decimal.Decimal) Percent {
	return Percent(dmath.ToNumber(d, 2))
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
