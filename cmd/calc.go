package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/coinsphere/coinsphere/dmath"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type calcCmd struct {
	places int
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "exact decimal arithmetic" }
func (*calcCmd) Usage() string {
	return `coinsphere calc [-r <places>] <op> <operand>...

  Computes with exact decimal arithmetic, division keeps 28 significant digits.

  Operations:
    add a b             a + b
    sub a b             a - b
    mul a b             a * b
    div a b             a / b, fails when b is zero
    pct part whole      part / whole * 100, zero when whole is zero
    wavg p1 w1 p2 w2    weighted average of two prices
    round a places      a rounded half away from zero
    sum a...            sum of all operands
    max a b, min a b    greater or lesser operand
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.places, "r", -1, "round the result to this many decimal places")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing operation")
		return subcommands.ExitUsageError
	}
	res, err := calculate(f.Arg(0), f.Args()[1:])
	if errors.Is(err, errUsage) || errors.Is(err, dmath.ErrInvalidNumericFormat) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.places >= 0 {
		fmt.Println(dmath.ToFixed(res, int32(c.places)))
		return subcommands.ExitSuccess
	}
	fmt.Println(res)
	return subcommands.ExitSuccess
}

var errUsage = errors.New("usage")

// calculate applies op to the decimal string operands.
func calculate(op string, args []string) (decimal.Decimal, error) {
	arity := map[string]int{
		"add": 2, "sub": 2, "mul": 2, "div": 2, "pct": 2,
		"max": 2, "min": 2, "round": 2, "wavg": 4, "sum": -1,
	}
	n, ok := arity[op]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown operation %q", errUsage, op)
	}
	if n >= 0 && len(args) != n {
		return decimal.Zero, fmt.Errorf("%w: %s takes %d operands, got %d", errUsage, op, n, len(args))
	}

	switch op {
	case "add":
		return dmath.Add(args[0], args[1])
	case "sub":
		return dmath.Subtract(args[0], args[1])
	case "mul":
		return dmath.Multiply(args[0], args[1])
	case "div":
		return dmath.Divide(args[0], args[1])
	case "pct":
		return dmath.Percentage(args[0], args[1])
	case "max":
		return dmath.Max(args[0], args[1])
	case "min":
		return dmath.Min(args[0], args[1])
	case "wavg":
		return dmath.WeightedAverage(args[0], args[1], args[2], args[3])
	case "sum":
		return dmath.Sum(args)
	case "round":
		places, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: invalid places %q", errUsage, args[1])
		}
		return dmath.RoundTo(args[0], int32(places))
	}
	panic("unreachable")
}
