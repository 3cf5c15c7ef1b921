package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chiwei/networth"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type settleCmd struct {
	date    string
	pending string
	target  string
	amount  float64
	rate    float64
	note    string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "settle a pending item into a cash holding" }
func (*settleCmd) Usage() string {
	return `nwt settle -p <pending> -o <target> -a <amount> [-r <rate>] [-d <date>] [-m <note>]

  Settles a pending receivable: the pending item is emptied and the received
  amount is booked on the target cash holding. The two legs are linked so the
  settlement can be traced either way. Amount is in the target's currency.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", networth.Today().String(), "Settlement date (YYYY-MM-DD)")
	f.StringVar(&c.pending, "p", "", "Pending holding to settle")
	f.StringVar(&c.target, "o", "", "Cash-like holding receiving the amount")
	f.Float64Var(&c.amount, "a", 0, "Amount received, in the target's currency")
	f.Float64Var(&c.rate, "r", 0, "Target-native to reference exchange rate at settlement time")
	f.StringVar(&c.note, "m", "", "An optional note for both legs")
}

func (c *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.pending == "" || c.target == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, st := parseDateFlag(c.date)
	if st != subcommands.ExitSuccess {
		return st
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	target, ok := ledger.Holding(c.target)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown holding %q\n", c.target)
		return subcommands.ExitFailure
	}

	received := networth.M(c.amount, target.Currency)
	if err := ledger.Settle(c.pending, c.target, received, decimal.NewFromFloat(c.rate), day, c.note); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing ledger:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Settled %q into %q for %s\n", c.pending, c.target, received)
	return subcommands.ExitSuccess
}
