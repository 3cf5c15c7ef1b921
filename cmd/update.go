package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chiwei/networth"
	"github.com/chiwei/networth/yahoo"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh market prices and exchange rates from Yahoo Finance"
}
func (*updateCmd) Usage() string {
	return `nwt update

  Fetches the current quote for every active symbol and the exchange rates
  for every foreign currency in the ledger, and prints what was fetched.
  Responses are cached, so an immediately following report reuses them.
`
}
func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	prices := networth.NewPriceTable()
	rates := networth.NewRateTable(networth.DefaultPivot)
	changes := yahoo.Update(prices, rates, ledger.Holdings(), ledger.Reference(), time.Now())
	if len(changes) == 0 {
		fmt.Println("Nothing to update.")
		return subcommands.ExitSuccess
	}
	for _, ch := range changes {
		fmt.Printf("%s: %s\n", ch.Key, ch.New)
	}
	return subcommands.ExitSuccess
}
