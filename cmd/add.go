package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chiwei/networth"
	"github.com/google/subcommands"
)

type addCmd struct {
	name     string
	kind     string
	currency string
	symbol   string
	exclude  bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "declare a new holding in the ledger" }
func (*addCmd) Usage() string {
	return `nwt add -k <kind> -c <currency> [-n <name>] [-s <symbol>] [-x] <id>

  Declares a holding. Kind is one of: cash, stock, crypto, metal, liability,
  credit-card, pending. Price-exposed kinds (stock, crypto, metal) require a
  market symbol; cash-like kinds must not have one.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Display name")
	f.StringVar(&c.kind, "k", "cash", "Holding kind")
	f.StringVar(&c.currency, "c", "", "Native currency of the holding")
	f.StringVar(&c.symbol, "s", "", "Market ticker, price-exposed kinds only")
	f.BoolVar(&c.exclude, "x", false, "Exclude this holding from the net worth total")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	kind, err := networth.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	h := networth.Holding{
		ID:         f.Arg(0),
		Name:       c.name,
		Kind:       kind,
		Currency:   c.currency,
		Symbol:     c.symbol,
		InNetWorth: !c.exclude,
	}
	if err := ledger.AddHolding(h); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing ledger:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s holding %q\n", kind, h.ID)
	return subcommands.ExitSuccess
}

type archiveCmd struct{}

func (*archiveCmd) Name() string     { return "archive" }
func (*archiveCmd) Synopsis() string { return "archive a closed holding" }
func (*archiveCmd) Usage() string {
	return `nwt archive <id>

  Archives a holding. Its history is kept but it no longer appears in
  valuations or summaries.
`
}

func (*archiveCmd) SetFlags(f *flag.FlagSet) {}

func (c *archiveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Archive(f.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing ledger:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Archived holding %q\n", f.Arg(0))
	return subcommands.ExitSuccess
}
