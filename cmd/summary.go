package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chiwei/networth"
	"github.com/chiwei/networth/renderer"
	"github.com/chiwei/networth/yahoo"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the current net worth summary" }
func (*summaryCmd) Usage() string {
	return `nwt summary [-offline]

  Displays the net worth summary: every holding's current value in the
  reference currency, the pending flows, and the profit and loss. Market
  prices and exchange rates are refreshed first unless -offline is set.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not refresh quotes, value on book data only")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	prices := networth.NewPriceTable()
	rates := networth.NewRateTable(networth.DefaultPivot)
	if !c.offline {
		yahoo.Update(prices, rates, ledger.Holdings(), ledger.Reference(), time.Now())
	}

	views := networth.ComputeViews(ledger.Holdings(), prices, rates, ledger.Reference(), ledger.History())
	totals := networth.Aggregate(views, ledger.Reference())

	s := renderer.NewSummary(networth.Today(), ledger.Reference(), views, totals)
	printMarkdown(renderer.RenderSummary(s))
	return subcommands.ExitSuccess
}

// holdingCmd shows the full valuation detail of one holding.
type holdingCmd struct {
	offline bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the valuation detail of one holding" }
func (*holdingCmd) Usage() string {
	return `nwt holding [-offline] <id>

  Displays one holding's valuation: native and reference value, the quick
  profit and loss, the lifetime track when the cost history is trusted, and
  the transaction history.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not refresh quotes, value on book data only")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	h, ok := ledger.Holding(f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown holding %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}

	prices := networth.NewPriceTable()
	rates := networth.NewRateTable(networth.DefaultPivot)
	if !c.offline {
		yahoo.Update(prices, rates, []networth.Holding{h}, ledger.Reference(), time.Now())
	}

	txs := ledger.Transactions(h.ID)
	view := networth.ComputeView(h, prices.Price(h.Symbol), rates.Resolve(h.Currency, ledger.Reference()), ledger.Reference(), txs)
	printMarkdown(renderer.RenderHoldingDetail(renderer.NewHoldingDetail(view, txs)))
	return subcommands.ExitSuccess
}
