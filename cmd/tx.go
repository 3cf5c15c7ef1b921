package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chiwei/networth"
	"github.com/chiwei/networth/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	holding string
	head    int
	tail    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `nwt tx [-o <holding>] [-head <n>] [-tail <n>]

  Lists transactions, oldest first, with options for filtering and limiting
  the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.holding, "o", "", "Show only this holding's transactions")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var transactions []networth.Transaction
	if c.holding == "" {
		for _, txs := range ledger.History() {
			transactions = append(transactions, txs...)
		}
		networth.SortTransactions(transactions)
	} else {
		transactions = ledger.Transactions(c.holding)
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.RenderTransactions(transactions))
	return subcommands.ExitSuccess
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "rm" }
func (*removeCmd) Synopsis() string { return "delete a mistaken transaction" }
func (*removeCmd) Usage() string {
	return `nwt rm <transaction-id>

  Deletes a transaction. The owning holding's book state is rebuilt from the
  surviving history.
`
}

func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := ledger.RemoveTransaction(f.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing ledger:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed transaction %q\n", f.Arg(0))
	return subcommands.ExitSuccess
}
