package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chiwei/networth"
	"github.com/google/subcommands"
)

type initCmd struct {
	currency string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create an empty ledger" }
func (*initCmd) Usage() string {
	return `nwt init -c <currency>

  Creates an empty ledger in the working directory. The currency becomes the
  reference currency every holding is valued in, and cannot be changed later.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "TWD", "Reference currency (ISO 4217 code)")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*holdingsFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %q already exists\n", *holdingsFile)
		return subcommands.ExitFailure
	}

	ledger, err := networth.NewLedger(c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing ledger:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created empty ledger in %s, reference currency %s\n", *holdingsFile, c.currency)
	return subcommands.ExitSuccess
}
