package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the ledger files in canonical form"
}
func (*fmtCmd) Usage() string {
	return `nwt fmt

  Reads both ledger files and writes them back in canonical JSONL form, with
  transactions sorted by date and one record per line. Records that no longer
  parse are reported instead of silently dropped.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing ledger:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Formatted %s and %s\n", *holdingsFile, *transactionsFile)
	return subcommands.ExitSuccess
}
