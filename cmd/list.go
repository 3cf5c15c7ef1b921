package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chiwei/networth"
	"github.com/chiwei/networth/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	all bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the holdings declared in the ledger" }
func (*listCmd) Usage() string {
	return `nwt list [-a]

  Lists the declared holdings with their book state. Archived holdings are
  shown in a separate section with -a.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "a", false, "Include archived holdings")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings (%s)\n\n", ledger.Reference())
	writeHoldingRows(&b, ledger.Holdings(), networth.Active)

	if c.all {
		renderer.ConditionalBlock(&b, func(w io.Writer) bool {
			archived := filterStatus(ledger.Holdings(), networth.Archived)
			if len(archived) == 0 {
				return false
			}
			fmt.Fprintf(w, "\n## Archived\n\n")
			writeHoldingRows(w, archived, networth.Archived)
			return true
		})
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

func filterStatus(holdings []networth.Holding, status networth.Status) []networth.Holding {
	var out []networth.Holding
	for _, h := range holdings {
		if h.Status == status {
			out = append(out, h)
		}
	}
	return out
}

func writeHoldingRows(w io.Writer, holdings []networth.Holding, status networth.Status) {
	fmt.Fprintln(w, "| ID | Name | Kind | Currency | Symbol | Quantity | Book Value |")
	fmt.Fprintln(w, "|---|---|---|---|---|---:|---:|")
	for _, h := range holdings {
		if h.Status != status {
			continue
		}
		id := h.ID
		if !h.InNetWorth {
			id += " (excluded)"
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
			id, h.Name, h.Kind, h.Currency, h.Symbol, h.Quantity, h.BookValue)
	}
}
