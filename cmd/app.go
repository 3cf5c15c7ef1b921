// Package cmd implements the CLI application to manage a personal
// net-worth ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/chiwei/networth"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to expose them, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&addCmd{}, "holdings")
	c.Register(&archiveCmd{}, "holdings")
	c.Register(&listCmd{}, "holdings")
	c.Register(&holdingCmd{}, "holdings")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&settleCmd{}, "transactions")
	c.Register(&removeCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&updateCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var holdingsFile = flag.String("holdings-file", "holdings.jsonl", "Path to the holdings file (JSONL format)")
var transactionsFile = flag.String("transactions-file", "transactions.jsonl", "Path to the transactions file (JSONL format)")

// decodeLedger loads the ledger from the app files. A missing transactions
// file is an empty log, a missing holdings file is an error since it carries
// the reference currency.
func decodeLedger() (*networth.Ledger, error) {
	hf, err := os.Open(*holdingsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no ledger at %q, run 'nwt init' first", *holdingsFile)
	}
	if err != nil {
		return nil, err
	}
	defer hf.Close()

	var txs io.Reader = strings.NewReader("")
	tf, err := os.Open(*transactionsFile)
	if err == nil {
		defer tf.Close()
		txs = tf
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return networth.DecodeLedger(hf, txs)
}

// saveLedger rewrites both app files. Each file is written to a temporary
// sibling first so a failed encode never truncates the previous state.
func saveLedger(l *networth.Ledger) error {
	if err := writeFile(*holdingsFile, func(w io.Writer) error {
		return networth.EncodeHoldings(w, l)
	}); err != nil {
		return err
	}
	return writeFile(*transactionsFile, func(w io.Writer) error {
		return networth.EncodeTransactions(w, l)
	})
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
