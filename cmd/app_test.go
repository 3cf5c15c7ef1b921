package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

// setupTestLedger points the app files at a temporary directory.
func setupTestLedger(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	hf := filepath.Join(tmp, "holdings.jsonl")
	tf := filepath.Join(tmp, "transactions.jsonl")
	oldH, oldT := holdingsFile, transactionsFile
	holdingsFile, transactionsFile = &hf, &tf
	t.Cleanup(func() { holdingsFile, transactionsFile = oldH, oldT })
}

// run parses args and executes the command like the commander would.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing args for %q: %v", c.Name(), err)
	}
	return c.Execute(context.Background(), f)
}

func TestRecordFlow(t *testing.T) {
	setupTestLedger(t)

	if st := run(t, &initCmd{}, "-c", "TWD"); st != subcommands.ExitSuccess {
		t.Fatalf("init = %v, want success", st)
	}
	if st := run(t, &addCmd{}, "-k", "cash", "-c", "TWD", "bank"); st != subcommands.ExitSuccess {
		t.Fatalf("add bank = %v, want success", st)
	}
	if st := run(t, &addCmd{}, "-k", "stock", "-c", "USD", "-s", "ACME", "acme"); st != subcommands.ExitSuccess {
		t.Fatalf("add acme = %v, want success", st)
	}
	if st := run(t, &depositCmd{}, "-o", "bank", "-a", "50000", "-d", "2025-01-05"); st != subcommands.ExitSuccess {
		t.Fatalf("deposit = %v, want success", st)
	}
	if st := run(t, &buyCmd{}, "-o", "acme", "-q", "10", "-a", "1500", "-r", "32", "-d", "2025-02-01"); st != subcommands.ExitSuccess {
		t.Fatalf("buy = %v, want success", st)
	}

	ledger, err := decodeLedger()
	if err != nil {
		t.Fatalf("decodeLedger() error = %v", err)
	}
	if got := ledger.Reference(); got != "TWD" {
		t.Errorf("Reference() = %q, want TWD", got)
	}
	bank, ok := ledger.Holding("bank")
	if !ok || bank.Quantity.String() != "50000" {
		t.Errorf("bank quantity = %v, want 50000", bank.Quantity)
	}
	acme, _ := ledger.Holding("acme")
	if acme.BookValue.Amount().String() != "1500" || acme.BookValue.Currency() != "USD" {
		t.Errorf("acme book value = %v, want 1500 USD", acme.BookValue)
	}
	txs := ledger.Transactions("bank")
	if len(txs) != 1 || txs[0].ID != "tx-000001" {
		t.Fatalf("bank transactions = %+v, want one with id tx-000001", txs)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	setupTestLedger(t)

	if st := run(t, &initCmd{}, "-c", "EUR"); st != subcommands.ExitSuccess {
		t.Fatalf("init = %v, want success", st)
	}
	if st := run(t, &initCmd{}, "-c", "USD"); st != subcommands.ExitFailure {
		t.Errorf("second init = %v, want failure", st)
	}
}

func TestFmtSortsTransactions(t *testing.T) {
	setupTestLedger(t)

	if st := run(t, &initCmd{}, "-c", "TWD"); st != subcommands.ExitSuccess {
		t.Fatalf("init = %v, want success", st)
	}
	if st := run(t, &addCmd{}, "-k", "cash", "-c", "TWD", "bank"); st != subcommands.ExitSuccess {
		t.Fatalf("add = %v, want success", st)
	}

	// Out of order on disk.
	raw := `{"id":"tx-000002","holding":"bank","type":"deposit","date":"2025-03-01","amount":200,"currency":"TWD","quantity":200,"rate":1}
{"id":"tx-000001","holding":"bank","type":"deposit","date":"2025-01-01","amount":100,"currency":"TWD","quantity":100,"rate":1}
`
	if err := os.WriteFile(*transactionsFile, []byte(raw), 0644); err != nil {
		t.Fatalf("writing transactions: %v", err)
	}

	if st := run(t, &fmtCmd{}); st != subcommands.ExitSuccess {
		t.Fatalf("fmt = %v, want success", st)
	}

	out, err := os.ReadFile(*transactionsFile)
	if err != nil {
		t.Fatalf("reading transactions: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		t.Fatalf("formatted file has %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "2025-01-01") {
		t.Errorf("first line = %s, want the January transaction first", lines[0])
	}
}
