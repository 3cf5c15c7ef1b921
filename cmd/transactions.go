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

// appendTransactions validates and appends transactions, then rewrites the
// app files.
func appendTransactions(ledger *networth.Ledger, txs ...networth.Transaction) subcommands.ExitStatus {
	if err := ledger.Append(txs...); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing ledger:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %d transaction(s) in %s\n", len(txs), *transactionsFile)
	return subcommands.ExitSuccess
}

func parseDateFlag(s string) (networth.Date, subcommands.ExitStatus) {
	day, err := networth.ParseDate(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return networth.Date{}, subcommands.ExitUsageError
	}
	return day, subcommands.ExitSuccess
}

// source builds the optional funding-source amount shared by the acquisition
// commands.
func source(amount float64, currency string) networth.Money {
	if amount == 0 {
		return networth.Money{}
	}
	return networth.M(amount, currency)
}

// --- Buy Command ---

type buyCmd struct {
	date         string
	holding      string
	quantity     float64
	amount       float64
	rate         float64
	sourceAmount float64
	sourceCur    string
	note         string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase units to open or add to a position" }
func (*buyCmd) Usage() string {
	return `nwt buy -o <holding> -q <quantity> -a <amount> [-r <rate>] [-sa <amount> -sc <currency>] [-d <date>] [-m <note>]

  Purchases units of a price-exposed holding. Amount is the total cost in the
  holding's native currency. When the purchase was funded from another
  currency, record the source amount so the effective rate is kept.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", networth.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.holding, "o", "", "Holding the purchase books into")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.amount, "a", 0, "Total cost in the holding's native currency")
	f.Float64Var(&c.rate, "r", 0, "Native-to-reference exchange rate at transaction time")
	f.Float64Var(&c.sourceAmount, "sa", 0, "Amount deducted from the funding holding")
	f.StringVar(&c.sourceCur, "sc", "", "Currency of the funding amount")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.holding == "" || c.quantity <= 0 || c.amount <= 0 {
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
	h, ok := ledger.Holding(c.holding)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown holding %q\n", c.holding)
		return subcommands.ExitFailure
	}

	return appendTransactions(ledger, networth.Transaction{
		HoldingID:      c.holding,
		Type:           networth.TxBuy,
		Date:           day,
		Amount:         networth.M(-c.amount, h.Currency),
		QuantityChange: networth.Q(c.quantity),
		ExchangeRate:   decimal.NewFromFloat(c.rate),
		SourceAmount:   source(c.sourceAmount, c.sourceCur),
		Note:           c.note,
	})
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	holding  string
	quantity float64
	amount   float64
	rate     float64
	note     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell units to trim or close a position" }
func (*sellCmd) Usage() string {
	return `nwt sell -o <holding> -q <quantity> -a <amount> [-r <rate>] [-d <date>] [-m <note>]

  Sells units of a price-exposed holding. Amount is the total proceeds in the
  holding's native currency. Cost is removed proportionally to the quantity
  sold.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", networth.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.holding, "o", "", "Holding the sale books out of")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.amount, "a", 0, "Total proceeds in the holding's native currency")
	f.Float64Var(&c.rate, "r", 0, "Native-to-reference exchange rate at transaction time")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.holding == "" || c.quantity <= 0 || c.amount < 0 {
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
	h, ok := ledger.Holding(c.holding)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown holding %q\n", c.holding)
		return subcommands.ExitFailure
	}

	return appendTransactions(ledger, networth.Transaction{
		HoldingID:      c.holding,
		Type:           networth.TxSell,
		Date:           day,
		Amount:         networth.M(c.amount, h.Currency),
		QuantityChange: networth.Q(-c.quantity),
		ExchangeRate:   decimal.NewFromFloat(c.rate),
		Note:           c.note,
	})
}

// --- Deposit Command ---

type depositCmd struct {
	date         string
	holding      string
	amount       float64
	rate         float64
	sourceAmount float64
	sourceCur    string
	note         string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record cash flowing into a holding" }
func (*depositCmd) Usage() string {
	return `nwt deposit -o <holding> -a <amount> [-r <rate>] [-sa <amount> -sc <currency>] [-d <date>] [-m <note>]

  Adds cash to a cash-like holding, in its native currency. For a foreign
  holding, record either the rate in effect or the source amount the deposit
  was converted from. Without either, the cost record is not trusted and the
  holding's historical track is dropped.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", networth.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.holding, "o", "", "Holding receiving the deposit")
	f.Float64Var(&c.amount, "a", 0, "Amount in the holding's native currency")
	f.Float64Var(&c.rate, "r", 0, "Native-to-reference exchange rate at transaction time")
	f.Float64Var(&c.sourceAmount, "sa", 0, "Amount deducted from the funding holding")
	f.StringVar(&c.sourceCur, "sc", "", "Currency of the funding amount")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.holding == "" || c.amount <= 0 {
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
	h, ok := ledger.Holding(c.holding)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown holding %q\n", c.holding)
		return subcommands.ExitFailure
	}

	return appendTransactions(ledger, networth.Transaction{
		HoldingID:      c.holding,
		Type:           networth.TxDeposit,
		Date:           day,
		Amount:         networth.M(c.amount, h.Currency),
		QuantityChange: networth.Q(c.amount),
		ExchangeRate:   decimal.NewFromFloat(c.rate),
		SourceAmount:   source(c.sourceAmount, c.sourceCur),
		Note:           c.note,
	})
}

// --- Withdraw Command ---

type withdrawCmd struct {
	date    string
	holding string
	amount  float64
	rate    float64
	note    string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record cash flowing out of a holding" }
func (*withdrawCmd) Usage() string {
	return `nwt withdraw -o <holding> -a <amount> [-r <rate>] [-d <date>] [-m <note>]

  Removes cash from a cash-like holding, in its native currency. The average
  historical rate of the remaining balance is unchanged.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", networth.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.holding, "o", "", "Holding the withdrawal comes from")
	f.Float64Var(&c.amount, "a", 0, "Amount in the holding's native currency")
	f.Float64Var(&c.rate, "r", 0, "Native-to-reference exchange rate at transaction time")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.holding == "" || c.amount <= 0 {
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
	h, ok := ledger.Holding(c.holding)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown holding %q\n", c.holding)
		return subcommands.ExitFailure
	}

	return appendTransactions(ledger, networth.Transaction{
		HoldingID:      c.holding,
		Type:           networth.TxWithdraw,
		Date:           day,
		Amount:         networth.M(-c.amount, h.Currency),
		QuantityChange: networth.Q(-c.amount),
		ExchangeRate:   decimal.NewFromFloat(c.rate),
		Note:           c.note,
	})
}
