package networth

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEncodeDecodeLedger_RoundTrip(t *testing.T) {
	l := newTestLedger(t)
	if err := l.AddHolding(Holding{ID: "eur", Name: "EUR Savings", Kind: Cash, Currency: "EUR", InNetWorth: true}); err != nil {
		t.Fatalf("AddHolding() error = %v", err)
	}
	if err := l.AddHolding(Holding{ID: "acme", Kind: Stock, Currency: "USD", Symbol: "ACME", InNetWorth: true}); err != nil {
		t.Fatalf("AddHolding() error = %v", err)
	}
	err := l.Append(
		Transaction{
			HoldingID: "eur", Type: TxDeposit, Date: NewDate(2025, time.January, 5),
			Amount: EUR(1000), QuantityChange: Q(1000),
			ExchangeRate: decimal.NewFromFloat(33.0),
			SourceAmount: TWD(33000),
			Note:         "opening balance",
		},
		Transaction{
			HoldingID: "acme", Type: TxBuy, Date: NewDate(2025, time.February, 10),
			Amount: USD(-1500), QuantityChange: Q(10),
			ExchangeRate: decimal.NewFromFloat(32.0),
		},
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	var holdings, txs bytes.Buffer
	if err := EncodeHoldings(&holdings, l); err != nil {
		t.Fatalf("EncodeHoldings() error = %v", err)
	}
	if err := EncodeTransactions(&txs, l); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}

	got, err := DecodeLedger(&holdings, &txs)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}

	if got.Reference() != "TWD" {
		t.Errorf("Reference() = %q, want TWD", got.Reference())
	}
	if len(got.Holdings()) != 2 {
		t.Fatalf("decoded %d holdings, want 2", len(got.Holdings()))
	}

	eur, ok := got.Holding("eur")
	if !ok {
		t.Fatalf("holding eur missing after round trip")
	}
	if !eur.Quantity.Equal(Q(1000)) {
		t.Errorf("eur Quantity = %v, want 1000", eur.Quantity)
	}
	if want := TWD(33000); !eur.BookValue.Equal(want) {
		t.Errorf("eur BookValue = %v, want %v", eur.BookValue, want)
	}
	rate, ok := eur.Cost.HistoricalRate()
	if !ok || !rate.Value().Equal(decimal.NewFromFloat(33.0)) {
		t.Errorf("eur Cost = %v, want historical rate 33", eur.Cost)
	}

	acme, _ := got.Holding("acme")
	if want := USD(1500); !acme.BookValue.Equal(want) {
		t.Errorf("acme BookValue = %v, want %v", acme.BookValue, want)
	}
	unit, ok := acme.Cost.UnitCost()
	if !ok || !unit.Equal(USD(150)) {
		t.Errorf("acme Cost = %v, want 150 USD per unit", acme.Cost)
	}

	deposit := got.Transactions("eur")[0]
	if deposit.Type != TxDeposit || deposit.Note != "opening balance" {
		t.Errorf("decoded deposit = %+v", deposit)
	}
	if !deposit.HasSource() || !deposit.SourceAmount.Equal(TWD(33000)) {
		t.Errorf("decoded SourceAmount = %v, want 33000 TWD", deposit.SourceAmount)
	}
	if !deposit.Amount.Equal(EUR(1000)) {
		t.Errorf("decoded Amount = %v, want 1000 EUR", deposit.Amount)
	}

	// The ID counter resumes past the persisted transactions.
	if err := got.Append(Transaction{
		HoldingID: "eur", Type: TxDeposit, Date: NewDate(2025, time.March, 1),
		Amount: EUR(10), QuantityChange: Q(10),
	}); err != nil {
		t.Fatalf("Append() after decode error = %v", err)
	}
	last := got.Transactions("eur")[1]
	if last.ID != "tx-000003" {
		t.Errorf("next assigned ID = %q, want tx-000003", last.ID)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	if _, err := DecodeLedger(strings.NewReader(""), strings.NewReader("")); err == nil {
		t.Errorf("DecodeLedger() with no meta line did not fail")
	}
	if _, err := DecodeLedger(strings.NewReader("{\"reference\":\"ZZZ\"}\n"), strings.NewReader("")); err == nil {
		t.Errorf("DecodeLedger() with a bad reference currency did not fail")
	}
	if _, err := DecodeLedger(strings.NewReader("{\"reference\":\"TWD\"}\nnot json\n"), strings.NewReader("")); err == nil {
		t.Errorf("DecodeLedger() with a corrupt holding line did not fail")
	}
}

func TestDecodeLedger_Stream(t *testing.T) {
	holdings := `{"reference":"TWD"}
{"id":"bank","kind":"cash","status":"active","currency":"TWD","quantity":500,"cost":{"historicalRate":1,"reference":"TWD"},"bookValue":500,"bookCurrency":"TWD","inNetWorth":true}
`
	txs := `{"id":"tx-000001","holding":"bank","type":"deposit","date":"2025-01-02","amount":500,"currency":"TWD","quantity":500,"rate":1}
`
	l, err := DecodeLedger(strings.NewReader(holdings), strings.NewReader(txs))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	h, ok := l.Holding("bank")
	if !ok {
		t.Fatalf("holding bank missing")
	}
	if !h.Quantity.Equal(Q(500)) || !h.InNetWorth {
		t.Errorf("decoded holding = %+v", h)
	}
	tx := l.Transactions("bank")[0]
	if tx.Date != NewDate(2025, time.January, 2) {
		t.Errorf("decoded date = %v, want 2025-01-02", tx.Date)
	}
}
