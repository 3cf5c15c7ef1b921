package networth

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// TxType identifies the kind of a transaction.
type TxType string

const (
	TxInitial     TxType = "initial"
	TxDeposit     TxType = "deposit"
	TxWithdraw    TxType = "withdraw"
	TxBuy         TxType = "buy"
	TxSell        TxType = "sell"
	TxDividend    TxType = "dividend"
	TxAdjustment  TxType = "adjustment"
	TxTransferIn  TxType = "transfer-in"
	TxTransferOut TxType = "transfer-out"
)

var txTypes = []TxType{
	TxInitial, TxDeposit, TxWithdraw, TxBuy, TxSell,
	TxDividend, TxAdjustment, TxTransferIn, TxTransferOut,
}

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	for _, t := range txTypes {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

// Transaction is one immutable ledger record. It belongs to exactly one
// holding and is never mutated after creation; deleting one forces a
// rebuild of the holding's stored fields.
type Transaction struct {
	ID        string
	HoldingID string
	Type      TxType
	Date      Date

	// Amount is the change to the holding's book value, in the holding's
	// native currency. Outflows (buys, withdrawals) are negative.
	Amount Money

	// QuantityChange is the signed change to the holding's quantity.
	QuantityChange Quantity

	// ExchangeRate is the native-to-base rate effective at transaction time.
	// It defaults to 1.0 when unknown, which for a foreign holding marks the
	// cost record as untrustworthy.
	ExchangeRate decimal.Decimal

	// SourceAmount is the amount actually deducted from a funding holding,
	// possibly in a different currency. When present, the recorded
	// ExchangeRate was derived from it rather than looked up.
	SourceAmount Money

	// RelatedID links the two legs of a transfer or settlement.
	RelatedID string

	Note string
}

// HasSource reports whether a funding-source amount was recorded.
func (t Transaction) HasSource() bool { return !t.SourceAmount.IsZero() }

// IsAcquisition reports whether the transaction adds units.
func (t Transaction) IsAcquisition() bool { return t.QuantityChange.IsPositive() }

// IsDisposal reports whether the transaction removes units.
func (t Transaction) IsDisposal() bool { return t.QuantityChange.IsNegative() }

// Validate checks the transaction against the holding it belongs to.
func (t Transaction) Validate(h Holding) error {
	if t.ID == "" {
		return fmt.Errorf("transaction has no id")
	}
	if t.HoldingID != h.ID {
		return fmt.Errorf("transaction %q belongs to holding %q, not %q", t.ID, t.HoldingID, h.ID)
	}
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	if c := t.Amount.Currency(); c != "" && c != h.Currency {
		return fmt.Errorf("transaction %q amount is in %s, holding %q is denominated in %s", t.ID, c, h.ID, h.Currency)
	}
	switch t.Type {
	case TxBuy:
		if !t.IsAcquisition() {
			return fmt.Errorf("transaction %q: buy requires a positive quantity change", t.ID)
		}
	case TxSell:
		if !t.IsDisposal() {
			return fmt.Errorf("transaction %q: sell requires a negative quantity change", t.ID)
		}
	case TxWithdraw, TxTransferOut:
		if t.QuantityChange.IsPositive() {
			return fmt.Errorf("transaction %q: %s cannot add units", t.ID, t.Type)
		}
	}
	return nil
}

// SortTransactions orders transactions chronologically, oldest first. The
// sort is stable so same-day records keep their recorded order.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("holding", t.HoldingID)
	w.Append("type", t.Type)
	w.Append("date", t.Date)
	w.Append("amount", t.Amount.Amount())
	w.Optional("currency", t.Amount.Currency())
	w.Append("quantity", t.QuantityChange)
	w.Append("rate", t.ExchangeRate)
	if t.HasSource() {
		w.Append("sourceAmount", t.SourceAmount.Amount())
		w.Append("sourceCurrency", t.SourceAmount.Currency())
	}
	w.Optional("related", t.RelatedID)
	w.Optional("note", t.Note)
	return w.MarshalJSON()
}
