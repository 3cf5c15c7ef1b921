package networth

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger is persisted as two JSONL streams: one for holdings (preceded
// by a meta line carrying the reference currency) and one for transactions.
// Encoding is canonical: stable field order, chronological transactions.

type metaLine struct {
	Reference string `json:"reference"`
}

// EncodeHoldings writes the meta line and every holding as JSONL.
func EncodeHoldings(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(metaLine{Reference: l.reference}); err != nil {
		return fmt.Errorf("encoding ledger meta: %w", err)
	}
	for _, h := range l.Holdings() {
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("encoding holding %q: %w", h.ID, err)
		}
	}
	return nil
}

// EncodeTransactions writes the transaction log as JSONL, chronological.
func EncodeTransactions(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	for _, tx := range l.transactions {
		if err := enc.Encode(tx); err != nil {
			return fmt.Errorf("encoding transaction %q: %w", tx.ID, err)
		}
	}
	return nil
}

// holdingLine is the wire shape of a persisted holding.
type holdingLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Status   string          `json:"status"`
	Currency string          `json:"currency"`
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	Cost     *struct {
		UnitCost       *decimal.Decimal `json:"unitCost"`
		Currency       string           `json:"currency"`
		HistoricalRate *decimal.Decimal `json:"historicalRate"`
		Reference      string           `json:"reference"`
	} `json:"cost"`
	BookValue    decimal.Decimal `json:"bookValue"`
	BookCurrency string          `json:"bookCurrency"`
	InNetWorth   bool            `json:"inNetWorth"`
}

// txLine is the wire shape of a persisted transaction.
type txLine struct {
	ID             string           `json:"id"`
	Holding        string           `json:"holding"`
	Type           string           `json:"type"`
	Date           Date             `json:"date"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency"`
	Quantity       Quantity         `json:"quantity"`
	Rate           decimal.Decimal  `json:"rate"`
	SourceAmount   *decimal.Decimal `json:"sourceAmount"`
	SourceCurrency string           `json:"sourceCurrency"`
	Related        string           `json:"related"`
	Note           string           `json:"note"`
}

// DecodeLedger reads the two JSONL streams back into a ledger. Holdings are
// restored with their stored derived fields; transactions are restored
// as-is, without re-applying them.
func DecodeLedger(holdings, transactions io.Reader) (*Ledger, error) {
	scanner := bufio.NewScanner(holdings)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading ledger meta: %w", err)
		}
		return nil, fmt.Errorf("holdings stream is empty, expected a meta line")
	}
	var meta metaLine
	if err := json.Unmarshal(scanner.Bytes(), &meta); err != nil {
		return nil, fmt.Errorf("decoding ledger meta: %w", err)
	}
	l, err := NewLedger(meta.Reference)
	if err != nil {
		return nil, err
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var hl holdingLine
		if err := json.Unmarshal(line, &hl); err != nil {
			return nil, fmt.Errorf("decoding holding line %q: %w", string(line), err)
		}
		h, err := hl.holding()
		if err != nil {
			return nil, err
		}
		if err := l.AddHolding(h); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading holdings: %w", err)
	}

	scanner = bufio.NewScanner(transactions)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var tl txLine
		if err := json.Unmarshal(line, &tl); err != nil {
			return nil, fmt.Errorf("decoding transaction line %q: %w", string(line), err)
		}
		tx, err := tl.transaction()
		if err != nil {
			return nil, err
		}
		l.restore(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	SortTransactions(l.transactions)
	return l, nil
}

func (hl holdingLine) holding() (Holding, error) {
	kind, err := ParseKind(hl.Kind)
	if err != nil {
		return Holding{}, fmt.Errorf("holding %q: %w", hl.ID, err)
	}
	status, err := ParseStatus(hl.Status)
	if err != nil {
		return Holding{}, fmt.Errorf("holding %q: %w", hl.ID, err)
	}
	h := Holding{
		ID:         hl.ID,
		Name:       hl.Name,
		Kind:       kind,
		Status:     status,
		Currency:   hl.Currency,
		Symbol:     hl.Symbol,
		Quantity:   Q(hl.Quantity),
		BookValue:  M(hl.BookValue, hl.BookCurrency),
		InNetWorth: hl.InNetWorth,
	}
	if c := hl.Cost; c != nil {
		switch {
		case c.UnitCost != nil:
			h.Cost = NewUnitCost(M(*c.UnitCost, c.Currency))
		case c.HistoricalRate != nil:
			h.Cost = NewHistoricalRate(NewRate(hl.Currency, c.Reference, *c.HistoricalRate))
		}
	}
	return h, nil
}

func (tl txLine) transaction() (Transaction, error) {
	typ, err := ParseTxType(tl.Type)
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction %q: %w", tl.ID, err)
	}
	tx := Transaction{
		ID:             tl.ID,
		HoldingID:      tl.Holding,
		Type:           typ,
		Date:           tl.Date,
		Amount:         M(tl.Amount, tl.Currency),
		QuantityChange: tl.Quantity,
		ExchangeRate:   tl.Rate,
		RelatedID:      tl.Related,
		Note:           tl.Note,
	}
	if tl.SourceAmount != nil {
		tx.SourceAmount = M(*tl.SourceAmount, tl.SourceCurrency)
	}
	return tx, nil
}

// restore appends a decoded transaction without touching derived holding
// state, and keeps the ID counter ahead of persisted IDs.
func (l *Ledger) restore(tx Transaction) {
	var n int
	if _, err := fmt.Sscanf(tx.ID, "tx-%06d", &n); err == nil && n > l.lastID {
		l.lastID = n
	}
	l.transactions = append(l.transactions, tx)
}
