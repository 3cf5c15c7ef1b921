package networth

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Ledger holds the portfolio: every holding and the full transaction log.
//
// Holdings carry derived inventory fields (quantity, book value, cost basis)
// that the ledger keeps in sync as transactions are appended. Transactions
// themselves are immutable; removing one forces a rebuild of its holding
// from the surviving history.
type Ledger struct {
	reference    string // reference currency for cash-like book values
	holdings     []*Holding
	index        map[string]*Holding
	transactions []Transaction
	lastID       int
}

// NewLedger creates an empty ledger whose cash-like book values are
// denominated in the given reference currency.
func NewLedger(reference string) (*Ledger, error) {
	if err := ValidateCurrency(reference); err != nil {
		return nil, fmt.Errorf("invalid reference currency: %w", err)
	}
	return &Ledger{
		reference: reference,
		index:     make(map[string]*Holding),
	}, nil
}

// Reference returns the ledger's reference currency.
func (l *Ledger) Reference() string { return l.reference }

// Holdings returns a copy of all holdings, in insertion order.
func (l *Ledger) Holdings() []Holding {
	out := make([]Holding, 0, len(l.holdings))
	for _, h := range l.holdings {
		out = append(out, *h)
	}
	return out
}

// Holding returns one holding by ID.
func (l *Ledger) Holding(id string) (Holding, bool) {
	h, ok := l.index[id]
	if !ok {
		return Holding{}, false
	}
	return *h, true
}

// Transactions returns the holding's transaction log, chronological.
func (l *Ledger) Transactions(holdingID string) []Transaction {
	var out []Transaction
	for _, tx := range l.transactions {
		if tx.HoldingID == holdingID {
			out = append(out, tx)
		}
	}
	return out
}

// History returns the transaction log grouped by holding ID, the shape
// ComputeViews consumes.
func (l *Ledger) History() map[string][]Transaction {
	out := make(map[string][]Transaction)
	for _, tx := range l.transactions {
		out[tx.HoldingID] = append(out[tx.HoldingID], tx)
	}
	return out
}

// AddHolding registers a new holding.
func (l *Ledger) AddHolding(h Holding) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if _, exists := l.index[h.ID]; exists {
		return fmt.Errorf("holding %q already exists", h.ID)
	}
	if h.Status == "" {
		h.Status = Active
	}
	if h.BookValue.Currency() == "" {
		h.BookValue = M(h.BookValue.Amount(), l.bookCurrency(h))
	}
	held := h
	l.holdings = append(l.holdings, &held)
	l.index[h.ID] = &held
	return nil
}

// Archive marks a holding archived. Archived holdings are excluded from
// valuation but their transactions survive.
func (l *Ledger) Archive(id string) error {
	h, ok := l.index[id]
	if !ok {
		return fmt.Errorf("unknown holding %q", id)
	}
	h.Status = Archived
	return nil
}

// bookCurrency returns the currency a holding's book value is denominated
// in: reference for the cash-like regime, native otherwise.
func (l *Ledger) bookCurrency(h Holding) string {
	if h.IsCashLike() {
		return l.reference
	}
	return h.Currency
}

// Append validates a transaction, records it, and updates the holding's
// derived inventory fields.
func (l *Ledger) Append(txs ...Transaction) error {
	for _, tx := range txs {
		h, ok := l.index[tx.HoldingID]
		if !ok {
			return fmt.Errorf("transaction %q references unknown holding %q", tx.ID, tx.HoldingID)
		}
		if tx.ID == "" {
			tx.ID = l.nextID()
		}
		if tx.ExchangeRate.IsZero() {
			tx.ExchangeRate = decimal.NewFromInt(1)
		}
		if err := tx.Validate(*h); err != nil {
			return err
		}
		l.transactions = append(l.transactions, tx)
		l.apply(h, tx)
	}
	SortTransactions(l.transactions)
	return nil
}

// RemoveTransaction deletes a transaction and rebuilds its holding's derived
// fields from the surviving history.
func (l *Ledger) RemoveTransaction(id string) error {
	for i, tx := range l.transactions {
		if tx.ID != id {
			continue
		}
		h, ok := l.index[tx.HoldingID]
		l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
		if ok {
			l.rebuild(h)
		}
		return nil
	}
	return fmt.Errorf("unknown transaction %q", id)
}

// Settle closes a pending receivable into a cash holding: a transfer-out
// empties the pending item and a linked transfer-in books the received
// amount on the target. rate is the target-native to reference conversion at
// settlement time, used to cost the incoming cash.
func (l *Ledger) Settle(pendingID, targetID string, received Money, rate decimal.Decimal, on Date, note string) error {
	pending, ok := l.index[pendingID]
	if !ok {
		return fmt.Errorf("unknown holding %q", pendingID)
	}
	if pending.Kind != Pending {
		return fmt.Errorf("holding %q is %s, only pending items settle", pendingID, pending.Kind)
	}
	if !pending.Quantity.IsPositive() {
		return fmt.Errorf("pending %q has nothing to receive", pendingID)
	}
	target, ok := l.index[targetID]
	if !ok {
		return fmt.Errorf("unknown holding %q", targetID)
	}
	if !target.IsCashLike() {
		return fmt.Errorf("settlement target %q must be cash-like, is %s", targetID, target.Kind)
	}
	if received.Currency() != target.Currency {
		return fmt.Errorf("received %s does not match target currency %s", received.Currency(), target.Currency)
	}

	outID, inID := l.nextID(), ""
	out := Transaction{
		ID:             outID,
		HoldingID:      pendingID,
		Type:           TxTransferOut,
		Date:           on,
		Amount:         M(pending.Quantity.value.Neg(), pending.Currency),
		QuantityChange: pending.Quantity.Neg(),
		Note:           note,
	}
	if err := l.Append(out); err != nil {
		return err
	}
	inID = l.nextID()
	in := Transaction{
		ID:             inID,
		HoldingID:      targetID,
		Type:           TxTransferIn,
		Date:           on,
		Amount:         received,
		QuantityChange: Q(received.Amount()),
		ExchangeRate:   rate,
		RelatedID:      outID,
		Note:           note,
	}
	if err := l.Append(in); err != nil {
		return err
	}
	// Back-link the out leg.
	for i := range l.transactions {
		if l.transactions[i].ID == outID {
			l.transactions[i].RelatedID = inID
		}
	}
	return nil
}

func (l *Ledger) nextID() string {
	l.lastID++
	return fmt.Sprintf("tx-%06d", l.lastID)
}

// apply folds one transaction into the holding's derived fields, per regime.
//
// Growing the position books cost: |amount| * rate into the reference
// currency for cash-like holdings, |amount| native for price-exposed ones.
// Shrinking it removes cost proportionally to the quantity removed
// (weighted-average costing). Dividends are income, not cost.
func (l *Ledger) apply(h *Holding, tx Transaction) {
	if tx.Type == TxDividend {
		return
	}
	qc := tx.QuantityChange
	if qc.IsZero() {
		return
	}

	before := h.Quantity
	h.Quantity = h.Quantity.Add(qc)

	grows := h.Quantity.Abs().GreaterThan(before.Abs())
	book := h.BookValue
	if book.Currency() == "" {
		book = M(book.Amount(), l.bookCurrency(*h))
	}

	if grows {
		cost := tx.Amount.Amount().Abs()
		if h.IsCashLike() {
			cost = cost.Mul(tx.ExchangeRate)
		}
		if qc.IsNegative() {
			cost = cost.Neg() // liabilities carry a negative book
		}
		book = book.Add(M(cost, book.Currency()))
	} else if !before.IsZero() {
		ratio := Q(qc.value.Abs().Div(before.value.Abs()))
		book = book.Sub(book.Mul(ratio))
	}
	h.BookValue = book

	// Refresh the average basis.
	if h.Quantity.IsZero() {
		h.Cost = CostBasis{}
		return
	}
	perUnit := book.Amount().Div(h.Quantity.value)
	if h.IsCashLike() {
		h.Cost = NewHistoricalRate(NewRate(h.Currency, l.reference, perUnit))
	} else {
		h.Cost = NewUnitCost(M(perUnit, h.Currency))
	}
}

// rebuild recomputes a holding's derived fields from scratch by replaying
// its surviving transactions chronologically.
func (l *Ledger) rebuild(h *Holding) {
	h.Quantity = Q(0)
	h.BookValue = M(0, l.bookCurrency(*h))
	h.Cost = CostBasis{}
	txs := l.Transactions(h.ID)
	SortTransactions(txs)
	for _, tx := range txs {
		l.apply(h, tx)
	}
}
