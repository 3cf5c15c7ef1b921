package networth

import "fmt"

// Kind classifies a holding into one of the tracked asset categories.
type Kind string

const (
	Cash       Kind = "cash"
	Stock      Kind = "stock"
	Crypto     Kind = "crypto"
	Metal      Kind = "metal"
	Liability  Kind = "liability"
	CreditCard Kind = "credit-card"
	Pending    Kind = "pending"
)

var kinds = []Kind{Cash, Stock, Crypto, Metal, Liability, CreditCard, Pending}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if s == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown holding kind: %q", s)
}

// IsCashLike reports whether the kind is FX-exposed: its value is its
// quantity of native currency and its P&L comes from exchange-rate drift.
// The alternative is price-exposed: value comes from a market price, and
// P&L from price movement.
func (k Kind) IsCashLike() bool {
	switch k {
	case Cash, Pending, Liability, CreditCard:
		return true
	default:
		return false
	}
}

// Status tells whether a holding is live or archived. Holdings are archived,
// never deleted, while transactions still reference them.
type Status string

const (
	Active   Status = "active"
	Archived Status = "archived"
)

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Active, Archived:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown holding status: %q", s)
	}
}

// Holding is one tracked position: a cash balance, a market position, a
// liability, or a pending receivable/payable.
//
// BookValue is the cumulative cost basis as of the last transaction. Its
// denomination depends on the regime, and the Money currency makes the
// convention explicit: native currency for price-exposed holdings, the
// ledger's reference currency for cash-like holdings.
type Holding struct {
	ID         string
	Name       string
	Kind       Kind
	Status     Status
	Currency   string // native currency the holding is denominated in
	Symbol     string // market ticker, price-exposed kinds only
	Quantity   Quantity
	Cost       CostBasis
	BookValue  Money
	InNetWorth bool
}

// IsCashLike reports whether the holding follows the FX-exposed regime.
func (h Holding) IsCashLike() bool { return h.Kind.IsCashLike() }

// Validate checks the holding's structural fields.
func (h Holding) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("holding has no id")
	}
	if _, err := ParseKind(string(h.Kind)); err != nil {
		return err
	}
	if err := ValidateCurrency(h.Currency); err != nil {
		return fmt.Errorf("holding %q: %w", h.ID, err)
	}
	if !h.Kind.IsCashLike() && h.Symbol == "" {
		return fmt.Errorf("holding %q: price-exposed kind %q requires a symbol", h.ID, h.Kind)
	}
	if h.Kind.IsCashLike() && h.Symbol != "" {
		return fmt.Errorf("holding %q: cash-like kind %q cannot have a symbol", h.ID, h.Kind)
	}
	return nil
}

func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", h.ID)
	w.Optional("name", h.Name)
	w.Append("kind", h.Kind)
	w.Append("status", h.Status)
	w.Append("currency", h.Currency)
	w.Optional("symbol", h.Symbol)
	w.Append("quantity", h.Quantity)
	w.Optional("cost", h.Cost)
	w.Append("bookValue", h.BookValue.Amount())
	w.Optional("bookCurrency", h.BookValue.Currency())
	w.Append("inNetWorth", h.InNetWorth)
	return w.MarshalJSON()
}
