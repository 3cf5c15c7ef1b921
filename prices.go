package networth

import (
	"time"
)

// PriceStaleAfter is how long a quoted price is trusted before a refresh is
// requested.
const PriceStaleAfter = 30 * time.Minute

// PriceEntry is a point-in-time market quote for one symbol, in the currency
// the symbol trades in.
type PriceEntry struct {
	Symbol     string
	Price      Money
	ObservedAt time.Time
}

// PriceTable holds the latest known market price per symbol. It is a plain
// snapshot: refreshing it is the collaborator's job, reading it never blocks.
type PriceTable struct {
	entries map[string]PriceEntry
}

// NewPriceTable returns an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{entries: make(map[string]PriceEntry)}
}

// Set records the latest quote for a symbol.
func (t *PriceTable) Set(symbol string, price Money, observedAt time.Time) {
	t.entries[symbol] = PriceEntry{Symbol: symbol, Price: price, ObservedAt: observedAt}
}

// Get returns the latest quote for a symbol, if any.
func (t *PriceTable) Get(symbol string) (PriceEntry, bool) {
	e, ok := t.entries[symbol]
	return e, ok
}

// Price returns the latest unit price for a symbol, or a zero Money when no
// quote is known. A zero price means "no live quote", and the valuation
// falls back to book value rather than pricing the holding at zero.
func (t *PriceTable) Price(symbol string) Money {
	return t.entries[symbol].Price
}

// Len returns the number of quoted symbols.
func (t *PriceTable) Len() int { return len(t.entries) }

// Stale returns the quotes older than maxAge.
func (t *PriceTable) Stale(now time.Time, maxAge time.Duration) []PriceEntry {
	var stale []PriceEntry
	for _, e := range t.entries {
		if now.Sub(e.ObservedAt) > maxAge {
			stale = append(stale, e)
		}
	}
	return stale
}
