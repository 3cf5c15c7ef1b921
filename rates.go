package networth

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPivot is the currency most rates are quoted against, used as the
// intermediary for cross rates: rate(A->B) = rate(A->pivot) / rate(B->pivot).
const DefaultPivot = "USD"

// RateStaleAfter is how long a quoted rate is trusted before a refresh is
// requested. The threshold gates refresh requests only; resolution itself
// never blocks on freshness.
const RateStaleAfter = 30 * time.Minute

// RateEntry is one directed exchange-rate quote. The reverse direction is
// not guaranteed to be present and is derived by inversion when needed.
type RateEntry struct {
	From, To   string
	Rate       decimal.Decimal
	ObservedAt time.Time
}

// RateTable holds a sparse directed set of known exchange rates.
// Resolution between any two currencies falls back to inversion and then to
// a pivot-currency cross rate.
type RateTable struct {
	entries map[string]RateEntry
	pivot   string
}

// NewRateTable returns an empty table with the given pivot currency, or
// DefaultPivot when empty.
func NewRateTable(pivot string) *RateTable {
	if pivot == "" {
		pivot = DefaultPivot
	}
	return &RateTable{entries: make(map[string]RateEntry), pivot: pivot}
}

func rateKey(from, to string) string { return from + "-" + to }

// Set records a directed quote.
func (t *RateTable) Set(from, to string, rate decimal.Decimal, observedAt time.Time) {
	t.entries[rateKey(from, to)] = RateEntry{From: from, To: to, Rate: rate, ObservedAt: observedAt}
}

// Get returns the directed quote from->to, if present.
func (t *RateTable) Get(from, to string) (RateEntry, bool) {
	e, ok := t.entries[rateKey(from, to)]
	return e, ok
}

// Len returns the number of directed quotes in the table.
func (t *RateTable) Len() int { return len(t.entries) }

// Resolve returns the conversion factor between two currencies.
//
// A currency converts to itself at exact parity, with no lookup. Otherwise
// the direct quote is used; failing that, the inverse of the opposite quote;
// failing that, a cross rate through the pivot currency, where each leg may
// itself be direct or inverted. When no path exists the returned rate is
// unresolved, never a silent 1.0.
func (t *RateTable) Resolve(from, to string) Rate {
	if from == to {
		return Parity(from)
	}
	if e, ok := t.Get(from, to); ok {
		return NewRate(from, to, e.Rate)
	}
	if e, ok := t.Get(to, from); ok && !e.Rate.IsZero() {
		return NewRate(to, from, e.Rate).Inverse()
	}
	// Cross rate through the pivot.
	fromPivot := t.leg(from)
	toPivot := t.leg(to)
	if fromPivot.IsResolved() && toPivot.IsResolved() && !toPivot.Value().IsZero() {
		return NewRate(from, to, fromPivot.Value().Div(toPivot.Value()))
	}
	return Unresolved(from, to)
}

// leg resolves currency->pivot by direct quote or inversion only.
func (t *RateTable) leg(currency string) Rate {
	if currency == t.pivot {
		return Parity(currency)
	}
	if e, ok := t.Get(currency, t.pivot); ok {
		return NewRate(currency, t.pivot, e.Rate)
	}
	if e, ok := t.Get(t.pivot, currency); ok && !e.Rate.IsZero() {
		return NewRate(t.pivot, currency, e.Rate).Inverse()
	}
	return Unresolved(currency, t.pivot)
}

// IsFresh reports whether the directed quote exists and was observed within
// maxAge of now.
func (t *RateTable) IsFresh(from, to string, now time.Time, maxAge time.Duration) bool {
	e, ok := t.Get(from, to)
	return ok && now.Sub(e.ObservedAt) <= maxAge
}

// Stale returns the entries older than maxAge, the ones the external refresh
// policy should renew.
func (t *RateTable) Stale(now time.Time, maxAge time.Duration) []RateEntry {
	var stale []RateEntry
	for _, e := range t.entries {
		if now.Sub(e.ObservedAt) > maxAge {
			stale = append(stale, e)
		}
	}
	return stale
}

func (e RateEntry) String() string {
	return fmt.Sprintf("%s-%s %s", e.From, e.To, e.Rate.String())
}
