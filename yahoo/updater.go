package yahoo

import (
	"log"
	"time"

	"github.com/chiwei/networth"
	"github.com/shopspring/decimal"
)

// Change records one refreshed quote: a price ticker or a USD forex pair.
type Change struct {
	Key      string
	Old, New decimal.Decimal
}

// Update refreshes the stale half of a market snapshot in place: holding
// prices older than networth.PriceStaleAfter, and USD pivot rates for every
// currency the portfolio spans older than networth.RateStaleAfter. Fresh
// entries are not re-fetched. A symbol that fails to quote, or quotes in a
// currency other than its holding's declared one, is logged and skipped
// rather than failing the whole refresh.
func Update(prices *networth.PriceTable, rates *networth.RateTable, holdings []networth.Holding, base string, now time.Time) []Change {
	client := newCachingClient(networth.PriceStaleAfter)
	var changes []Change

	currencies := make(map[string]struct{})
	if base != "USD" {
		currencies[base] = struct{}{}
	}

	for _, h := range holdings {
		if h.Status == networth.Archived {
			continue
		}
		if h.Currency != "USD" {
			currencies[h.Currency] = struct{}{}
		}
		if h.Symbol == "" {
			continue
		}
		if e, ok := prices.Get(h.Symbol); ok && now.Sub(e.ObservedAt) <= networth.PriceStaleAfter {
			continue
		}
		q, err := fetchSymbol(client, h.Symbol, h.Currency)
		if err != nil {
			log.Println("warning:", err)
			continue
		}
		if q.Currency != h.Currency {
			log.Printf("warning: %s quotes in %s but holding %q is declared in %s, skipping", q.Symbol, q.Currency, h.ID, h.Currency)
			continue
		}
		old := prices.Price(h.Symbol).Amount()
		prices.Set(h.Symbol, networth.M(q.Price, q.Currency), now)
		changes = append(changes, Change{Key: h.Symbol, Old: old, New: q.Price})
	}

	for cur := range currencies {
		if rates.IsFresh("USD", cur, now, networth.RateStaleAfter) {
			continue
		}
		rate, err := fetchUSDRate(client, cur)
		if err != nil {
			log.Println("warning:", err)
			continue
		}
		var old decimal.Decimal
		if e, ok := rates.Get("USD", cur); ok {
			old = e.Rate
		}
		rates.Set("USD", cur, rate, now)
		changes = append(changes, Change{Key: "USD" + cur, Old: old, New: rate})
	}
	return changes
}
