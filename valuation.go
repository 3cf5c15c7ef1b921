package networth

import (
	"math"

	"github.com/shopspring/decimal"
)

// bookEpsilon is the threshold under which a native book value is too small
// to derive a meaningful weighted-average rate from.
var bookEpsilon = decimal.NewFromFloat(1e-6)

// HistoricalPerformance is the transaction-aware track of a view: the true
// lifetime figures reconstructed from history, present only when the history
// carried trustworthy cost records.
type HistoricalPerformance struct {
	Cost    Money   // total base-currency cost of the current position
	PnL     Money   // base market value minus Cost
	Return  Percent // PnL over |Cost|; +inf for a gain over zero cost
	AvgRate Rate    // weighted-average funding rate, native to base
}

// View is a holding with every computed field filled in. Views are ephemeral:
// recomputed on every call, never persisted.
type View struct {
	Holding

	// MarketPrice is the live native unit price. Zero means "no live quote",
	// distinguishable from an actual zero price because the native value
	// then falls back to book value.
	MarketPrice Money

	// NativeValue is the market value in the holding's native currency.
	NativeValue Money

	// Rate is the native-to-base conversion used. When unresolved, no
	// base-currency figure below is meaningful and the holding must be
	// surfaced as unvalued, not silently converted at parity.
	Rate Rate

	// BaseValue is NativeValue converted to the base currency.
	BaseValue Money

	// PnL and Return are the quick track: computed from the holding's stored
	// cost fields only, always available when the rate resolves.
	PnL    Money
	Return Percent

	// Historical is the transaction-aware track, nil when no history was
	// supplied or its cost records were untrustworthy. Callers must not
	// substitute the quick figures for it.
	Historical *HistoricalPerformance
}

// ComputeView values one holding against a market snapshot.
//
// price is the live native unit price for the holding's symbol (zero Money
// when unknown). rate converts the holding's native currency to the base
// currency. transactions, when supplied, enable the historical track.
//
// The two accounting regimes never mix: cash-like holdings earn and lose on
// exchange-rate drift only (track A), price-exposed holdings on native price
// movement only, converted for display (track B).
func ComputeView(h Holding, price Money, rate Rate, base string, transactions []Transaction) View {
	// A holding in the base currency always trades at true parity.
	if !rate.IsResolved() && h.Currency == base {
		rate = Parity(base)
	}

	v := View{Holding: h, Rate: rate}

	// Native market value.
	if h.IsCashLike() {
		v.NativeValue = M(h.Quantity.value, h.Currency)
	} else {
		// A quote denominated in another currency than the holding's cannot
		// price it and counts as missing.
		if price.IsPositive() && price.Currency() == h.Currency {
			v.MarketPrice = price
			v.NativeValue = price.Mul(h.Quantity)
		} else {
			// No live quote: stale-but-safe fallback to cost, and a zero
			// MarketPrice so "no data" stays visible.
			v.NativeValue = h.BookValue
		}
	}

	if !rate.IsResolved() {
		// No conversion path: the quick track stays empty and the historical
		// track is not attempted. The aggregator reports this holding as
		// unvalued instead of treating its figures as zero.
		return v
	}

	v.BaseValue = rate.Convert(v.NativeValue)

	if h.IsCashLike() {
		computeCashTrack(&v, h, rate, base, transactions)
	} else {
		computePriceTrack(&v, h, rate, base, transactions)
	}
	return v
}

// computeCashTrack fills track A: P&L from exchange-rate drift against the
// recorded historical funding rate. A same-currency cash holding has zero
// P&L by definition.
func computeCashTrack(v *View, h Holding, rate Rate, base string, transactions []Transaction) {
	v.PnL = M(0, base)
	if h.Currency == base {
		return
	}
	hist, ok := h.Cost.HistoricalRate()
	if !ok {
		return
	}
	drift := rate.Sub(hist)
	v.PnL = M(drift.value.Mul(h.Quantity.value), base)
	if !hist.Value().IsZero() {
		v.Return = Percent(drift.value.Div(hist.Value()).InexactFloat64() * 100)
	}
	// For cash the lifetime figures are the FX drift itself: the quick and
	// historical tracks coincide.
	if len(transactions) > 0 {
		v.Historical = &HistoricalPerformance{
			Cost:    h.BookValue,
			PnL:     v.PnL,
			Return:  v.Return,
			AvgRate: hist,
		}
	}
}

// computePriceTrack fills track B: P&L from native price movement, converted
// to base for display, plus the replay-backed historical track when the
// history is present and trustworthy.
func computePriceTrack(v *View, h Holding, rate Rate, base string, transactions []Transaction) {
	pnlNative := v.NativeValue.Sub(h.BookValue)
	v.PnL = rate.Convert(pnlNative)
	if !h.BookValue.IsZero() {
		v.Return = Percent(pnlNative.Amount().Div(h.BookValue.Amount().Abs()).InexactFloat64() * 100)
	}

	if len(transactions) == 0 {
		return
	}
	totalBaseCost, ok := ReplayCostBasis(transactions, h.Currency != base, base)
	if !ok {
		return
	}

	histPnl := v.BaseValue.Sub(totalBaseCost)
	perf := &HistoricalPerformance{
		Cost:    totalBaseCost,
		PnL:     histPnl,
		AvgRate: Unresolved(h.Currency, base),
	}
	switch {
	case !totalBaseCost.IsZero():
		perf.Return = Percent(histPnl.Amount().Div(totalBaseCost.Amount().Abs()).InexactFloat64() * 100)
	case histPnl.IsPositive():
		perf.Return = Percent(math.Inf(1))
	}
	if h.BookValue.Amount().GreaterThan(bookEpsilon) {
		perf.AvgRate = NewRate(h.Currency, base, totalBaseCost.Amount().Div(h.BookValue.Amount()))
	}
	v.Historical = perf
}

// ComputeViews values all active holdings against one market snapshot.
// history maps holding IDs to their transaction logs; holdings absent from
// the map get the quick track only. Archived holdings are skipped.
func ComputeViews(holdings []Holding, prices *PriceTable, rates *RateTable, base string, history map[string][]Transaction) []View {
	views := make([]View, 0, len(holdings))
	for _, h := range holdings {
		if h.Status == Archived {
			continue
		}
		var price Money
		if h.Symbol != "" {
			price = prices.Price(h.Symbol)
		}
		rate := rates.Resolve(h.Currency, base)
		views = append(views, ComputeView(h, price, rate, base, history[h.ID]))
	}
	return views
}
