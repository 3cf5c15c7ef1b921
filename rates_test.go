package networth

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestRateTable() *RateTable {
	t := NewRateTable("USD")
	now := time.Now()
	t.Set("USD", "TWD", decimal.NewFromFloat(32.5), now)
	t.Set("USD", "JPY", decimal.NewFromFloat(150), now)
	t.Set("EUR", "USD", decimal.NewFromFloat(1.1), now)
	return t
}

func TestRateTable_Resolve(t *testing.T) {
	table := newTestRateTable()

	testCases := []struct {
		name     string
		from, to string
		want     float64
	}{
		{name: "same currency is exact parity", from: "TWD", to: "TWD", want: 1},
		{name: "direct quote", from: "USD", to: "TWD", want: 32.5},
		{name: "inverted quote", from: "TWD", to: "USD", want: 1 / 32.5},
		{name: "direct quote the other pair", from: "EUR", to: "USD", want: 1.1},
		{name: "cross rate both legs inverted", from: "TWD", to: "JPY", want: 150 / 32.5},
		{name: "cross rate one direct leg", from: "EUR", to: "JPY", want: 1.1 * 150},
		{name: "cross rate into quote currency", from: "EUR", to: "TWD", want: 1.1 * 32.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := table.Resolve(tc.from, tc.to)
			if !got.IsResolved() {
				t.Fatalf("Resolve(%s, %s) is unresolved, want %v", tc.from, tc.to, tc.want)
			}
			if g := got.Value().InexactFloat64(); math.Abs(g-tc.want) > 1e-9 {
				t.Errorf("Resolve(%s, %s) = %v, want %v", tc.from, tc.to, g, tc.want)
			}
		})
	}
}

func TestRateTable_Resolve_Unresolved(t *testing.T) {
	table := newTestRateTable()

	// GBP is quoted nowhere, not even against the pivot.
	got := table.Resolve("TWD", "GBP")
	if got.IsResolved() {
		t.Errorf("Resolve(TWD, GBP) = %v, want unresolved", got)
	}

	// An empty table resolves nothing but identity.
	empty := NewRateTable("")
	if got := empty.Resolve("EUR", "TWD"); got.IsResolved() {
		t.Errorf("empty table Resolve(EUR, TWD) = %v, want unresolved", got)
	}
	if got := empty.Resolve("EUR", "EUR"); !got.IsParity() {
		t.Errorf("empty table Resolve(EUR, EUR) = %v, want parity", got)
	}
}

func TestRateTable_Resolve_ZeroQuoteIsNotInvertible(t *testing.T) {
	table := NewRateTable("USD")
	table.Set("USD", "XAU", decimal.Zero, time.Now())

	if got := table.Resolve("XAU", "USD"); got.IsResolved() {
		t.Errorf("Resolve(XAU, USD) over a zero quote = %v, want unresolved", got)
	}
}

func TestRate_ConvertUnresolvedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Convert on an unresolved rate did not panic")
		}
	}()
	Unresolved("EUR", "TWD").Convert(EUR(100))
}

func TestRate_Inverse(t *testing.T) {
	r := NewRate("USD", "TWD", 32.0)
	inv := r.Inverse()
	if inv.From() != "TWD" || inv.To() != "USD" {
		t.Errorf("Inverse() direction = %s->%s, want TWD->USD", inv.From(), inv.To())
	}
	if g, w := inv.Value().InexactFloat64(), 1/32.0; math.Abs(g-w) > 1e-12 {
		t.Errorf("Inverse() value = %v, want %v", g, w)
	}
	if Unresolved("A", "B").Inverse().IsResolved() {
		t.Errorf("Inverse() of an unresolved rate is resolved")
	}
}

func TestRate_Equal(t *testing.T) {
	if !NewRate("USD", "TWD", 32.0).Equal(NewRate("USD", "TWD", 32.0)) {
		t.Errorf("identical rates are not Equal")
	}
	// Same factor between different currency pairs is a different rate.
	if NewRate("USD", "TWD", 32.0).Equal(NewRate("EUR", "JPY", 32.0)) {
		t.Errorf("USD->TWD 32 equals EUR->JPY 32")
	}
	if NewRate("USD", "TWD", 32.0).Equal(NewRate("TWD", "USD", 32.0)) {
		t.Errorf("Equal ignores the rate direction")
	}
	if Parity("USD").Equal(Unresolved("USD", "USD")) {
		t.Errorf("parity equals unresolved")
	}
}

func TestRateTable_Staleness(t *testing.T) {
	now := time.Now()
	table := NewRateTable("USD")
	table.Set("USD", "TWD", decimal.NewFromFloat(32.5), now.Add(-45*time.Minute))
	table.Set("USD", "EUR", decimal.NewFromFloat(0.9), now.Add(-5*time.Minute))

	if table.IsFresh("USD", "TWD", now, RateStaleAfter) {
		t.Errorf("IsFresh(USD, TWD) = true for a 45min old quote")
	}
	if !table.IsFresh("USD", "EUR", now, RateStaleAfter) {
		t.Errorf("IsFresh(USD, EUR) = false for a 5min old quote")
	}
	if table.IsFresh("USD", "GBP", now, RateStaleAfter) {
		t.Errorf("IsFresh(USD, GBP) = true for an absent quote")
	}

	stale := table.Stale(now, RateStaleAfter)
	if len(stale) != 1 || stale[0].To != "TWD" {
		t.Errorf("Stale() = %v, want the single USD-TWD entry", stale)
	}

	// Staleness gates refresh only: a stale quote still resolves.
	if got := table.Resolve("USD", "TWD"); !got.IsResolved() {
		t.Errorf("Resolve(USD, TWD) over a stale quote is unresolved")
	}
}
