package networth

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAggregate(t *testing.T) {
	holdings := []Holding{
		{
			ID: "twd-cash", Kind: Cash, Status: Active, Currency: "TWD",
			Quantity: Q(100000), BookValue: TWD(100000), InNetWorth: true,
		},
		{
			ID: "us-stock", Kind: Stock, Status: Active, Currency: "USD", Symbol: "ACME",
			Quantity: Q(10), Cost: NewUnitCost(USD(100)), BookValue: USD(1000), InNetWorth: true,
		},
		{
			ID: "tax-refund", Kind: Pending, Status: Active, Currency: "TWD",
			Quantity: Q(5000), BookValue: TWD(5000), InNetWorth: false,
		},
		{
			ID: "eur-cash", Kind: Cash, Status: Active, Currency: "EUR",
			Quantity: Q(100), BookValue: TWD(3300), InNetWorth: true,
		},
		{
			ID: "car-loan", Kind: Liability, Status: Active, Currency: "TWD",
			Quantity: Q(-20000), BookValue: TWD(-20000), InNetWorth: true,
		},
	}

	rates := NewRateTable("USD")
	rates.Set("USD", "TWD", decimal.NewFromFloat(32), time.Now())
	// EUR is deliberately unquoted.

	prices := NewPriceTable()
	prices.Set("ACME", USD(120), time.Now())

	views := ComputeViews(holdings, prices, rates, "TWD", nil)
	got := Aggregate(views, "TWD")

	// 100000 cash + 38400 stock - 20000 loan; the pending item and the
	// unvalued EUR position stay out.
	if want := TWD(118400); !got.NetWorth.Equal(want) {
		t.Errorf("NetWorth = %v, want %v", got.NetWorth, want)
	}
	// Only the stock moved: 200 USD of gain at 32.
	if want := TWD(6400); !got.PnL.Equal(want) {
		t.Errorf("PnL = %v, want %v", got.PnL, want)
	}
	if want := TWD(112000); !got.Cost.Equal(want) {
		t.Errorf("Cost = %v, want %v", got.Cost, want)
	}
	if want := Percent(6400.0 / 112000.0 * 100); !got.Return.Equal(want) {
		t.Errorf("Return = %v, want %v", got.Return, want)
	}
	if want := TWD(5000); !got.PendingNet.Equal(want) {
		t.Errorf("PendingNet = %v, want %v", got.PendingNet, want)
	}
	if len(got.Unvalued) != 1 || got.Unvalued[0] != "eur-cash" {
		t.Errorf("Unvalued = %v, want [eur-cash]", got.Unvalued)
	}
}

func TestAggregate_PendingCountsDespiteExclusion(t *testing.T) {
	views := []View{
		{
			Holding:   Holding{ID: "p1", Kind: Pending, InNetWorth: false},
			Rate:      Parity("TWD"),
			BaseValue: TWD(5000),
		},
		{
			Holding:   Holding{ID: "p2", Kind: Pending, InNetWorth: true},
			Rate:      Parity("TWD"),
			BaseValue: TWD(-2000),
			PnL:       TWD(0),
		},
	}

	got := Aggregate(views, "TWD")

	// Both legs net out in PendingNet regardless of the inclusion flag.
	if want := TWD(3000); !got.PendingNet.Equal(want) {
		t.Errorf("PendingNet = %v, want %v", got.PendingNet, want)
	}
	// Only the included one reaches net worth.
	if want := TWD(-2000); !got.NetWorth.Equal(want) {
		t.Errorf("NetWorth = %v, want %v", got.NetWorth, want)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, "TWD")
	if !got.NetWorth.IsZero() || !got.PnL.IsZero() || !got.Cost.IsZero() {
		t.Errorf("Aggregate(nil) = %+v, want all-zero totals", got)
	}
	if !got.Return.Equal(0) {
		t.Errorf("Return = %v, want zero over zero cost", got.Return)
	}
}
