package networth

import (
	"testing"
	"time"
)

func eurSavings() Holding {
	return Holding{
		ID:         "eur-savings",
		Name:       "EUR Savings",
		Kind:       Cash,
		Status:     Active,
		Currency:   "EUR",
		Quantity:   Q(10000),
		Cost:       NewHistoricalRate(NewRate("EUR", "TWD", 33.0)),
		BookValue:  TWD(330000),
		InNetWorth: true,
	}
}

func usStock() Holding {
	return Holding{
		ID:         "us-stock",
		Name:       "US Stock",
		Kind:       Stock,
		Status:     Active,
		Currency:   "USD",
		Symbol:     "ACME",
		Quantity:   Q(15),
		Cost:       NewUnitCost(USD(110)),
		BookValue:  USD(1650),
		InNetWorth: true,
	}
}

func TestComputeView_CashDrift(t *testing.T) {
	h := eurSavings()
	v := ComputeView(h, Money{}, NewRate("EUR", "TWD", 35.0), "TWD", nil)

	if want := EUR(10000); !v.NativeValue.Equal(want) {
		t.Errorf("NativeValue = %v, want %v", v.NativeValue, want)
	}
	if want := TWD(350000); !v.BaseValue.Equal(want) {
		t.Errorf("BaseValue = %v, want %v", v.BaseValue, want)
	}
	// Drift of 2 TWD per EUR over 10000 EUR.
	if want := TWD(20000); !v.PnL.Equal(want) {
		t.Errorf("PnL = %v, want %v", v.PnL, want)
	}
	if want := Percent(2.0 / 33.0 * 100); !v.Return.Equal(want) {
		t.Errorf("Return = %v, want %v", v.Return, want)
	}
	if v.Historical != nil {
		t.Errorf("Historical = %v without a supplied history, want nil", v.Historical)
	}
}

func TestComputeView_CashSameCurrency(t *testing.T) {
	h := Holding{
		ID:         "twd-cash",
		Kind:       Cash,
		Status:     Active,
		Currency:   "TWD",
		Quantity:   Q(100000),
		BookValue:  TWD(100000),
		InNetWorth: true,
	}

	// No rate needed: the base currency converts to itself.
	v := ComputeView(h, Money{}, Unresolved("TWD", "TWD"), "TWD", nil)

	if !v.Rate.IsParity() {
		t.Fatalf("Rate = %v, want parity", v.Rate)
	}
	if want := TWD(100000); !v.BaseValue.Equal(want) {
		t.Errorf("BaseValue = %v, want %v", v.BaseValue, want)
	}
	if !v.PnL.IsZero() {
		t.Errorf("PnL = %v, want zero for same-currency cash", v.PnL)
	}
	if !v.Return.Equal(0) {
		t.Errorf("Return = %v, want zero", v.Return)
	}
}

func TestComputeView_PriceMovement(t *testing.T) {
	h := usStock()
	rate := NewRate("USD", "TWD", 32.0)
	v := ComputeView(h, USD(120), rate, "TWD", nil)

	if want := USD(120); !v.MarketPrice.Equal(want) {
		t.Errorf("MarketPrice = %v, want %v", v.MarketPrice, want)
	}
	if want := USD(1800); !v.NativeValue.Equal(want) {
		t.Errorf("NativeValue = %v, want %v", v.NativeValue, want)
	}
	if want := TWD(57600); !v.BaseValue.Equal(want) {
		t.Errorf("BaseValue = %v, want %v", v.BaseValue, want)
	}
	// 150 USD of native price gain, displayed in base.
	if want := TWD(4800); !v.PnL.Equal(want) {
		t.Errorf("PnL = %v, want %v", v.PnL, want)
	}
	if want := Percent(150.0 / 1650.0 * 100); !v.Return.Equal(want) {
		t.Errorf("Return = %v, want %v", v.Return, want)
	}
}

func TestComputeView_HistoricalTrack(t *testing.T) {
	h := usStock()
	txs := []Transaction{
		buyTx(NewDate(2025, time.January, 10), USD(-1000), 10, 32.0), // 32000 TWD
		buyTx(NewDate(2025, time.March, 3), USD(-650), 5, 31.0),      // 20150 TWD
	}

	v := ComputeView(h, USD(120), NewRate("USD", "TWD", 32.0), "TWD", txs)

	if v.Historical == nil {
		t.Fatalf("Historical = nil, want the replay-backed track")
	}
	if want := TWD(52150); !v.Historical.Cost.Equal(want) {
		t.Errorf("Historical.Cost = %v, want %v", v.Historical.Cost, want)
	}
	if want := TWD(5450); !v.Historical.PnL.Equal(want) {
		t.Errorf("Historical.PnL = %v, want %v", v.Historical.PnL, want)
	}
	if want := Percent(5450.0 / 52150.0 * 100); !v.Historical.Return.Equal(want) {
		t.Errorf("Historical.Return = %v, want %v", v.Historical.Return, want)
	}
	if !v.Historical.AvgRate.IsResolved() {
		t.Fatalf("Historical.AvgRate is unresolved")
	}
	if want := Percent(52150.0 / 1650.0); !Percent(v.Historical.AvgRate.Value().InexactFloat64()).Equal(want) {
		t.Errorf("Historical.AvgRate = %v, want %v", v.Historical.AvgRate, want)
	}

	// The quick track is untouched by the history.
	if want := TWD(4800); !v.PnL.Equal(want) {
		t.Errorf("PnL = %v, want %v", v.PnL, want)
	}
}

func TestComputeView_UntrustedHistoryDropsTrack(t *testing.T) {
	h := usStock()
	txs := []Transaction{
		buyTx(NewDate(2025, time.January, 10), USD(-1000), 10, 1.0),
	}

	v := ComputeView(h, USD(120), NewRate("USD", "TWD", 32.0), "TWD", txs)

	if v.Historical != nil {
		t.Errorf("Historical = %v over an untrusted history, want nil", v.Historical)
	}
	// The quick track survives.
	if want := TWD(4800); !v.PnL.Equal(want) {
		t.Errorf("PnL = %v, want %v", v.PnL, want)
	}
}

func TestComputeView_MissingPriceFallsBackToBook(t *testing.T) {
	h := usStock()
	v := ComputeView(h, Money{}, NewRate("USD", "TWD", 32.0), "TWD", nil)

	if !v.MarketPrice.IsZero() {
		t.Errorf("MarketPrice = %v, want zero to keep the gap visible", v.MarketPrice)
	}
	if want := USD(1650); !v.NativeValue.Equal(want) {
		t.Errorf("NativeValue = %v, want book value %v", v.NativeValue, want)
	}
	if want := TWD(52800); !v.BaseValue.Equal(want) {
		t.Errorf("BaseValue = %v, want %v", v.BaseValue, want)
	}
	if !v.PnL.IsZero() {
		t.Errorf("PnL = %v, want zero when valued at cost", v.PnL)
	}
}

func TestComputeView_ForeignCurrencyQuoteIgnored(t *testing.T) {
	h := usStock()
	// A TWD quote cannot price a USD-declared holding: same fallback as a
	// missing quote, and no panic on conversion.
	v := ComputeView(h, TWD(3800), NewRate("USD", "TWD", 32.0), "TWD", nil)

	if !v.MarketPrice.IsZero() {
		t.Errorf("MarketPrice = %v, want zero for a quote in the wrong currency", v.MarketPrice)
	}
	if want := USD(1650); !v.NativeValue.Equal(want) {
		t.Errorf("NativeValue = %v, want book value %v", v.NativeValue, want)
	}
	if want := TWD(52800); !v.BaseValue.Equal(want) {
		t.Errorf("BaseValue = %v, want %v", v.BaseValue, want)
	}
}

func TestComputeView_HistoricalTrack_GainOverZeroCost(t *testing.T) {
	// Granted shares: units acquired for nothing. The lifetime cost is zero
	// and any positive value is an infinite return.
	h := Holding{
		ID:         "grant",
		Kind:       Stock,
		Status:     Active,
		Currency:   "USD",
		Symbol:     "ACME",
		Quantity:   Q(10),
		BookValue:  USD(0),
		InNetWorth: true,
	}
	txs := []Transaction{
		buyTx(NewDate(2025, time.January, 10), USD(0), 10, 32.0),
	}

	v := ComputeView(h, USD(120), NewRate("USD", "TWD", 32.0), "TWD", txs)

	if v.Historical == nil {
		t.Fatalf("Historical = nil, want the replay-backed track")
	}
	if want := TWD(0); !v.Historical.Cost.Equal(want) {
		t.Errorf("Historical.Cost = %v, want %v", v.Historical.Cost, want)
	}
	if want := TWD(38400); !v.Historical.PnL.Equal(want) {
		t.Errorf("Historical.PnL = %v, want %v", v.Historical.PnL, want)
	}
	if !v.Historical.Return.IsInf() {
		t.Errorf("Historical.Return = %v, want +inf for a gain over zero cost", v.Historical.Return)
	}
}

func TestComputeView_UnresolvedRate(t *testing.T) {
	h := eurSavings()
	v := ComputeView(h, Money{}, Unresolved("EUR", "TWD"), "TWD", nil)

	if v.Rate.IsResolved() {
		t.Fatalf("Rate = %v, want unresolved", v.Rate)
	}
	// No base figure is fabricated, not even at parity.
	if !v.BaseValue.IsZero() || v.BaseValue.Currency() != "" {
		t.Errorf("BaseValue = %v, want empty", v.BaseValue)
	}
	if !v.PnL.IsZero() {
		t.Errorf("PnL = %v, want empty", v.PnL)
	}
	if v.Historical != nil {
		t.Errorf("Historical = %v, want nil", v.Historical)
	}
	// The native side is still known.
	if want := EUR(10000); !v.NativeValue.Equal(want) {
		t.Errorf("NativeValue = %v, want %v", v.NativeValue, want)
	}
}

func TestComputeViews_SkipsArchived(t *testing.T) {
	live := eurSavings()
	gone := usStock()
	gone.Status = Archived

	rates := NewRateTable("USD")
	rates.Set("EUR", "TWD", newDecimal(35.0), time.Now())

	views := ComputeViews([]Holding{live, gone}, NewPriceTable(), rates, "TWD", nil)
	if len(views) != 1 {
		t.Fatalf("ComputeViews() returned %d views, want 1", len(views))
	}
	if views[0].ID != "eur-savings" {
		t.Errorf("ComputeViews() kept %q, want eur-savings", views[0].ID)
	}
}
