package networth

// Totals are the portfolio-level figures reduced from individual views.
type Totals struct {
	// NetWorth sums the base market value of every valued view whose holding
	// is flagged for inclusion.
	NetWorth Money

	// PnL sums the quick-track P&L over the same filtered set. The quick
	// track feeds portfolio totals for every holding, so the sum is never a
	// mix of quick and historical figures.
	PnL Money

	// Cost is derived as NetWorth - PnL rather than summed independently, so
	// Return stays internally consistent.
	Cost   Money
	Return Percent

	// PendingNet sums pending receivables/payables regardless of the
	// net-worth inclusion flag; pending items are informational.
	PendingNet Money

	// Unvalued lists the IDs of holdings without a resolvable conversion to
	// the base currency. Their figures are excluded from every sum above,
	// not counted as zero.
	Unvalued []string
}

// Aggregate reduces computed views to portfolio totals in the base currency.
func Aggregate(views []View, base string) Totals {
	t := Totals{
		NetWorth:   M(0, base),
		PnL:        M(0, base),
		PendingNet: M(0, base),
	}

	for _, v := range views {
		if !v.Rate.IsResolved() {
			t.Unvalued = append(t.Unvalued, v.ID)
			continue
		}
		if v.Kind == Pending {
			t.PendingNet = t.PendingNet.Add(v.BaseValue)
		}
		if !v.InNetWorth {
			continue
		}
		t.NetWorth = t.NetWorth.Add(v.BaseValue)
		t.PnL = t.PnL.Add(v.PnL)
	}

	t.Cost = t.NetWorth.Sub(t.PnL)
	if !t.Cost.IsZero() {
		t.Return = Percent(t.PnL.Amount().Div(t.Cost.Amount().Abs()).InexactFloat64() * 100)
	}
	return t
}
