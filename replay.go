package networth

import (
	"slices"

	"github.com/shopspring/decimal"
)

// defaultRateEpsilon bounds how close a recorded exchange rate must be to
// 1.0 to be considered the untrustworthy default rather than a real quote.
var defaultRateEpsilon = decimal.NewFromFloat(1e-4)

// ReplayCostBasis reconstructs, from a holding's full transaction history,
// the base-currency cost of the quantity currently held.
//
// The stored book value only knows the native-currency cost; replaying the
// history recovers what was actually paid in base currency across
// possibly-varying historical exchange rates. Disposals remove cost
// proportionally to the quantity sold (weighted-average costing, not FIFO).
//
// For a foreign-denominated holding, an acquisition recorded at the default
// 1.0 exchange rate with no funding-source amount has no trustworthy cost:
// the whole replay aborts and returns ok=false, and the caller must fall
// back to the price-only track rather than report a fabricated historical
// P&L. An empty history also returns ok=false.
func ReplayCostBasis(transactions []Transaction, foreign bool, base string) (total Money, ok bool) {
	if len(transactions) == 0 {
		return Money{}, false
	}

	txs := slices.Clone(transactions)
	SortTransactions(txs)

	one := decimal.NewFromInt(1)
	currentBaseCost := decimal.Zero
	currentQty := decimal.Zero

	for _, tx := range txs {
		qc := tx.QuantityChange.value
		switch {
		case qc.IsPositive():
			if foreign && tx.ExchangeRate.Sub(one).Abs().LessThan(defaultRateEpsilon) && !tx.HasSource() {
				return Money{}, false
			}
			txBaseCost := tx.Amount.Amount().Abs().Mul(tx.ExchangeRate)
			currentBaseCost = currentBaseCost.Add(txBaseCost)
			currentQty = currentQty.Add(qc)
		case qc.IsNegative():
			if currentQty.IsPositive() {
				ratio := qc.Abs().Div(currentQty)
				currentBaseCost = currentBaseCost.Sub(currentBaseCost.Mul(ratio))
				currentQty = currentQty.Add(qc)
			}
		}
	}

	return M(currentBaseCost, base), true
}
