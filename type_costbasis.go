package networth

import "fmt"

// costBasisKind discriminates the two meanings a stored cost can have.
type costBasisKind int

const (
	noCost costBasisKind = iota
	// unitCost is a per-unit purchase price in the holding's native currency
	// (price-exposed kinds).
	unitCost
	// historicalRate is the average exchange rate, native currency to the
	// ledger's reference currency, at which a cash-like holding was funded.
	historicalRate
)

// CostBasis records what a holding cost, with an explicit meaning instead of
// one overloaded number: a native-currency unit cost for price-exposed
// holdings, or a historical funding exchange rate for cash-like holdings.
// The zero value means "no cost recorded".
type CostBasis struct {
	kind costBasisKind
	unit Money // set when kind == unitCost
	rate Rate  // set when kind == historicalRate
}

// NewUnitCost returns the cost basis of a price-exposed holding: the average
// price paid per unit, in the holding's native currency.
func NewUnitCost(perUnit Money) CostBasis {
	return CostBasis{kind: unitCost, unit: perUnit}
}

// NewHistoricalRate returns the cost basis of a cash-like holding: the
// average exchange rate (native to reference currency) at funding time.
func NewHistoricalRate(r Rate) CostBasis {
	return CostBasis{kind: historicalRate, rate: r}
}

// UnitCost returns the per-unit cost, and whether this basis holds one.
func (c CostBasis) UnitCost() (Money, bool) {
	return c.unit, c.kind == unitCost
}

// HistoricalRate returns the funding rate, and whether this basis holds one.
func (c CostBasis) HistoricalRate() (Rate, bool) {
	return c.rate, c.kind == historicalRate
}

func (c CostBasis) IsZero() bool { return c.kind == noCost }

func (c CostBasis) String() string {
	switch c.kind {
	case unitCost:
		return fmt.Sprintf("%s/unit", c.unit)
	case historicalRate:
		return c.rate.String()
	default:
		return "none"
	}
}

func (c CostBasis) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	switch c.kind {
	case unitCost:
		w.Append("unitCost", c.unit.Amount())
		w.Optional("currency", c.unit.Currency())
	case historicalRate:
		w.Append("historicalRate", c.rate.Value())
		w.Optional("reference", c.rate.To())
	}
	return w.MarshalJSON()
}
