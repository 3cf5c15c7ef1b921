package networth

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a conversion factor between two currencies: one unit of From is
// worth Value units of To.
//
// The zero value is unresolved. An unresolved rate is distinct from parity:
// 1.0 only ever means the two currencies genuinely trade one for one, never
// "no data available". Callers must check IsResolved before converting.
type Rate struct {
	from, to string
	value    decimal.Decimal
	resolved bool
}

// NewRate returns a resolved rate from one currency to another.
func NewRate[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](from, to string, value T) Rate {
	return Rate{from: from, to: to, value: newDecimal(value), resolved: true}
}

// Parity returns the identity rate for a currency.
func Parity(currency string) Rate {
	return NewRate(currency, currency, 1)
}

// Unresolved returns the explicit "no known conversion" marker between two
// currencies.
func Unresolved(from, to string) Rate {
	return Rate{from: from, to: to}
}

func (r Rate) From() string             { return r.from }
func (r Rate) To() string               { return r.to }
func (r Rate) IsResolved() bool         { return r.resolved }
func (r Rate) Value() decimal.Decimal   { return r.value }
func (r Rate) IsParity() bool           { return r.resolved && r.value.Equal(decimal.NewFromInt(1)) }

// Equal reports whether two rates are the same conversion: same endpoints,
// same resolution state, same value.
func (r Rate) Equal(s Rate) bool {
	return r.from == s.from && r.to == s.to && r.resolved == s.resolved && r.value.Equal(s.value)
}

// Inverse returns the rate in the opposite direction. An unresolved rate
// stays unresolved.
func (r Rate) Inverse() Rate {
	if !r.resolved || r.value.IsZero() {
		return Unresolved(r.to, r.from)
	}
	return Rate{from: r.to, to: r.from, value: decimal.NewFromInt(1).Div(r.value), resolved: true}
}

// Convert converts an amount denominated in the rate's From currency into
// its To currency. Converting with an unresolved rate panics: the caller is
// responsible for checking IsResolved first, so that "unknown" can never be
// silently applied as a factor of 1.
func (r Rate) Convert(m Money) Money {
	if !r.resolved {
		panic(fmt.Sprintf("converting with unresolved rate %s->%s", r.from, r.to))
	}
	if m.cur != "" && r.from != "" && m.cur != r.from {
		panic(fmt.Sprintf("rate %s->%s cannot convert %s", r.from, r.to, m.cur))
	}
	return Money{value: m.value.Mul(r.value), cur: r.to}
}

// Sub returns the drift r minus s as a plain quantity. Both rates must be
// resolved.
func (r Rate) Sub(s Rate) Quantity {
	return Quantity{value: r.value.Sub(s.value)}
}

func (r Rate) String() string {
	if !r.resolved {
		return fmt.Sprintf("%s->%s (unresolved)", r.from, r.to)
	}
	return fmt.Sprintf("%s->%s %s", r.from, r.to, r.value.String())
}

func (r Rate) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("from", r.from)
	w.Optional("to", r.to)
	if r.resolved {
		w.Append("rate", r.value)
	}
	return w.MarshalJSON()
}
