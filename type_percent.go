package networth

import (
	"fmt"
	"math"
)

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// IsInf reports the "positive gain over zero cost" case.
func (p Percent) IsInf() bool { return math.IsInf(float64(p), 1) }

func (p Percent) String() string {
	if p.IsInf() {
		return "+inf%"
	}
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	if p.IsInf() {
		return "+inf%"
	}
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
