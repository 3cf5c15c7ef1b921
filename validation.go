package networth

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// ValidateCurrency checks that a currency code is a known ISO-4217 code.
func ValidateCurrency(code string) error {
	if code == "" {
		return fmt.Errorf("currency code is empty")
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}
