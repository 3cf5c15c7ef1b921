package networth

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// TWD is a helper for test to create new-taiwan-dollar money from const
func TWD(v float64) Money { return M(v, "TWD") }

// JPY is a helper for test to create yen money from const
func JPY(v float64) Money { return M(v, "JPY") }
