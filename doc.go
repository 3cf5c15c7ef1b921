// Package networth implements a personal multi-currency net-worth tracker.
//
// The package is built around a small, pure valuation engine: a Holding plus
// a market snapshot (PriceTable, RateTable) plus, optionally, its full
// transaction history, is turned into a fully computed View: market value,
// a quick price-based P&L, a history-based P&L with a reconstructed
// weighted-average cost basis, and an aggregate over all holdings.
//
// Two accounting regimes coexist. Cash-like holdings (cash, pending items,
// liabilities, credit cards) are FX-exposed: their profit and loss comes
// from exchange-rate drift against a recorded historical rate. Price-exposed
// holdings (stocks, crypto, precious metals) gain and lose in their native
// currency first, and are converted for display only.
//
// The engine is deterministic and holds no state: every call is an
// independent snapshot, safe for concurrent use.
package networth
