// Package yahoo refreshes market data from the public Yahoo Finance chart
// endpoint: live prices for the symbols a portfolio holds, and USD forex
// rates for the currencies it spans.
//
// Only USD pairs are ever fetched; cross rates between two non-USD
// currencies are derived by the rate table's pivot resolution.
package yahoo
