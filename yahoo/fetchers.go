package yahoo

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the Yahoo Finance chart API.

// chartURL is the quote endpoint. The chart meta carries the latest trade
// price and the currency the symbol trades in.
//
//	{
//	  "chart": {
//	    "result": [
//	      {
//	        "meta": {
//	          "currency": "USD",
//	          "symbol": "AAPL",
//	          "regularMarketPrice": 229.35,
//	          ...
const chartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?range=1d&interval=1d"

// Quote is the latest trade for one Yahoo ticker.
type Quote struct {
	Symbol   string
	Price    decimal.Decimal
	Currency string
}

// normalizeTicker expands a bare symbol into the Yahoo tickers worth trying
// for its market. Taiwanese symbols trade on two boards (.TW listed, .TWO
// over the counter), so both are candidates; a symbol that already carries a
// market suffix is used as is.
func normalizeTicker(symbol, currency string) []string {
	if strings.Contains(symbol, ".") || strings.Contains(symbol, "=") || strings.Contains(symbol, "-") {
		return []string{symbol}
	}
	switch currency {
	case "TWD":
		return []string{symbol + ".TW", symbol + ".TWO"}
	case "JPY":
		return []string{symbol + ".T"}
	default:
		return []string{symbol}
	}
}

// forexSymbol maps a currency to its Yahoo USD-pair ticker.
func forexSymbol(currency string) string {
	if currency == "RMB" {
		// Yahoo quotes the onshore yuan.
		currency = "CNY"
	}
	return currency + "=X"
}

// fetchQuote returns the latest quote for one exact Yahoo ticker.
func fetchQuote(client *http.Client, ticker string) (Quote, error) {
	addr := fmt.Sprintf(chartURL, url.PathEscape(ticker))
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error in wget %q: %w", ticker, err)
	}
	price, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return Quote{}, fmt.Errorf("no price for %q: %w", ticker, err)
	}
	currency, err := jsonString(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		return Quote{}, fmt.Errorf("no currency for %q: %w", ticker, err)
	}
	return Quote{Symbol: ticker, Price: decimal.NewFromFloat(price), Currency: currency}, nil
}

// fetchSymbol tries each candidate ticker for a portfolio symbol until one
// quotes.
func fetchSymbol(client *http.Client, symbol, currency string) (Quote, error) {
	var lastErr error
	for _, ticker := range normalizeTicker(symbol, currency) {
		q, err := fetchQuote(client, ticker)
		if err == nil {
			return q, nil
		}
		lastErr = err
	}
	return Quote{}, fmt.Errorf("no quote for %q: %w", symbol, lastErr)
}

// fetchUSDRate returns the USD to currency rate through the forex ticker.
func fetchUSDRate(client *http.Client, currency string) (decimal.Decimal, error) {
	q, err := fetchQuote(client, forexSymbol(currency))
	if err != nil {
		return decimal.Zero, err
	}
	return q.Price, nil
}

// jsonFloat extracts one number from a decoded JSON document.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), err
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%q is not a number: %v", path, jval)
	}
	return val, nil
}

// jsonString extracts one string from a decoded JSON document.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", err
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return val, nil
}
