package yahoo

import (
	"encoding/json"
	"reflect"
	"testing"
)

func Test_normalizeTicker(t *testing.T) {
	testCases := []struct {
		symbol, currency string
		want             []string
	}{
		{"AAPL", "USD", []string{"AAPL"}},
		{"2330", "TWD", []string{"2330.TW", "2330.TWO"}},
		{"2330.TW", "TWD", []string{"2330.TW"}},
		{"7203", "JPY", []string{"7203.T"}},
		{"BTC-USD", "USD", []string{"BTC-USD"}},
		{"EUR=X", "EUR", []string{"EUR=X"}},
	}
	for _, tc := range testCases {
		got := normalizeTicker(tc.symbol, tc.currency)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("normalizeTicker(%q, %q) = %v, want %v", tc.symbol, tc.currency, got, tc.want)
		}
	}
}

func Test_forexSymbol(t *testing.T) {
	if got := forexSymbol("TWD"); got != "TWD=X" {
		t.Errorf("forexSymbol(TWD) = %q, want TWD=X", got)
	}
	if got := forexSymbol("RMB"); got != "CNY=X" {
		t.Errorf("forexSymbol(RMB) = %q, want CNY=X", got)
	}
}

const sampleChart = `{
  "chart": {
    "result": [
      {
        "meta": {
          "currency": "USD",
          "symbol": "AAPL",
          "exchangeName": "NMS",
          "regularMarketPrice": 229.35,
          "previousClose": 227.16
        },
        "timestamp": [1756404000],
        "indicators": {"quote": [{"close": [229.35]}]}
      }
    ],
    "error": null
  }
}`

func Test_chartExtraction(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(sampleChart), &jobj); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}

	price, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		t.Fatalf("jsonFloat() error = %v", err)
	}
	if price != 229.35 {
		t.Errorf("price = %v, want 229.35", price)
	}

	currency, err := jsonString(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		t.Fatalf("jsonString() error = %v", err)
	}
	if currency != "USD" {
		t.Errorf("currency = %q, want USD", currency)
	}

	if _, err := jsonFloat(jobj, "$.chart.result[0].meta.currency"); err == nil {
		t.Errorf("jsonFloat() on a string did not fail")
	}
}
