// Package renderer turns computed portfolio figures into markdown reports.
// Numbers are carried with their exact types (Money, Quantity, Percent) so
// the templates can use their built-in renderers (SignedString etc.)
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/chiwei/networth"
)

// Summary is the portfolio-level report data in json-friendly form.
type Summary struct {
	// Date of the valuation snapshot.
	Date networth.Date `json:"date"`
	// BaseCurrency every total is expressed in.
	BaseCurrency string `json:"baseCurrency"`
	// NetWorth is the filtered sum of base market values.
	NetWorth networth.Money `json:"netWorth"`
	// PnL and Return are the portfolio quick-track figures.
	PnL    networth.Money   `json:"pnl"`
	Return networth.Percent `json:"return"`
	// Cost is the derived total cost basis.
	Cost networth.Money `json:"cost"`
	// PendingNet is the informational net of pending items.
	PendingNet networth.Money `json:"pendingNet"`
	// Holdings lists one row per valued holding.
	Holdings []SummaryHolding `json:"holdings"`
	// Unvalued lists holdings without a conversion to the base currency.
	Unvalued []string `json:"unvalued,omitempty"`
}

// SummaryHolding is a single row of the summary table.
type SummaryHolding struct {
	Name        string            `json:"name"`
	Kind        networth.Kind     `json:"kind"`
	Quantity    networth.Quantity `json:"quantity"`
	NativeValue networth.Money    `json:"nativeValue"`
	BaseValue   networth.Money    `json:"baseValue"`
	PnL         networth.Money    `json:"pnl"`
	Return      networth.Percent  `json:"return"`
}

// NewSummary builds the summary report data from computed views and their
// aggregate. Unvalued holdings are kept out of the table and surfaced in the
// warning list instead.
func NewSummary(on networth.Date, base string, views []networth.View, totals networth.Totals) *Summary {
	s := &Summary{
		Date:         on,
		BaseCurrency: base,
		NetWorth:     totals.NetWorth,
		PnL:          totals.PnL,
		Return:       totals.Return,
		Cost:         totals.Cost,
		PendingNet:   totals.PendingNet,
		Holdings:     make([]SummaryHolding, 0, len(views)),
		Unvalued:     totals.Unvalued,
	}
	for _, v := range views {
		if !v.Rate.IsResolved() {
			continue
		}
		name := v.Name
		if name == "" {
			name = v.ID
		}
		s.Holdings = append(s.Holdings, SummaryHolding{
			Name:        name,
			Kind:        v.Kind,
			Quantity:    v.Quantity,
			NativeValue: v.NativeValue,
			BaseValue:   v.BaseValue,
			PnL:         v.PnL,
			Return:      v.Return,
		})
	}
	return s
}

// summaryMarkdownTemplate is the template for rendering a Summary report in Markdown.
const summaryMarkdownTemplate = `# Net Worth on {{ .Date }}

Net Worth: **{{ .NetWorth }}**

P&L: {{ .PnL.SignedString }} ({{ .Return.SignedString }}) over a cost basis of {{ .Cost }}.
{{- if not .PendingNet.IsZero }}

Pending items net: {{ .PendingNet.SignedString }} (informational, not part of net worth)
{{- end }}

{{- if .Holdings }}

## Holdings

| Holding | Kind | Quantity | Native Value | Value | P&L | Return |
|:---|:---|---:|---:|---:|---:|---:|
{{- range .Holdings }}
| {{ .Name }} | {{ .Kind }} | {{ .Quantity }} | {{ .NativeValue }} | {{ .BaseValue }} | {{ .PnL.SignedString }} | {{ .Return.SignedString }} |
{{- end }}
{{- end }}

{{- if .Unvalued }}

Unvalued (no conversion rate to {{ .BaseCurrency }}):
{{- range .Unvalued }}
- {{ . }}
{{- end }}
{{- end }}
`

// RenderSummary renders the Summary struct to a markdown string.
func RenderSummary(s *Summary) string {
	tmpl := template.Must(template.New("summary").Parse(summaryMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, s); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
