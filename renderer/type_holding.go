package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/chiwei/networth"
)

// HoldingDetail is the per-holding report data: the computed view plus the
// holding's transaction log.
type HoldingDetail struct {
	networth.View
	Transactions []networth.Transaction `json:"transactions,omitempty"`
}

// NewHoldingDetail builds the detail report data for one view.
func NewHoldingDetail(v networth.View, txs []networth.Transaction) *HoldingDetail {
	return &HoldingDetail{View: v, Transactions: txs}
}

// holdingMarkdownTemplate is the template for rendering a HoldingDetail in Markdown.
const holdingMarkdownTemplate = `# {{ if .Name }}{{ .Name }}{{ else }}{{ .ID }}{{ end }}

{{ .Kind }} denominated in {{ .Currency }}{{ if .Symbol }}, ticker {{ .Symbol }}{{ end }}.

{{ if .Rate.IsResolved -}}
Market Value: **{{ .BaseValue }}**
{{- if not .MarketPrice.IsZero }} at {{ .MarketPrice }} per unit{{ end }}

P&L: {{ .PnL.SignedString }} ({{ .Return.SignedString }})
{{- if .Historical }}

## Lifetime

| Cost | P&L | Return |{{ if .Historical.AvgRate.IsResolved }} Avg. Rate |{{ end }}
|---:|---:|---:|{{ if .Historical.AvgRate.IsResolved }}---:|{{ end }}
| {{ .Historical.Cost }} | {{ .Historical.PnL.SignedString }} | {{ .Historical.Return.SignedString }} |{{ if .Historical.AvgRate.IsResolved }} {{ .Historical.AvgRate }} |{{ end }}
{{- end }}
{{- else -}}
Native Value: {{ .NativeValue }}

No conversion rate to report a base-currency value.
{{- end }}

{{- if .Transactions }}

## Transactions

| Date | Type | Amount | Quantity | Note |
|:---|:---|---:|---:|:---|
{{- range .Transactions }}
| {{ .Date }} | {{ .Type }} | {{ .Amount.SignedString }} | {{ .QuantityChange }} | {{ .Note }} |
{{- end }}
{{- end }}
`

// RenderHoldingDetail renders the HoldingDetail struct to a markdown string.
func RenderHoldingDetail(d *HoldingDetail) string {
	tmpl := template.Must(template.New("holding").Parse(holdingMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, d); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
