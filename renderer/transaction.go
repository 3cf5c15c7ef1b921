package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/chiwei/networth"
)

const transactionsMarkdownTemplate = `# Transactions

| ID | Date | Holding | Type | Amount | Quantity | Rate | Note |
|:---|:---|:---|:---|---:|---:|---:|:---|
{{- range . }}
| {{ .ID }} | {{ .Date }} | {{ .HoldingID }} | {{ .Type }} | {{ .Amount.SignedString }} | {{ .QuantityChange }} | {{ .ExchangeRate }} | {{ .Note }} |
{{- end }}
`

// RenderTransactions renders a transaction log to a markdown table.
func RenderTransactions(txs []networth.Transaction) string {
	tmpl := template.Must(template.New("transactions").Parse(transactionsMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, txs); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
