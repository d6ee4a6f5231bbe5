package ledger

import (
	"html"
	"strings"
)

// Table styling is inlined so the fragment renders identically in the live
// preview and in the exported PDF with no external stylesheet.
const (
	tableStyle  = "width: 100%; border-collapse: collapse; margin: 20px 0; font-size: 14px;"
	headStyle   = "border: 1px solid #ccc; padding: 8px; background-color: #f5f5f5; text-align: left;"
	cellStyle   = "border: 1px solid #ccc; padding: 8px;"
	numberStyle = "border: 1px solid #ccc; padding: 8px; text-align: right;"
)

// Table renders the ledger as a fixed-column HTML table fragment:
// description, quantity, unit price, line total, one row per item. Amounts
// are rounded to two places for display only.
func (l *Ledger) Table() string {
	var b strings.Builder

	b.WriteString(`<table style="` + tableStyle + `">`)
	b.WriteString(`<thead><tr>`)
	for _, h := range []string{"Descriere", "Cantitate", "Preț unitar", "Valoare"} {
		b.WriteString(`<th style="` + headStyle + `">` + h + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)

	for _, it := range l.items {
		b.WriteString(`<tr>`)
		b.WriteString(`<td style="` + cellStyle + `">` + html.EscapeString(it.Description) + `</td>`)
		b.WriteString(`<td style="` + numberStyle + `">` + it.Quantity.String() + `</td>`)
		b.WriteString(`<td style="` + numberStyle + `">` + Format(it.UnitPrice) + `</td>`)
		b.WriteString(`<td style="` + numberStyle + `">` + Format(it.LineTotal()) + `</td>`)
		b.WriteString(`</tr>`)
	}

	b.WriteString(`</tbody></table>`)
	return b.String()
}
