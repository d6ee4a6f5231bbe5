// Package render composes sanitized template content, substituted variables,
// the ledger table, and the branding overlay into a single layout-ready HTML
// fragment.
//
// This package is the sole producer of the HTML consumed by both the live
// preview and the PDF exporter. Styles are inlined throughout so the fragment
// renders identically wherever it is interpreted.
package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/diewo77/docugen/internal/branding"
	"github.com/diewo77/docugen/internal/engine"
	"github.com/diewo77/docugen/internal/errs"
	"github.com/diewo77/docugen/internal/ledger"
	"github.com/diewo77/docugen/internal/models"
	"github.com/diewo77/docugen/internal/sanitize"
)

const defaultTitleColor = "#0284c7"

// Input carries everything one render needs. Ledger is required for invoice
// category templates; Overlay and LogoURL are optional.
type Input struct {
	Name     string
	Category models.TemplateCategory
	Content  string
	Values   map[string]string

	Ledger  *ledger.Ledger
	Overlay branding.Overlay
	LogoURL string

	TitleColor  string
	GeneratedAt time.Time
}

// Document renders the full HTML fragment for a template and its values.
// Missing variable values never fail a render; their tokens stay visible in
// the output. An empty template content fails with ErrRender.
func Document(in Input) (string, error) {
	if strings.TrimSpace(in.Content) == "" {
		return "", fmt.Errorf("%w: template content is empty", errs.ErrRender)
	}

	body := sanitize.Clean(in.Content)

	// Reserved tokens are resolved by the renderer, before user variables,
	// so caller-supplied values can never override them.
	if in.Category == models.CategoryInvoice {
		if in.Ledger == nil {
			return "", fmt.Errorf("%w: invoice template requires a ledger", errs.ErrRender)
		}
		totals := in.Ledger.Totals()
		body = engine.Substitute(body, map[string]string{
			models.TokenLedgerTable: in.Ledger.Table(),
			models.TokenSubtotal:    ledger.Format(totals.Subtotal),
			models.TokenTax:         ledger.Format(totals.Tax),
			models.TokenGrandTotal:  ledger.Format(totals.Total),
		})
	} else if in.LogoURL != "" {
		body = engine.Substitute(body, map[string]string{
			models.TokenLogo: in.Overlay.HTML(in.LogoURL),
		})
	}

	body = engine.Substitute(body, in.Values)

	return wrap(in, body), nil
}

// wrap applies the fixed document chrome: centered uppercase title, the
// branding overlay (outside the content for non-token placements), a
// two-column signature block, and a generation-date footer.
func wrap(in Input, body string) string {
	titleColor := in.TitleColor
	if titleColor == "" {
		titleColor = defaultTitleColor
	}

	var b strings.Builder

	// Invoice templates have no {logo_firma} token, so their overlay is
	// placed by the chrome instead: background variants behind the text
	// layer, foreground variants above the title.
	chromeOverlay := in.LogoURL != "" && in.Category == models.CategoryInvoice

	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 40px; max-width: 800px; margin: 0 auto; line-height: 1.6; position: relative;">`)

	if chromeOverlay && in.Overlay.Background {
		b.WriteString(in.Overlay.HTML(in.LogoURL))
	}

	b.WriteString(`<div style="position: relative; z-index: 10;">`)

	if chromeOverlay && !in.Overlay.Background {
		b.WriteString(in.Overlay.HTML(in.LogoURL))
	}

	fmt.Fprintf(&b,
		`<h1 style="text-align: center; color: %s; margin-bottom: 30px; font-size: 24px; text-transform: uppercase;">%s</h1>`,
		titleColor, html.EscapeString(in.Name),
	)

	b.WriteString(`<div style="color: #333; font-size: 14px;">`)
	b.WriteString(body)
	b.WriteString(`</div>`)

	// Signature block: provider left, client right. Structural, always present.
	b.WriteString(`<div style="margin-top: 50px; display: flex; justify-content: space-between;">`)
	b.WriteString(`<div style="flex: 1;"><p style="margin-bottom: 40px;">Prestator:</p><p>_____________________</p></div>`)
	b.WriteString(`<div style="flex: 1; text-align: right;"><p style="margin-bottom: 40px;">Beneficiar:</p><p>_____________________</p></div>`)
	b.WriteString(`</div>`)

	b.WriteString(`</div>`)

	fmt.Fprintf(&b,
		`<footer style="margin-top: 50px; text-align: center; font-size: 12px; color: #666;"><p>Document generat la data: %s</p></footer>`,
		in.GeneratedAt.Format("02.01.2006"),
	)

	b.WriteString(`</div>`)
	return b.String()
}
