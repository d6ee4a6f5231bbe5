// Package export converts rendered HTML into a paginated A4 PDF artifact
// using headless Chrome.
package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/diewo77/docugen/internal/errs"
)

// Options contains the fixed PDF page configuration. Exports always target
// A4 portrait; callers only tune the Chrome binary and the timeout.
type Options struct {
	// Paper dimensions in inches (A4 portrait).
	PaperWidth  float64
	PaperHeight float64

	// Margin in inches, applied on all four sides (~10mm).
	Margin float64

	// PrintBackground keeps background colors and images in the output.
	PrintBackground bool

	// Scale of the page rendering (1.0 = 100%).
	Scale float64

	// ChromePath overrides the Chrome binary, empty uses the default.
	ChromePath string

	// Timeout bounds one export run.
	Timeout time.Duration
}

// DefaultOptions returns the fixed A4 configuration.
func DefaultOptions() Options {
	return Options{
		PaperWidth:      8.27,
		PaperHeight:     11.69,
		Margin:          0.39, // 10mm
		PrintBackground: true,
		Scale:           1.0,
		Timeout:         60 * time.Second,
	}
}

// Exporter renders HTML to PDF bytes through chromedp.
type Exporter struct {
	opts Options
	log  *zap.Logger
}

// New creates an Exporter with the given options.
func New(opts Options, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{opts: opts, log: log}
}

// PDF converts the HTML document into A4 PDF bytes. The HTML is written to a
// temporary file to avoid data URL size limits, then printed by Chrome. Any
// failure is reported as ErrExport and is fatal for the current generation
// attempt.
func (e *Exporter) PDF(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()

	tmp, err := os.CreateTemp("", "docugen-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %v", errs.ErrExport, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(wrapPage(html)); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: write temp file: %v", errs.ErrExport, err)
	}
	tmp.Close()

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)
	if e.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(e.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdfData []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmpPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPaperWidth(e.opts.PaperWidth).
				WithPaperHeight(e.opts.PaperHeight).
				WithMarginTop(e.opts.Margin).
				WithMarginBottom(e.opts.Margin).
				WithMarginLeft(e.opts.Margin).
				WithMarginRight(e.opts.Margin).
				WithPrintBackground(e.opts.PrintBackground).
				WithScale(e.opts.Scale).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		e.log.Error("pdf export failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("%w: %v", errs.ErrExport, err)
	}

	e.log.Debug("pdf export completed",
		zap.Int("pdf_size", len(pdfData)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdfData, nil
}

// wrapPage embeds the fragment in a minimal printable document. Orphan and
// widow rules keep page breaks from splitting single lines of content.
func wrapPage(fragment string) string {
	return `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
* { box-sizing: border-box; }
body { margin: 0; background: white; -webkit-print-color-adjust: exact; print-color-adjust: exact; }
p, li { orphans: 3; widows: 3; }
h1, h2, h3, h4, h5, h6 { page-break-after: avoid; }
table { page-break-inside: avoid; }
img { max-width: 100%; }
</style>
</head>
<body>` + fragment + `</body>
</html>`
}
