package render

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// HTMLConverter turns an HTML document into PDF bytes. The production
// implementation drives a headless browser; tests substitute a fake.
type HTMLConverter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// ChromeConverter prints HTML through headless Chrome. A zero ExecPath lets
// chromedp find the browser on PATH.
type ChromeConverter struct {
	ExecPath string
}

func NewChromeConverter(execPath string) *ChromeConverter {
	return &ChromeConverter{ExecPath: execPath}
}

// printParams configures the landscape A4 print. Paper dimensions are given
// in portrait orientation; Chrome swaps them itself when Landscape is set.
// The template's own @page size wins when present.
func printParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithLandscape(true).
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithPaperWidth(8.27).
		WithPaperHeight(11.69).
		WithMarginTop(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithMarginRight(0)
}

// Convert prints the document landscape A4 with zero margins and background
// graphics on. The caller's context bounds the whole browser session.
func (c *ChromeConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := printParams().Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return pdf, nil
}
