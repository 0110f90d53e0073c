package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/gtri-thrive/toolkit/internal/types"
)

// Logical viewport widths the layouts are designed for. The capture height
// follows the content.
const (
	cardViewportWidth    = 512
	bulletsViewportWidth = 728
)

// PersonaPNG rasterizes a persona card. background overrides the default
// gradient layer painted behind the card; empty keeps the default.
func (e *Exporter) PersonaPNG(ctx context.Context, p types.PersonaData, background string) ([]byte, error) {
	html, err := RenderCard(p, background)
	if err != nil {
		return nil, e.fail(FormatPNG, err)
	}
	buf, err := e.capturePNG(ctx, html, cardViewportWidth, CardScale)
	if err != nil {
		return nil, e.fail(FormatPNG, err)
	}
	return buf, nil
}

// ExperiencePNG rasterizes a bullet list sheet.
func (e *Exporter) ExperiencePNG(ctx context.Context, exp types.SavedExperience) ([]byte, error) {
	html, err := RenderBullets(exp)
	if err != nil {
		return nil, e.fail(FormatPNG, err)
	}
	buf, err := e.capturePNG(ctx, html, bulletsViewportWidth, BulletsScale)
	if err != nil {
		return nil, e.fail(FormatPNG, err)
	}
	return buf, nil
}

// PersonaPDF produces a PDF whose single page is the card raster at its own
// aspect ratio.
func (e *Exporter) PersonaPDF(ctx context.Context, p types.PersonaData, background string) ([]byte, error) {
	raster, err := e.PersonaPNG(ctx, p, background)
	if err != nil {
		return nil, e.fail(FormatPDF, err)
	}
	buf, err := e.pdfFromRaster(ctx, raster, CardScale)
	if err != nil {
		return nil, e.fail(FormatPDF, err)
	}
	return buf, nil
}

// ExperiencePDF produces a PDF whose single page is the bullet sheet raster.
func (e *Exporter) ExperiencePDF(ctx context.Context, exp types.SavedExperience) ([]byte, error) {
	raster, err := e.ExperiencePNG(ctx, exp)
	if err != nil {
		return nil, e.fail(FormatPDF, err)
	}
	buf, err := e.pdfFromRaster(ctx, raster, BulletsScale)
	if err != nil {
		return nil, e.fail(FormatPDF, err)
	}
	return buf, nil
}

func (e *Exporter) fail(format Format, err error) error {
	var exportErr *ExportError
	switch typed := err.(type) {
	case *ExportError:
		// keep the innermost format; PDF wraps the PNG stage
		exportErr = typed
	default:
		exportErr = &ExportError{Format: format, Cause: err}
	}
	log.Printf("[export] %v", exportErr)
	return exportErr
}

// capturePNG renders html in headless Chrome at the given logical width and
// device scale and screenshots the full page.
func (e *Exporter) capturePNG(ctx context.Context, html string, width int64, scale float64) ([]byte, error) {
	dir, err := os.MkdirTemp("", "thrive-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating capture workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("writing capture page: %w", err)
	}

	browserCtx, cancel := e.browserContext(ctx)
	defer cancel()

	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(width, 10, chromedp.EmulateScale(scale)),
		chromedp.Navigate("file://"+path),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("browser capture failed: %w", err)
	}
	return buf, nil
}

// pdfFromRaster embeds a PNG raster as a single full-bleed PDF page sized to
// the raster's aspect ratio at its original logical dimensions.
func (e *Exporter) pdfFromRaster(ctx context.Context, raster []byte, scale float64) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("reading raster dimensions: %w", err)
	}
	// raster pixels back to logical CSS pixels, then to inches at 96dpi
	widthIn := float64(cfg.Width) / scale / 96
	heightIn := float64(cfg.Height) / scale / 96

	html := fmt.Sprintf(
		`<!DOCTYPE html><html><head><style>*{margin:0;padding:0}img{display:block;width:100%%}</style></head><body><img src="data:image/png;base64,%s"></body></html>`,
		base64.StdEncoding.EncodeToString(raster),
	)

	dir, err := os.MkdirTemp("", "thrive-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating capture workspace: %w", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "print.html")
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("writing print page: %w", err)
	}

	browserCtx, cancel := e.browserContext(ctx)
	defer cancel()

	var buf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitReady("img"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			buf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(widthIn).
				WithPaperHeight(heightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf print failed: %w", err)
	}
	return buf, nil
}

func (e *Exporter) browserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, e.timeout)
	return browserCtx, func() {
		cancelTimeout()
		cancelBrowser()
		cancelAlloc()
	}
}
