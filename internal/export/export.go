package export

import (
	"fmt"
	"time"
)

// Format names an export output type.
type Format string

// Supported export formats.
const (
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatPNG, FormatPDF, FormatDOCX:
		return true
	}
	return false
}

// Raster quality multipliers: the compact card keeps 2x, the wider bullet
// sheet needs 4x to stay crisp at print sizes.
const (
	CardScale    = 2.0
	BulletsScale = 4.0
)

// ExportError wraps any failure inside an export path. The record being
// exported is never mutated; the caller surfaces the error and moves on.
type ExportError struct {
	Format Format
	Cause  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Format, e.Cause)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Options configures an Exporter.
type Options struct {
	// Timeout bounds each headless-browser capture.
	Timeout time.Duration
}

// Exporter renders records to the supported output formats.
type Exporter struct {
	timeout time.Duration
}

// DefaultTimeout bounds a single rasterization run.
const DefaultTimeout = 45 * time.Second

// New creates an Exporter.
func New(opts *Options) *Exporter {
	if opts == nil {
		opts = &Options{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exporter{timeout: timeout}
}
