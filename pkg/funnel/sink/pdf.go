package sink

import (
	"context"

	"github.com/matzehuels/funnelchart/pkg/funnel"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	ctx     context.Context
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// WithPDFContext bounds the rsvg-convert subprocess by ctx.
func WithPDFContext(ctx context.Context) PDFOption {
	return func(r *pdfRenderer) { r.ctx = ctx }
}

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(r funnel.Result, opts ...PDFOption) ([]byte, error) {
	o := pdfRenderer{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return rsvgConvert(o.ctx, RenderSVG(r, o.svgOpts...), "pdf")
}
