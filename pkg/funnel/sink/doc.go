// Package sink provides output format renderers for funnel layouts.
//
// # Overview
//
// A "sink" transforms a computed [funnel.Result] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics, optionally interactive or animated
//   - PNG: Native raster output drawn with gg
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: Per-segment geometry export for external tools
//
// Sinks never change the layout. Label text is drawn exactly as the layout
// measured it, so the font size given to a sink should match the one the
// [textmeasure.Measurer] used.
//
// # SVG Output
//
// [RenderSVG] writes one group per segment containing the slice polygon, its
// label lines and, for side labels, the leader polyline:
//
//	svg := sink.RenderSVG(res,
//	    sink.WithTitle("Q3 pipeline"),
//	    sink.WithInteraction(),
//	)
//
// # PNG and PDF Output
//
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(res)
//
// PDF conversion requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [textmeasure.Measurer]: github.com/matzehuels/funnelchart/pkg/funnel/textmeasure.Measurer
package sink
