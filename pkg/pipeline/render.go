package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/funnelchart/pkg/errors"
	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/funnel/sink"
)

// RenderFromLayout generates output artifacts in the requested formats.
// The context bounds external converters and is checked between formats.
func RenderFromLayout(ctx context.Context, l funnel.Result, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, buildPNGOptions(opts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...), sink.WithPDFContext(ctx))
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONTitle(opts.Title), sink.WithJSONPalette(opts.Palette...))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithFontSize(opts.FontSize)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if len(opts.Palette) > 0 {
		svgOpts = append(svgOpts, sink.WithPalette(opts.Palette...))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	return svgOpts
}

// buildPNGOptions builds PNG rendering options.
func buildPNGOptions(opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{
		sink.WithScale(opts.Scale),
		sink.WithPNGFontSize(opts.FontSize),
	}
	if len(opts.Palette) > 0 {
		pngOpts = append(pngOpts, sink.WithPNGPalette(opts.Palette...))
	}
	return pngOpts
}
