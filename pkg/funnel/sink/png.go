package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	palette    []string
	fontSize   float64
	background string
	growth     float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGPalette sets slice colours, cycled by series index.
func WithPNGPalette(colors ...string) PNGOption {
	return func(r *pngRenderer) { r.palette = colors }
}

// WithPNGFontSize sets the label font size in unscaled pixels.
func WithPNGFontSize(px float64) PNGOption {
	return func(r *pngRenderer) { r.fontSize = px }
}

// WithBackground sets the background colour as a hex string.
func WithBackground(hex string) PNGOption {
	return func(r *pngRenderer) { r.background = hex }
}

// WithGrowth draws the funnel at a fraction of its final height, as produced
// by [funnel.Animate]. Labels and leaders are only drawn at full growth.
func WithGrowth(f float64) PNGOption {
	return func(r *pngRenderer) { r.growth = f }
}

// RenderPNG rasterizes the layout natively with gg, using the Go Regular font
// for labels.
func RenderPNG(r funnel.Result, opts ...PNGOption) ([]byte, error) {
	o := pngRenderer{
		scale:      2.0,
		palette:    DefaultPalette,
		fontSize:   textmeasure.DefaultFontSize,
		background: "#ffffff",
		growth:     1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = 1
	}

	top, w, h := canvasBounds(r)
	dc := gg.NewContext(int(math.Ceil(w*o.scale)), int(math.Ceil(h*o.scale)))
	dc.SetHexColor(o.background)
	dc.Clear()
	dc.Translate(0, -top*o.scale)

	face, err := textmeasure.NewGoRegular(o.fontSize * o.scale)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face.FontFace())

	full := o.growth >= 1
	for _, s := range buildSegments(r, funnel.Animate(r, o.growth), o.palette) {
		drawSlice(dc, s, o.scale)
		if !full {
			continue
		}
		if len(s.Leader) > 0 {
			drawLeader(dc, s.Leader, o.scale)
		}
		for _, l := range s.Lines {
			dc.SetHexColor(l.Color)
			ax := 0.0
			if l.Anchor == anchorMiddle {
				ax = 0.5
			}
			dc.DrawStringAnchored(l.Text, l.X*o.scale, l.Y*o.scale, ax, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawSlice(dc *gg.Context, s segment, scale float64) {
	for i, p := range s.Polygon {
		if i == 0 {
			dc.MoveTo(p.X*scale, p.Y*scale)
		} else {
			dc.LineTo(p.X*scale, p.Y*scale)
		}
	}
	dc.ClosePath()
	dc.SetHexColor(s.Fill)
	dc.Fill()
}

func drawLeader(dc *gg.Context, pts []funnel.Vec, scale float64) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X*scale, p.Y*scale)
		} else {
			dc.LineTo(p.X*scale, p.Y*scale)
		}
	}
	dc.SetHexColor(leaderColor)
	dc.SetLineWidth(scale)
	dc.Stroke()
}
