package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/funnelchart/pkg/fonts"
	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
)

const segmentInteractionCSS = `
    .segment .slice { transition: opacity 0.2s ease; }
    .segment:hover .slice { opacity: 0.8; }
    .segment:hover text { font-weight: bold; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	palette     []string
	fontSize    float64
	interaction bool
	embedFont   bool
	grow        time.Duration
}

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithPalette sets slice colours, cycled by series index.
func WithPalette(colors ...string) SVGOption {
	return func(r *svgRenderer) { r.palette = colors }
}

// WithFontSize sets the label font size in pixels. It should match the size
// the labels were measured with.
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// WithInteraction adds hover highlighting.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithEmbeddedFont inlines the Go Regular face that labels are measured
// with, so text renders at its measured width without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithGrowAnimation animates the funnel growing down from y=0 over d.
func WithGrowAnimation(d time.Duration) SVGOption { return func(r *svgRenderer) { r.grow = d } }

// RenderSVG renders the layout as SVG: one group per segment holding its
// slice, its label lines and, for side labels, the leader line.
func RenderSVG(r funnel.Result, opts ...SVGOption) []byte {
	o := newSVGRenderer(opts...)
	top, w, h := canvasBounds(r)
	y0 := int(math.Floor(top))
	iw, ih := int(math.Ceil(w)), int(math.Ceil(top+h))-y0

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(iw, ih, fmt.Sprintf(`viewBox="0 %d %d %d"`, y0, iw, ih))
	if o.title != "" {
		canvas.Title(o.title)
	}
	if o.embedFont {
		canvas.Style("text/css", fonts.FaceCSS())
	}
	if o.interaction {
		canvas.Style("text/css", segmentInteractionCSS)
	}

	canvas.Gid("funnel")
	if o.grow > 0 {
		fmt.Fprintf(canvas.Writer,
			`<animateTransform attributeName="transform" type="scale" from="1 0" to="1 1" dur="%.2fs" fill="freeze"/>`+"\n",
			o.grow.Seconds())
	}
	for _, s := range buildSegments(r, r.Slices, o.palette) {
		renderSegment(canvas, s, o.fontSize, o.fontFamily())
	}
	canvas.Gend()

	canvas.End()
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: DefaultPalette, fontSize: textmeasure.DefaultFontSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) fontFamily() string {
	if r.embedFont {
		return fonts.Family + ",sans-serif"
	}
	return "sans-serif"
}

func renderSegment(canvas *svg.SVG, s segment, fontSize float64, family string) {
	canvas.Gid(s.ID)

	xs, ys := intCoords(s.Polygon[:])
	canvas.Polygon(xs, ys, `class="slice"`, `data-key="`+html.EscapeString(s.Key)+`"`, "fill:"+s.Fill)

	if len(s.Leader) > 0 {
		lx, ly := intCoords(s.Leader)
		canvas.Polyline(lx, ly, `class="leader"`, "fill:none;stroke:"+leaderColor+";stroke-width:1")
	}
	for _, l := range s.Lines {
		canvas.Text(round(l.X), round(l.Y), l.Text,
			fmt.Sprintf("text-anchor:%s;dominant-baseline:central;font-family:%s;font-size:%gpx;fill:%s",
				l.Anchor.svg(), family, fontSize, l.Color))
	}

	canvas.Gend()
}

func intCoords(pts []funnel.Vec) (xs, ys []int) {
	xs, ys = make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = round(p.X), round(p.Y)
	}
	return xs, ys
}

func round(v float64) int { return int(math.Round(v)) }
