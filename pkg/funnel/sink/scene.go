package sink

import (
	"fmt"
	"math"

	"github.com/matzehuels/funnelchart/pkg/funnel"
)

// DefaultPalette colours slices by series index.
var DefaultPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

const (
	insideTextColor = "#ffffff"
	sideTextColor   = "#333333"
	leaderColor     = "#999999"
)

// anchor is the horizontal alignment of a text line.
type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
)

func (a anchor) svg() string {
	if a == anchorMiddle {
		return "middle"
	}
	return "start"
}

// textLine is one measured label line; Y is the vertical centre of the line.
type textLine struct {
	Text   string
	X, Y   float64
	Anchor anchor
	Color  string
}

// segment is everything drawn for one point.
type segment struct {
	ID      string
	Key     string
	Value   float64
	Fill    string
	Polygon [4]funnel.Vec
	Side    bool
	Lines   []textLine
	Leader  []funnel.Vec
}

func colorFor(palette []string, idx int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[idx%len(palette)]
}

// buildSegments pairs every point with its slice, label and leader. slices
// must be aligned with r.Points; r.Slices or the output of [funnel.Animate].
func buildSegments(r funnel.Result, slices []funnel.Slice, palette []string) []segment {
	segs := make([]segment, len(r.Points))
	leader := 0
	for i, p := range r.Points {
		s := segment{
			ID:      fmt.Sprintf("segment-%d", i),
			Value:   p.Value,
			Fill:    colorFor(palette, p.SeriesIndex),
			Polygon: slices[i].Polygon,
			Side:    p.Side(),
		}
		if p.SeriesIndex < len(r.Series) {
			s.Key = r.Series[p.SeriesIndex].Key
		}
		if s.Side && leader < len(r.Leaders) {
			s.Leader = r.Leaders[leader].Points[:]
			leader++
		}
		s.Lines = labelLines(r.Labels[i], r.Geometry)
		segs[i] = s
	}
	return segs
}

func labelLines(l funnel.Label, geom funnel.Geometry) []textLine {
	x, a, color := geom.Center, anchorMiddle, insideTextColor
	if l.Side {
		x, a, color = l.X, anchorStart, sideTextColor
	}

	lines := make([]textLine, 0, len(l.Lines))
	y := l.Y
	for _, b := range l.Lines {
		if b.Text != "" {
			lines = append(lines, textLine{Text: b.Text, X: x, Y: y + b.Height/2, Anchor: a, Color: color})
		}
		y += b.Height
	}
	return lines
}

// canvasBounds is the configured chart area, grown to fit anything drawn
// outside it. top is at most 0; a funnel whose minimum slice heights could not
// be absorbed, or a thin top slice's side label, can reach above y=0.
func canvasBounds(r funnel.Result) (top, w, h float64) {
	bottom := math.Max(r.Config.Height, r.Geometry.Height)
	extend := func(y float64) {
		top, bottom = math.Min(top, y), math.Max(bottom, y)
	}
	for _, s := range r.Slices {
		for _, p := range s.Polygon {
			extend(p.Y)
		}
	}
	for _, l := range r.Labels {
		extend(l.Y)
		extend(l.Y + l.Height)
	}
	for _, l := range r.Leaders {
		for _, p := range l.Points {
			extend(p.Y)
		}
	}
	return top, r.Config.Width, bottom - top
}
