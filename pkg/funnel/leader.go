package funnel

import "math"

// RouteLeaders builds the leader line for each side label. side is ordered
// bottom to top; the returned leaders share that order.
//
// Labels are routed from the visual top of the column downward. Each label's
// horizontal run is at least as long as its own text, as long as the run of
// the label routed just before it (less the slope over the vertical distance
// between them), and, when the label is shorter than the span down to its
// slice, as long as the text of the label routed next.
func RouteLeaders(side []*Point, geom Geometry, slope, labelGap float64) []Leader {
	leaders := make([]Leader, len(side))

	var (
		routed     bool
		prevWidth  float64
		prevBottom float64
	)
	for i := len(side) - 1; i >= 0; i-- {
		p := side[i]

		w := p.LabelWidth
		if routed {
			w = math.Max(w, prevWidth-(p.LabelBottom-prevBottom)*slope)
		}
		if i > 0 && p.LabelHeight < p.Bottom-p.LabelTop {
			w = math.Max(w, side[i-1].LabelWidth)
		}
		w = math.Round(w) + labelGap

		leaders[i] = leaderFor(p, w, geom, slope)
		routed, prevWidth, prevBottom = true, w, p.LabelBottom
	}
	return leaders
}

// leaderFor returns the polyline for p with a horizontal run of width w.
// Points are computed relative to the label's top-left corner and then
// translated into chart coordinates.
func leaderFor(p *Point, w float64, geom Geometry, slope float64) Leader {
	sliceY := p.Bottom - p.LabelTop
	edgeX := geom.Center - geom.Width/2 + slope*p.Bottom - geom.LabelOffset
	rel := [4]Vec{
		{X: 0, Y: p.LabelHeight},
		{X: w, Y: p.LabelHeight},
		{X: w + math.Abs(p.LabelHeight-sliceY)*slope, Y: sliceY},
		{X: edgeX, Y: sliceY},
	}

	l := Leader{SeriesIndex: p.SeriesIndex, Width: w}
	for i, v := range rel {
		l.Points[i] = Vec{X: v.X + geom.LabelOffset, Y: v.Y + p.LabelTop}
	}
	return l
}
