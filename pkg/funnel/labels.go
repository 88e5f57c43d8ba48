package funnel

import (
	"math"

	"github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
)

// SliceWidthAt returns the funnel's width at vertical position y.
func SliceWidthAt(width, slope, y float64) float64 {
	return width - 2*slope*y
}

// ClassifyLabels measures every point's label against the slice it belongs to
// and decides whether it fits inside. Labels are measured with a maximum width
// of the slice's midpoint width, but never less than cfg.MinLabelWidth.
func ClassifyLabels(points []Point, m textmeasure.Measurer, geom Geometry, cfg Config) {
	for i := range points {
		p := &points[i]
		mid := p.Mid()
		avail := SliceWidthAt(geom.Width, cfg.Slope, mid)

		p.Lines = m.Measure(p.Label, math.Max(cfg.MinLabelWidth, avail), cfg.Wrap)
		p.LabelWidth, p.LabelHeight = textmeasure.Total(p.Lines)

		p.LabelTop = mid - p.LabelHeight/2
		p.LabelBottom = p.LabelTop + p.LabelHeight + cfg.LabelSpace
		p.TooWide = p.LabelWidth > avail
		p.TooTall = p.LabelHeight > p.Height-labelSlack
	}
}

// sidePoints returns pointers to the points whose labels go beside the
// funnel, preserving bottom-to-top order.
func sidePoints(points []Point) []*Point {
	var side []*Point
	for i := range points {
		if points[i].Side() {
			side = append(side, &points[i])
		}
	}
	return side
}
