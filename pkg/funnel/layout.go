package funnel

import (
	"math"

	"github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
)

// Normalize assigns series indexes in input order, stamps each point with its
// series index and fills empty point labels with the series key. An empty
// input becomes a single empty placeholder series. The input is not modified.
func Normalize(series []Series) []Series {
	if len(series) == 0 {
		return []Series{{}}
	}
	out := make([]Series, len(series))
	for i, s := range series {
		s.Index = i
		pts := make([]Point, len(s.Points))
		for j, p := range s.Points {
			pts[j] = Point{Value: math.Max(0, p.Value), SeriesIndex: i, Label: p.Label}
			if pts[j].Label == "" {
				pts[j].Label = s.Key
			}
		}
		s.Points = pts
		out[i] = s
	}
	return out
}

// Layout computes the complete funnel geometry for series, ordered from the
// narrow bottom segment to the wide top segment.
//
// Side-label placement changes the room left for the funnel, which changes
// slice heights and therefore which labels fit. Layout runs the
// dimension/scale/classify/reflow pipeline cfg.Passes times (3 by default),
// or until the funnel offset settles when cfg.Converge is set, and then
// builds slice polygons and leader lines once against the final geometry.
//
// Layout never fails; degenerate input yields zero-height slices.
func Layout(series []Series, m textmeasure.Measurer, cfg Config) Result {
	cfg.SetDefaults()
	if m == nil {
		m = textmeasure.Fixed{}
	}

	series = Normalize(series)
	var points []Point
	for _, s := range series {
		if s.Disabled {
			continue
		}
		points = append(points, s.Points...)
	}

	margin := NaturalSideMargin(cfg.Width, cfg.Height)
	geom := Geometry{SideMargin: margin, FunnelOffset: margin, LabelOffset: margin}

	passes := 0
	for {
		prev := geom.FunnelOffset
		geom = layoutPass(points, m, cfg, geom)
		passes++

		if cfg.Converge {
			if math.Abs(geom.FunnelOffset-prev) < cfg.Epsilon || passes >= cfg.MaxPasses {
				break
			}
		} else if passes >= cfg.Passes {
			break
		}
	}

	side := sidePoints(points)
	res := Result{
		Config:   cfg,
		Geometry: geom,
		Passes:   passes,
		Series:   series,
		Points:   points,
		Slices:   make([]Slice, len(points)),
		Labels:   make([]Label, len(points)),
		Leaders:  RouteLeaders(side, geom, cfg.Slope, cfg.LabelGap),
	}
	for i, p := range points {
		res.Slices[i] = Slice{
			SeriesIndex: p.SeriesIndex,
			Polygon:     PointsForSlice(p, 1, geom.Width, cfg.Slope, geom.Center),
		}
		res.Labels[i] = placeLabel(p, geom)
	}
	return res
}

// layoutPass runs one dimension/scale/classify/reflow cycle. Width, Height
// and Center in the returned geometry are the ones the points were scaled
// against; the offsets are the ones the next pass should use.
func layoutPass(points []Point, m textmeasure.Measurer, cfg Config, geom Geometry) Geometry {
	geom.Width = CalculateWidth(cfg.Width, cfg.Height, geom.FunnelOffset)
	geom.Height = CalculateHeight(geom.Width, cfg.Slope)
	geom.Center = CalculateCenter(geom.Width, geom.FunnelOffset)

	ScaleSegments(points, geom.Width, geom.Height, cfg.Slope, cfg.MinHeight)
	ClassifyLabels(points, m, geom, cfg)

	side := sidePoints(points)
	ReflowSideLabels(side, geom.Height, cfg.LabelSpace)

	geom.FunnelOffset, geom.LabelOffset = CalcOffsets(side, cfg.Slope, cfg.LabelGap, geom.SideMargin)
	return geom
}

func placeLabel(p Point, geom Geometry) Label {
	l := Label{
		SeriesIndex: p.SeriesIndex,
		Side:        p.Side(),
		Y:           p.LabelTop,
		Width:       p.LabelWidth,
		Height:      p.LabelHeight,
		Lines:       p.Lines,
	}
	if l.Side {
		l.X = geom.LabelOffset
	} else {
		l.X = geom.Center - p.LabelWidth/2
	}
	return l
}

// Animate returns the slice polygons of r scaled vertically by factor, which
// is clamped to [0, 1]. Renderers use it to grow the funnel from a flat line.
func Animate(r Result, factor float64) []Slice {
	factor = math.Max(0, math.Min(1, factor))
	out := make([]Slice, len(r.Points))
	for i, p := range r.Points {
		out[i] = Slice{
			SeriesIndex: p.SeriesIndex,
			Polygon:     PointsForSlice(p, factor, r.Geometry.Width, r.Config.Slope, r.Geometry.Center),
		}
	}
	return out
}
