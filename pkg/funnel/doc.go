// Package funnel computes the geometry of funnel charts.
//
// # Overview
//
// A funnel turns a sequence of weighted segments into a stack of trapezoids
// that narrows from top to bottom, with each segment's area proportional to
// its value. The package also places one label per segment: inside its slice
// when it fits, otherwise beside the funnel in a column connected to the slice
// by a leader line.
//
// The engine is pure data-in/data-out. It does not draw; sinks in
// [github.com/matzehuels/funnelchart/pkg/funnel/sink] turn a [Result] into SVG,
// PNG, PDF or JSON. Text measurement is delegated to a
// [textmeasure.Measurer].
//
// # Pipeline
//
// [Layout] runs these stages:
//
//  1. Dimensions ([CalculateWidth], [CalculateHeight], [CalculateCenter]): size
//     the funnel for the available area minus the room reserved for side labels.
//  2. Scaling ([ScaleSegments]): convert values into slice heights using
//     [HeightForArea], enforcing a minimum slice height.
//  3. Classification ([ClassifyLabels]): measure each label and mark it too wide
//     or too tall for its slice.
//  4. Reflow ([ReflowSideLabels], [CalcOffsets]): stack side labels without
//     overlap and work out how much width the funnel must give up.
//
// Because stage 4 changes the input of stage 1, stages 1–4 run three times
// (or until stable, see [Config.Converge]). Slice polygons ([PointsForSlice])
// and leader lines ([RouteLeaders]) are then built once.
//
// # Coordinates
//
// y=0 is the top (wide end) of the funnel and grows downward. Points are
// ordered from the bottom (narrow) segment to the top (wide) segment.
//
// # Example
//
//	series := []funnel.Series{
//	    {Key: "Won", Points: []funnel.Point{{Value: 25}}},
//	    {Key: "Qualified", Points: []funnel.Point{{Value: 50}}},
//	    {Key: "Leads", Points: []funnel.Point{{Value: 100}}},
//	}
//	face, _ := textmeasure.NewGoRegular(12)
//	res := funnel.Layout(series, face, funnel.DefaultConfig())
//	svg := sink.RenderSVG(res)
//
// [textmeasure.Measurer]: github.com/matzehuels/funnelchart/pkg/funnel/textmeasure.Measurer
package funnel
