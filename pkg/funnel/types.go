package funnel

import "github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"

// Vec is a point in chart coordinates. Y grows downward; y=0 is the top of
// the funnel and y=Geometry.Height its bottom.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is a named group of points. Index is assigned by [Normalize] in
// input order and is never changed afterwards.
type Series struct {
	Key      string  `json:"key"`
	Disabled bool    `json:"disabled,omitempty"`
	Index    int     `json:"index"`
	Points   []Point `json:"points"`
}

// Total returns the aggregate value of the series.
func (s Series) Total() float64 {
	var sum float64
	for _, p := range s.Points {
		sum += p.Value
	}
	return sum
}

// Count returns the number of points in the series.
func (s Series) Count() int { return len(s.Points) }

// Point is one funnel segment. Value and Label are inputs; every other field
// is computed by the layout and overwritten on each pass.
type Point struct {
	Value       float64 `json:"value"`
	SeriesIndex int     `json:"series"`
	Label       string  `json:"label,omitempty"`

	// Set by ScaleSegments.
	Height float64 `json:"height"`
	Base   float64 `json:"base"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`

	// Set by ClassifyLabels and ReflowSideLabels.
	LabelWidth  float64           `json:"label_width"`
	LabelHeight float64           `json:"label_height"`
	LabelTop    float64           `json:"label_top"`
	LabelBottom float64           `json:"label_bottom"`
	TooWide     bool              `json:"too_wide,omitempty"`
	TooTall     bool              `json:"too_tall,omitempty"`
	Lines       []textmeasure.Box `json:"lines,omitempty"`
}

// Side reports whether the label must be placed beside the funnel.
func (p Point) Side() bool { return p.TooWide || p.TooTall }

// Mid returns the y coordinate of the slice's vertical midpoint.
func (p Point) Mid() float64 { return p.Bottom - p.Height/2 }

// Geometry is the funnel-wide state derived on every layout pass.
type Geometry struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Center       float64 `json:"center"`
	FunnelOffset float64 `json:"funnel_offset"`
	LabelOffset  float64 `json:"label_offset"`
	SideMargin   float64 `json:"side_margin"`
}

// Slice is the closed polygon of one segment: bottom-left, top-left,
// top-right, bottom-right.
type Slice struct {
	SeriesIndex int    `json:"series"`
	Polygon     [4]Vec `json:"polygon"`
}

// Label is the final placement of a segment's label. X and Y are the top-left
// corner of the text block.
type Label struct {
	SeriesIndex int               `json:"series"`
	Side        bool              `json:"side"`
	X           float64           `json:"x"`
	Y           float64           `json:"y"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	Lines       []textmeasure.Box `json:"lines,omitempty"`
}

// Leader connects a side label to its slice. Points are absolute: the label
// baseline start, the routed elbow, the end of the sloped run, and the funnel edge.
type Leader struct {
	SeriesIndex int     `json:"series"`
	Width       float64 `json:"width"`
	Points      [4]Vec  `json:"points"`
}

// Result is the output of [Layout].
type Result struct {
	Config   Config   `json:"config"`
	Geometry Geometry `json:"geometry"`
	Passes   int      `json:"passes"`
	Series   []Series `json:"series"`
	Points   []Point  `json:"points"`
	Slices   []Slice  `json:"slices"`
	Labels   []Label  `json:"labels"`
	Leaders  []Leader `json:"leaders,omitempty"`
}

// SideLabels returns the number of labels placed beside the funnel.
func (r Result) SideLabels() int { return len(r.Leaders) }
