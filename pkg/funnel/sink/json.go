package sink

import (
	"encoding/json"

	"github.com/matzehuels/funnelchart/pkg/funnel"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title   string
	palette []string
}

// WithJSONTitle records the chart title in the output.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONPalette sets the colours recorded for each segment.
func WithJSONPalette(colors ...string) JSONOption {
	return func(r *jsonRenderer) { r.palette = colors }
}

type jsonOutput struct {
	Title    string          `json:"title,omitempty"`
	Top      float64         `json:"top,omitempty"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Passes   int             `json:"passes"`
	Geometry funnel.Geometry `json:"geometry"`
	Segments []jsonSegment   `json:"segments"`
}

type jsonSegment struct {
	Key     string        `json:"key"`
	Value   float64       `json:"value"`
	Color   string        `json:"color"`
	Polygon [4]funnel.Vec `json:"polygon"`
	Label   jsonLabel     `json:"label"`
	Leader  []funnel.Vec  `json:"leader,omitempty"`
}

type jsonLabel struct {
	Lines  []string `json:"lines"`
	Side   bool     `json:"side,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
}

// RenderJSON exports the layout as a pretty-printed JSON document with one
// entry per segment, ordered bottom to top like the layout's points.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify r and is safe to call concurrently.
func RenderJSON(r funnel.Result, opts ...JSONOption) ([]byte, error) {
	o := jsonRenderer{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&o)
	}

	top, w, h := canvasBounds(r)
	out := jsonOutput{
		Title:    o.title,
		Top:      top,
		Width:    w,
		Height:   h,
		Passes:   r.Passes,
		Geometry: r.Geometry,
		Segments: make([]jsonSegment, 0, len(r.Points)),
	}
	for i, s := range buildSegments(r, r.Slices, o.palette) {
		l := r.Labels[i]
		lines := make([]string, 0, len(l.Lines))
		for _, b := range l.Lines {
			lines = append(lines, b.Text)
		}
		out.Segments = append(out.Segments, jsonSegment{
			Key:     s.Key,
			Value:   s.Value,
			Color:   s.Fill,
			Polygon: s.Polygon,
			Label:   jsonLabel{Lines: lines, Side: l.Side, X: l.X, Y: l.Y, Width: l.Width, Height: l.Height},
			Leader:  s.Leader,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
