package funnel

// Default layout constants.
const (
	DefaultWidth         = 800.0
	DefaultHeight        = 600.0
	DefaultSlope         = 0.3
	DefaultMinLabelWidth = 75.0
	DefaultMinHeight     = 4.0
	DefaultLabelSpace    = 5.0
	DefaultLabelGap      = 5.0
	DefaultPasses        = 3
	DefaultEpsilon       = 0.5
	DefaultMaxPasses     = 10

	// aspect caps the funnel height relative to its width.
	aspect = 1.1
	// minWidth is the narrowest funnel the dimension calculator will return.
	minWidth = 40.0
	// labelSlack is the vertical room a label must leave inside its slice.
	labelSlack = 4.0
)

// Config controls a layout run. Zero fields are replaced by defaults in
// [Config.SetDefaults], except the booleans. Slope must lie in (0, 0.5);
// anything else falls back to DefaultSlope.
type Config struct {
	Width         float64 `json:"width" toml:"width"`
	Height        float64 `json:"height" toml:"height"`
	Slope         float64 `json:"slope" toml:"slope"`
	MinLabelWidth float64 `json:"min_label_width" toml:"min_label_width"`
	Wrap          bool    `json:"wrap,omitempty" toml:"wrap"`
	MinHeight     float64 `json:"min_height" toml:"min_height"`
	LabelSpace    float64 `json:"label_space" toml:"label_space"`
	LabelGap      float64 `json:"label_gap" toml:"label_gap"`

	// Passes is the fixed number of layout passes when Converge is false.
	Passes int `json:"passes" toml:"passes"`

	// Converge repeats passes until the funnel offset moves less than
	// Epsilon, up to MaxPasses.
	Converge  bool    `json:"converge,omitempty" toml:"converge"`
	Epsilon   float64 `json:"epsilon,omitempty" toml:"epsilon"`
	MaxPasses int     `json:"max_passes,omitempty" toml:"max_passes"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields with package defaults and replaces a
// slope the trapezoid solver cannot handle.
func (c *Config) SetDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if !(c.Slope > 0 && c.Slope < 0.5) {
		c.Slope = DefaultSlope
	}
	if c.MinLabelWidth == 0 {
		c.MinLabelWidth = DefaultMinLabelWidth
	}
	if c.MinHeight == 0 {
		c.MinHeight = DefaultMinHeight
	}
	if c.LabelSpace == 0 {
		c.LabelSpace = DefaultLabelSpace
	}
	if c.LabelGap == 0 {
		c.LabelGap = DefaultLabelGap
	}
	if c.Passes <= 0 {
		c.Passes = DefaultPasses
	}
	if c.Epsilon <= 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.MaxPasses <= 0 {
		c.MaxPasses = DefaultMaxPasses
	}
}
