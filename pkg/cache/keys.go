package cache

// Keyer builds cache keys for each kind of cached value.
type Keyer interface {
	// LayoutKey identifies a layout of the chart definition with the given hash.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a layout.
type LayoutKeyOpts struct {
	Width         float64 `json:"w"`
	Height        float64 `json:"h"`
	Slope         float64 `json:"s"`
	MinLabelWidth float64 `json:"mlw"`
	Wrap          bool    `json:"wrap,omitempty"`
	Converge      bool    `json:"conv,omitempty"`
	FontSize      float64 `json:"fs"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string   `json:"f"`
	Title       string   `json:"t,omitempty"`
	Palette     []string `json:"p,omitempty"`
	FontSize    float64  `json:"fs,omitempty"`
	Scale       float64  `json:"sc,omitempty"`
	Interactive bool     `json:"i,omitempty"`
	EmbedFont   bool     `json:"ef,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}
