// Package pipeline provides the load → layout → render pipeline for funnel charts.
//
// The CLI and the HTTP server both drive charts through this package so that
// defaults, caching and logging behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Load a chart definition from a file or use one supplied directly
//  2. Layout: Run the funnel engine to place slices, labels and leader lines
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "q3.toml",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	def, err := pipeline.LoadDefinition(opts)
//	layout, hit, err := runner.ComputeLayout(ctx, def, opts)
//	artifacts, hit, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/funnelchart/pkg/cache"
	"github.com/matzehuels/funnelchart/pkg/chart"
	"github.com/matzehuels/funnelchart/pkg/errors"
	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/funnel/textmeasure"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// DefaultFontSize is the label font size used for measuring and drawing.
	DefaultFontSize = textmeasure.DefaultFontSize
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// AllFormats lists the supported output formats in render order.
var AllFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for server requests.
//
// Canvas fields override the matching definition setting when non-zero.
// Wrap and Converge are enabled when either the options or the definition
// set them.
type Options struct {
	// Parse options
	Input      string            `json:"input,omitempty"`
	Definition *chart.Definition `json:"definition,omitempty"`

	// Layout options
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	Slope         float64 `json:"slope,omitempty"`
	MinLabelWidth float64 `json:"min_label_width,omitempty"`
	Wrap          bool    `json:"wrap,omitempty"`
	Converge      bool    `json:"converge,omitempty"`
	FontSize      float64 `json:"font_size,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	Palette     []string `json:"palette,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	EmbedFont   bool     `json:"embed_font,omitempty"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Measurer replaces the Go Regular face at FontSize. Layout cache keys
	// only see FontSize, so a custom measurer should be paired with Refresh
	// or a dedicated cache.
	Measurer textmeasure.Measurer `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Definition is the chart after option overrides were applied.
	Definition *chart.Definition

	// Layout is the computed funnel geometry.
	Layout funnel.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slices     int
	SideLabels int
	Passes     int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, AllFormats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForParse checks that a chart source is present.
func (o *Options) ValidateForParse() error {
	if o.Input == "" && o.Definition == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file or chart definition is required")
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.SetLayoutDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ApplyDefinition copies render settings from def that the options leave
// unset.
func (o *Options) ApplyDefinition(def *chart.Definition) {
	if def == nil {
		return
	}
	if o.Title == "" {
		o.Title = def.Title
	}
	if len(o.Palette) == 0 {
		o.Palette = def.Palette
	}
}

// LayoutKeyOpts returns cache key options for a layout of cfg.
func (o *Options) LayoutKeyOpts(cfg funnel.Config) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Slope:         cfg.Slope,
		MinLabelWidth: cfg.MinLabelWidth,
		Wrap:          cfg.Wrap,
		Converge:      cfg.Converge,
		FontSize:      o.FontSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Title:    o.Title,
		Palette:  o.Palette,
		FontSize: o.FontSize,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG, FormatPDF:
		k.Interactive = o.Interactive
		k.EmbedFont = o.EmbedFont
	}
	return k
}

// measurer returns the configured measurer or the Go Regular face at FontSize.
func (o *Options) measurer() (textmeasure.Measurer, error) {
	if o.Measurer != nil {
		return o.Measurer, nil
	}
	face, err := textmeasure.NewGoRegular(o.FontSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
	}
	return face, nil
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
