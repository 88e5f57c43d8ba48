package pipeline

import (
	"slices"

	"github.com/matzehuels/funnelchart/pkg/chart"
)

// LoadDefinition returns the chart for opts: the supplied Definition, or the
// file at Input. Option overrides are applied to a copy and the result is
// validated, so callers may reuse opts.Definition afterwards.
func LoadDefinition(opts Options) (*chart.Definition, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	var def chart.Definition
	if opts.Definition != nil {
		def = *opts.Definition
		def.Series = slices.Clone(opts.Definition.Series)
	} else {
		loaded, err := chart.Load(opts.Input)
		if err != nil {
			return nil, err
		}
		def = *loaded
	}

	applyOverrides(&def, opts)
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// applyOverrides copies non-zero layout options onto def.
func applyOverrides(def *chart.Definition, opts Options) {
	if opts.Width != 0 {
		def.Width = opts.Width
	}
	if opts.Height != 0 {
		def.Height = opts.Height
	}
	if opts.Slope != 0 {
		def.Slope = opts.Slope
	}
	if opts.MinLabelWidth != 0 {
		def.MinLabelWidth = opts.MinLabelWidth
	}
	if opts.Title != "" {
		def.Title = opts.Title
	}
	if len(opts.Palette) > 0 {
		def.Palette = opts.Palette
	}
	def.Wrap = def.Wrap || opts.Wrap
	def.Converge = def.Converge || opts.Converge
}
