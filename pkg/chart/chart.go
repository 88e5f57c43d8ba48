// Package chart loads funnel chart definitions from TOML or JSON files and
// converts them into layout engine input.
//
// A definition lists stages the way a reader sees the funnel, from the wide
// top to the narrow bottom:
//
//	title = "Q3 pipeline"
//	wrap  = true
//
//	[[series]]
//	key   = "Leads"
//	value = 1200
//
//	[[series]]
//	key   = "Qualified"
//	value = 430
//
// [Definition.Series] reverses this into the bottom-to-top order the engine
// expects. The engine never validates its input; [Definition.Validate] is the
// single place where user input is checked.
package chart

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/funnelchart/pkg/errors"
	"github.com/matzehuels/funnelchart/pkg/funnel"
)

// Format is a definition file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Definition is a complete chart: canvas settings plus its stages.
type Definition struct {
	Title         string      `json:"title,omitempty" toml:"title"`
	Width         float64     `json:"width,omitempty" toml:"width"`
	Height        float64     `json:"height,omitempty" toml:"height"`
	Slope         float64     `json:"slope,omitempty" toml:"slope"`
	MinLabelWidth float64     `json:"min_label_width,omitempty" toml:"min_label_width"`
	Wrap          bool        `json:"wrap,omitempty" toml:"wrap"`
	Converge      bool        `json:"converge,omitempty" toml:"converge"`
	ShowValues    bool        `json:"show_values,omitempty" toml:"show_values"`
	Palette       []string    `json:"palette,omitempty" toml:"palette"`
	Series        []SeriesDef `json:"series" toml:"series"`
}

// SeriesDef is one funnel stage.
type SeriesDef struct {
	Key      string  `json:"key" toml:"key"`
	Value    float64 `json:"value" toml:"value"`
	Label    string  `json:"label,omitempty" toml:"label"`
	Disabled bool    `json:"disabled,omitempty" toml:"disabled"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported chart file %q (want .toml or .json)", filepath.Base(path))
	}
}

// Load reads, parses and validates a definition file.
func Load(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes and validates a definition.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &def)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse TOML chart")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown chart field %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse JSON chart")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart format %q", format)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks a definition for values the layout engine cannot place.
// Zero canvas settings are allowed and mean "use the default".
func (d *Definition) Validate() error {
	if len(d.Series) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart has no series")
	}

	seen := make(map[string]bool, len(d.Series))
	for i, s := range d.Series {
		if err := errors.ValidateLabel(s.Key); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "series %d", i)
		}
		if seen[s.Key] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate series key %q", s.Key)
		}
		seen[s.Key] = true
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) || s.Value < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "series %q: value must be a non-negative number, got %g", s.Key, s.Value)
		}
	}

	for name, v := range map[string]float64{"width": d.Width, "height": d.Height} {
		if v != 0 {
			if err := errors.ValidatePositive(name, v); err != nil {
				return err
			}
		}
	}
	if d.Slope != 0 {
		if err := errors.ValidateOpenRange("slope", d.Slope, 0, 0.5); err != nil {
			return err
		}
	}
	if d.MinLabelWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_label_width must not be negative, got %g", d.MinLabelWidth)
	}
	for _, c := range d.Palette {
		if !hexColor.MatchString(c) {
			return errors.New(errors.ErrCodeInvalidConfig, "palette colour %q is not #rrggbb", c)
		}
	}
	return nil
}

// Series converts the stages into engine input ordered from the narrow
// bottom to the wide top. Disabled stages are carried with Disabled set, so
// series indexes and colours stay stable when a stage is toggled.
func (d *Definition) Series() []funnel.Series {
	out := make([]funnel.Series, 0, len(d.Series))
	for i := len(d.Series) - 1; i >= 0; i-- {
		s := d.Series[i]
		out = append(out, funnel.Series{
			Key:      s.Key,
			Disabled: s.Disabled,
			Points:   []funnel.Point{{Value: s.Value, Label: d.label(s)}},
		})
	}
	return out
}

func (d *Definition) label(s SeriesDef) string {
	l := s.Label
	if l == "" {
		l = s.Key
	}
	if d.ShowValues {
		l += " (" + strconv.FormatFloat(s.Value, 'f', -1, 64) + ")"
	}
	return l
}

// Config returns the layout configuration for the definition. Unset fields
// are filled with engine defaults.
func (d *Definition) Config() funnel.Config {
	cfg := funnel.Config{
		Width:         d.Width,
		Height:        d.Height,
		Slope:         d.Slope,
		MinLabelWidth: d.MinLabelWidth,
		Wrap:          d.Wrap,
		Converge:      d.Converge,
	}
	cfg.SetDefaults()
	return cfg
}
