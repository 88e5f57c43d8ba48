package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/funnelchart/pkg/chart"
	"github.com/matzehuels/funnelchart/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForParse(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing input: err = %v, want INVALID_INPUT", err)
	}

	opts = Options{Input: "chart.toml"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Input should be enough: %v", err)
	}
	if opts.Logger == nil {
		t.Error("ValidateForParse should set a logger")
	}

	opts = Options{Definition: &chart.Definition{}}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Definition should be enough: %v", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.FontSize != DefaultFontSize {
		t.Errorf("FontSize should be %v, got %v", DefaultFontSize, opts.FontSize)
	}

	opts = Options{Formats: []string{"png"}, Scale: 1, FontSize: 14}
	opts.SetRenderDefaults()
	if opts.Formats[0] != "png" || opts.Scale != 1 || opts.FontSize != 14 {
		t.Errorf("explicit values overwritten: %+v", opts)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 3, Interactive: true, EmbedFont: true, Title: "Q3"}

	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.Scale != 3 || png.Interactive || png.EmbedFont {
		t.Errorf("png key opts = %+v, want scale only", png)
	}
	svg := opts.ArtifactKeyOpts(FormatSVG)
	if svg.Scale != 0 || !svg.Interactive || !svg.EmbedFont {
		t.Errorf("svg key opts = %+v, want interaction only", svg)
	}
	if js := opts.ArtifactKeyOpts(FormatJSON); js.Scale != 0 || js.Interactive || js.Title != "Q3" {
		t.Errorf("json key opts = %+v", js)
	}
}

func TestApplyDefinition(t *testing.T) {
	def := &chart.Definition{Title: "Q3", Palette: []string{"#000000"}}

	opts := Options{}
	opts.ApplyDefinition(def)
	if opts.Title != "Q3" || len(opts.Palette) != 1 {
		t.Errorf("ApplyDefinition did not copy settings: %+v", opts)
	}

	opts = Options{Title: "Override"}
	opts.ApplyDefinition(def)
	if opts.Title != "Override" {
		t.Errorf("Title = %q, explicit option should win", opts.Title)
	}

	opts.ApplyDefinition(nil)
}

func TestLoadDefinition(t *testing.T) {
	base := &chart.Definition{
		Title: "Q3",
		Series: []chart.SeriesDef{
			{Key: "Leads", Value: 1200},
			{Key: "Won", Value: 90},
		},
	}

	t.Run("overrides", func(t *testing.T) {
		def, err := LoadDefinition(Options{Definition: base, Width: 1024, Slope: 0.2, Wrap: true})
		if err != nil {
			t.Fatalf("LoadDefinition: %v", err)
		}
		if def.Width != 1024 || def.Slope != 0.2 || !def.Wrap {
			t.Errorf("overrides not applied: %+v", def)
		}
		if base.Width != 0 || base.Wrap {
			t.Error("caller's definition was modified")
		}
	})

	t.Run("series copied", func(t *testing.T) {
		def, err := LoadDefinition(Options{Definition: base})
		if err != nil {
			t.Fatal(err)
		}
		def.Series[0].Value = 1
		if base.Series[0].Value != 1200 {
			t.Error("series slice is shared with the caller")
		}
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := LoadDefinition(Options{Definition: base, Slope: 0.6})
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("err = %v, want INVALID_CONFIG", err)
		}
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "q3.toml")
		src := "title = \"From file\"\n\n[[series]]\nkey = \"Leads\"\nvalue = 10\n"
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		def, err := LoadDefinition(Options{Input: path, Title: "Renamed"})
		if err != nil {
			t.Fatalf("LoadDefinition: %v", err)
		}
		if def.Title != "Renamed" || len(def.Series) != 1 {
			t.Errorf("def = %+v", def)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDefinition(Options{Input: filepath.Join(t.TempDir(), "nope.toml")})
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("err = %v, want FILE_NOT_FOUND", err)
		}
	})
}
