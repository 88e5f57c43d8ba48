package textmeasure

import (
	"fmt"
	"math"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/funnelchart/pkg/fonts"
)

// DefaultFontSize is the label font size in points used by [NewGoRegular] callers
// that have no preference.
const DefaultFontSize = 12.0

// Face measures text with a font.Face. It is safe for concurrent use; the
// underlying face caches glyphs and is guarded by a mutex.
type Face struct {
	mu         sync.Mutex
	face       font.Face
	lineHeight float64
}

// NewFace wraps an existing font face.
func NewFace(f font.Face) *Face {
	m := f.Metrics()
	return &Face{face: f, lineHeight: float64(m.Height.Ceil())}
}

// NewGoRegular parses the embedded Go Regular font at the given point size (72 DPI).
func NewGoRegular(size float64) (*Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	fnt, err := opentype.Parse(fonts.GoRegularTTF())
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return NewFace(f), nil
}

// NewBasic returns a measurer over the fixed 7x13 bitmap face.
func NewBasic() *Face {
	return NewFace(basicfont.Face7x13)
}

// FontFace exposes the wrapped face for renderers that draw with it.
func (f *Face) FontFace() font.Face { return f.face }

// LineHeight returns the height of one line of text in pixels.
func (f *Face) LineHeight() float64 { return f.lineHeight }

// Width returns the advance width of s in pixels.
func (f *Face) Width(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(font.MeasureString(f.face, s)) / 64
}

// Measure implements [Measurer].
func (f *Face) Measure(text string, maxWidth float64, wrap bool) []Box {
	return layoutText(text, maxWidth, wrap, f.Width, f.lineHeight)
}

// Fixed measures every rune with the same advance. Zero values fall back to
// 7px per rune and 13px per line, the metrics of basicfont.Face7x13.
type Fixed struct {
	CharWidth  float64
	LineHeight float64
}

func (f Fixed) metrics() (float64, float64) {
	cw, lh := f.CharWidth, f.LineHeight
	if cw <= 0 {
		cw = 7
	}
	if lh <= 0 {
		lh = 13
	}
	return cw, lh
}

// Width returns the advance width of s.
func (f Fixed) Width(s string) float64 {
	cw, _ := f.metrics()
	return math.Round(float64(utf8.RuneCountInString(s)) * cw)
}

// Measure implements [Measurer].
func (f Fixed) Measure(text string, maxWidth float64, wrap bool) []Box {
	_, lh := f.metrics()
	return layoutText(text, maxWidth, wrap, f.Width, lh)
}

var (
	_ Measurer = (*Face)(nil)
	_ Measurer = Fixed{}
)
