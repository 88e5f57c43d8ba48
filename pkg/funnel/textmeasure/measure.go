// Package textmeasure measures label text for the funnel layout engine.
//
// The layout engine never renders text itself. It asks a [Measurer] for the
// bounding boxes of a label constrained to a maximum width and treats the
// answer as authoritative. Two modes are supported:
//
//   - Ellipsis (wrap=false): a single box, truncated with "…" when wider than maxWidth.
//   - Wrap (wrap=true): one box per word-wrapped line.
//
// [Face] measures with a real font via golang.org/x/image; [Fixed] uses a
// constant advance per rune and is useful for deterministic tests.
package textmeasure

import (
	"strings"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Box is the measured bounding box of one rendered line of text.
type Box struct {
	Text   string  `json:"text"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer returns the rendered boxes for text constrained to maxWidth.
// Implementations must return at least one box.
type Measurer interface {
	Measure(text string, maxWidth float64, wrap bool) []Box
}

// Total returns the width of the widest box and the summed height of all boxes.
func Total(boxes []Box) (width, height float64) {
	for _, b := range boxes {
		width = max(width, b.Width)
		height += b.Height
	}
	return width, height
}

// widthFunc returns the advance width of s in pixels.
type widthFunc func(s string) float64

func layoutText(text string, maxWidth float64, wrap bool, width widthFunc, lineHeight float64) []Box {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Box{{}}
	}
	if !wrap {
		line := ellipsize(text, maxWidth, width)
		return []Box{{Text: line, Width: width(line), Height: lineHeight}}
	}

	var boxes []Box
	var line string
	flush := func() {
		if line == "" {
			return
		}
		boxes = append(boxes, Box{Text: line, Width: width(line), Height: lineHeight})
		line = ""
	}
	for _, word := range strings.Fields(text) {
		if line == "" {
			line = ellipsize(word, maxWidth, width)
			continue
		}
		if candidate := line + " " + word; width(candidate) <= maxWidth {
			line = candidate
			continue
		}
		flush()
		line = ellipsize(word, maxWidth, width)
	}
	flush()
	return boxes
}

// ellipsize trims s rune by rune until it fits maxWidth with a trailing ellipsis.
func ellipsize(s string, maxWidth float64, width widthFunc) string {
	if width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := strings.TrimRight(string(runes[:n]), " ") + Ellipsis
		if width(candidate) <= maxWidth {
			return candidate
		}
	}
	return Ellipsis
}
