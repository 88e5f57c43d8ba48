// Package fonts provides the label typeface as embeddable data.
//
// Labels are measured with Go Regular (see textmeasure.NewGoRegular). SVG
// output can embed the same face with [FaceCSS] so that viewers draw labels at
// the widths the layout reserved for them.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// Family is the CSS font-family name of the embedded face.
const Family = "Go"

// GoRegularTTF returns the Go Regular TrueType data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded face (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularBase64 returns the TrueType data as a base64 string.
func GoRegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// FaceCSS returns an @font-face rule declaring [Family] from inline data.
func FaceCSS() string {
	return fmt.Sprintf(`@font-face { font-family: %q; src: url("data:font/ttf;base64,%s") format("truetype"); }`,
		Family, GoRegularBase64())
}
