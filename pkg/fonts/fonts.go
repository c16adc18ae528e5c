// Package fonts provides the embedded fonts used for text measurement and
// raster output.
//
// The fonts are the Go font family shipped with golang.org/x/image, so they
// are available without any system font lookup. SVG output names the same
// family and can embed it (see [RegularBase64]) so that the browser draws
// exactly the glyphs the layout was measured with.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var (
	parseOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	parseErr  error
)

func parse() {
	if regular, parseErr = opentype.Parse(goregular.TTF); parseErr != nil {
		parseErr = fmt.Errorf("parse go regular: %w", parseErr)
		return
	}
	if bold, parseErr = opentype.Parse(gobold.TTF); parseErr != nil {
		parseErr = fmt.Errorf("parse go bold: %w", parseErr)
	}
}

// NewFace returns a new face of the embedded font at size points (72 DPI, so
// one point is one diagram unit). Faces are not safe for concurrent use;
// callers keep their own.
func NewFace(size float64, isBold bool) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	f := regular
	if isBold {
		f = bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	regularBase64     string
	regularBase64Once sync.Once
	boldBase64        string
	boldBase64Once    sync.Once
)

// RegularBase64 returns the regular TTF as a base64 string.
func RegularBase64() string {
	regularBase64Once.Do(func() {
		regularBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return regularBase64
}

// BoldBase64 returns the bold TTF as a base64 string.
func BoldBase64() string {
	boldBase64Once.Do(func() {
		boldBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return boldBase64
}
