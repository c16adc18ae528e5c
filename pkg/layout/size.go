package layout

import (
	"math"
	"unicode/utf8"
)

// Sizing constants for the text-extent heuristic.
const (
	// CharWidthFactor approximates the average glyph width as a fraction of
	// the font size.
	CharWidthFactor = 0.6
	// LineHeightFactor is the line pitch as a multiple of the font size.
	LineHeightFactor = 1.4
	// VerticalPadding is added above and below the text block.
	VerticalPadding = 12.0
)

// EstimateHeight estimates the height a box of the given width needs for
// label, assuming width / (fontSize × CharWidthFactor) characters per line.
// The result is never below minHeight.
func EstimateHeight(label string, width, fontSize, minHeight float64) float64 {
	if fontSize <= 0 || width <= 0 {
		return minHeight
	}
	perLine := math.Floor(width / (fontSize * CharWidthFactor))
	if perLine < 1 {
		perLine = 1
	}
	chars := float64(utf8.RuneCountInString(label))
	lines := math.Max(1, math.Ceil(chars/perLine))
	h := lines*fontSize*LineHeightFactor + 2*VerticalPadding
	return math.Max(h, minHeight)
}
