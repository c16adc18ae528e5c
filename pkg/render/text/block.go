package text

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/nestview/pkg/model"
)

// Segment kinds used for node display text.
const (
	KindTitle       = "title"
	KindDescription = "description"
	KindScore       = "score"
	KindBudget      = "budget"
	KindCost        = "cost"
	KindHorizon     = "horizon"
	KindLabel       = "label"
)

// LineHeightFactor is the baseline-to-baseline distance as a multiple of
// font size.
const LineHeightFactor = 1.3

// Style is the typography of one segment.
type Style struct {
	Size   float64
	Weight Weight
	Color  string
}

// Segment is a run of text sharing one style.
type Segment struct {
	Kind  string
	Text  string
	Style Style
}

// Line is one wrapped line, positioned relative to the block's top-left.
type Line struct {
	Kind     string
	Text     string
	Style    Style
	Width    float64
	Baseline float64
}

// Block is the wrapped text of one box.
type Block struct {
	Lines  []Line
	Width  float64
	Height float64
}

// BoxOptions bounds the box a block is laid out in.
type BoxOptions struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	PaddingX  float64
	PaddingY  float64
}

// Layout wraps segments inside a box. The box width grows to fit the longest
// line, clamped to [MinWidth, MaxWidth]; the height grows to fit all lines and
// never drops below MinHeight. Line baselines are vertically centered.
func Layout(segs []Segment, m Measurer, opts BoxOptions) Block {
	m = orEstimate(m)
	content := opts.MaxWidth - 2*opts.PaddingX
	if content <= 0 {
		content = opts.MaxWidth
	}

	var (
		lines   []Line
		widest  float64
		textH   float64
		heights []float64
	)
	for _, s := range segs {
		for _, t := range Wrap(s.Text, content, s.Style.Size, s.Style.Weight, m) {
			w := m.Measure(t, s.Style.Size, s.Style.Weight)
			widest = math.Max(widest, w)
			lh := s.Style.Size * LineHeightFactor
			textH += lh
			heights = append(heights, lh)
			lines = append(lines, Line{Kind: s.Kind, Text: t, Style: s.Style, Width: w})
		}
	}

	b := Block{
		Width:  clamp(widest+2*opts.PaddingX, opts.MinWidth, opts.MaxWidth),
		Height: math.Max(textH+2*opts.PaddingY, opts.MinHeight),
	}

	y := (b.Height - textH) / 2
	for i := range lines {
		// Baseline sits at roughly 80% of the line box.
		lines[i].Baseline = y + heights[i]*0.8
		y += heights[i]
	}
	b.Lines = lines
	return b
}

func clamp(v, lo, hi float64) float64 {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Theme holds the typography applied to each segment kind.
type Theme struct {
	Title  Style
	Detail Style
	Label  Style
}

// DefaultTheme returns the typography used for a base font size.
func DefaultTheme(size float64) Theme {
	return Theme{
		Title:  Style{Size: size, Weight: Bold, Color: "#1f2933"},
		Detail: Style{Size: size * 0.8, Weight: Regular, Color: "#52606d"},
		Label:  Style{Size: size * 0.8, Weight: Regular, Color: "#323f4b"},
	}
}

// NodeSegments derives the display segments of a node: its title followed by
// any score, budget, cost and horizon values.
func NodeSegments(title, horizon string, meta model.Metadata, th Theme) []Segment {
	segs := []Segment{{Kind: KindTitle, Text: title, Style: th.Title}}
	for _, k := range []string{KindScore, KindBudget, KindCost} {
		if v, ok := meta[k]; ok && v != nil {
			segs = append(segs, Segment{Kind: k, Text: k + ": " + formatValue(v), Style: th.Detail})
		}
	}
	if horizon != "" {
		segs = append(segs, Segment{Kind: KindHorizon, Text: "horizon: " + horizon, Style: th.Detail})
	}
	return segs
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
