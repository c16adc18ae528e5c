package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"strconv"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/nestview/pkg/fonts"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/route"
	"github.com/matzehuels/nestview/pkg/render/scene"
	"github.com/matzehuels/nestview/pkg/render/text"
)

// MaxPNGPixels bounds the raster size to keep memory in check.
const MaxPNGPixels = 64 << 20

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the background fill. An empty color leaves it
// transparent.
func WithPNGBackground(color string) PNGOption {
	return func(r *pngRenderer) { r.background = color }
}

// RenderPNG rasterizes the scene with gg using the embedded Go fonts.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: colorBackground}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("invalid PNG scale %v", r.scale)
	}

	vb := s.ViewBox
	w, h := int(math.Ceil(vb.W*r.scale)), int(math.Ceil(vb.H*r.scale))
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	if w*h > MaxPNGPixels {
		return nil, fmt.Errorf("PNG of %dx%d pixels exceeds limit; lower the scale", w, h)
	}

	p := &painter{dc: gg.NewContext(w, h), vb: vb, scale: r.scale, faces: map[faceKey]font.Face{}}
	defer p.close()

	if r.background != "" {
		p.dc.SetColor(hexColor(r.background))
		p.dc.Clear()
	}
	p.bands(s)
	for _, e := range s.Edges {
		p.edge(e, s.ArrowSize)
	}
	for _, n := range s.Nodes {
		if err := p.node(n, s.PortRadius); err != nil {
			return nil, err
		}
	}
	for _, e := range s.Edges {
		if e.Chip == nil {
			continue
		}
		if err := p.chip(e.Chip); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, p.dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	size float64
	bold bool
}

// painter maps scene units to pixels by hand rather than through the gg
// matrix, so glyphs are rasterized at their final size.
type painter struct {
	dc    *gg.Context
	vb    route.Rect
	scale float64
	faces map[faceKey]font.Face
}

func (p *painter) x(v float64) float64 { return (v - p.vb.X) * p.scale }
func (p *painter) y(v float64) float64 { return (v - p.vb.Y) * p.scale }
func (p *painter) d(v float64) float64 { return v * p.scale }

func (p *painter) rect(r route.Rect, radius float64) {
	if radius <= 0 {
		p.dc.DrawRectangle(p.x(r.X), p.y(r.Y), p.d(r.W), p.d(r.H))
		return
	}
	p.dc.DrawRoundedRectangle(p.x(r.X), p.y(r.Y), p.d(r.W), p.d(r.H), p.d(radius))
}

func (p *painter) bands(s *scene.Scene) {
	for i, b := range append(append([]scene.Band{}, s.Rows...), s.Columns...) {
		fill := colorBandEven
		if i%2 == 1 {
			fill = colorBandOdd
		}
		p.dc.SetColor(hexColor(fill))
		p.rect(b.Box, 0)
		p.dc.Fill()
	}
}

func (p *painter) edge(e scene.Edge, arrow float64) {
	if len(e.Points) < 2 {
		return
	}
	stroke := func(width float64, c color.Color) {
		p.dc.SetColor(c)
		p.dc.SetLineWidth(p.d(width))
		p.dc.MoveTo(p.x(e.Points[0].X), p.y(e.Points[0].Y))
		for _, pt := range e.Points[1:] {
			p.dc.LineTo(p.x(pt.X), p.y(pt.Y))
		}
		p.dc.Stroke()
	}
	col := colorEdge
	if e.Rerouted {
		col = colorRerouted
	}
	stroke(haloWidth, hexColor(colorHalo))
	stroke(edgeWidth, hexColor(col))

	// Arrowhead continues the last segment by arrow units.
	a, b := e.Points[len(e.Points)-2], e.Points[len(e.Points)-1]
	ang := math.Atan2(b.Y-a.Y, b.X-a.X)
	tip := route.Point{X: b.X + arrow*math.Cos(ang), Y: b.Y + arrow*math.Sin(ang)}
	nx, ny := -math.Sin(ang)*arrow/2, math.Cos(ang)*arrow/2
	p.dc.MoveTo(p.x(tip.X), p.y(tip.Y))
	p.dc.LineTo(p.x(b.X+nx), p.y(b.Y+ny))
	p.dc.LineTo(p.x(b.X-nx), p.y(b.Y-ny))
	p.dc.ClosePath()
	p.dc.Fill()
}

func (p *painter) node(n scene.Node, portRadius float64) error {
	fill, stroke := colorLeafFill, colorLeafStroke
	if n.Type == "group" {
		fill, stroke = colorGroupFill, colorGroupStrk
	}
	p.dc.SetColor(hexColor(fill))
	p.rect(n.Box, cornerRadius)
	p.dc.Fill()
	p.dc.SetColor(hexColor(stroke))
	p.dc.SetLineWidth(p.d(1.5))
	p.rect(n.Box, cornerRadius)
	p.dc.Stroke()

	if err := p.block(n.Text, n.Box); err != nil {
		return err
	}

	for _, port := range n.Ports {
		c := colorPortIn
		if port.Direction == model.DirectionOut {
			c = colorPortOut
		}
		r := portRadius
		if port.Group {
			r *= 1.25
		}
		p.dc.SetColor(hexColor(c))
		p.dc.DrawCircle(p.x(port.Center.X), p.y(port.Center.Y), p.d(r))
		p.dc.Fill()
	}
	return nil
}

func (p *painter) chip(l *scene.Label) error {
	p.dc.SetColor(hexColor(colorChipFill))
	p.rect(l.Box, chipRadius)
	p.dc.Fill()
	p.dc.SetColor(hexColor(colorChipStroke))
	p.dc.SetLineWidth(p.d(1))
	p.rect(l.Box, chipRadius)
	p.dc.Stroke()
	return p.block(l.Text, l.Box)
}

func (p *painter) block(blk text.Block, box route.Rect) error {
	top := box.Y + (box.H-blk.Height)/2
	cx := box.X + box.W/2
	for _, l := range blk.Lines {
		face, err := p.face(l.Style)
		if err != nil {
			return err
		}
		p.dc.SetFontFace(face)
		p.dc.SetColor(hexColor(colorOr(l.Style.Color)))
		p.dc.DrawStringAnchored(l.Text, p.x(cx), p.y(top+l.Baseline), 0.5, 0)
	}
	return nil
}

func (p *painter) face(st text.Style) (font.Face, error) {
	key := faceKey{size: p.d(st.Size), bold: st.Weight == text.Bold}
	if f, ok := p.faces[key]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(key.size, key.bold)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	p.faces[key] = f
	return f, nil
}

func (p *painter) close() {
	for _, f := range p.faces {
		_ = f.Close()
	}
}

// hexColor parses #rrggbb, returning black for anything else.
func hexColor(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return color.Black
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
