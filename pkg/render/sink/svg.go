package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/nestview/pkg/fonts"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/route"
	"github.com/matzehuels/nestview/pkg/render/scene"
	"github.com/matzehuels/nestview/pkg/render/text"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFont  bool
	background string
	tooltips   bool
	showPorts  bool
	portLabels bool
	portRadius float64
}

// WithEmbeddedFont embeds the Go fonts as base64 @font-face rules, so viewers
// draw the glyphs the layout was measured with.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithBackground sets the background fill. An empty color disables it.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTooltips adds <title> elements carrying descriptions.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// WithoutPorts hides group ports.
func WithoutPorts() SVGOption { return func(r *svgRenderer) { r.showPorts = false } }

// WithPortLabels writes the buried node's name next to each rerouted port.
func WithPortLabels() SVGOption { return func(r *svgRenderer) { r.portLabels = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{background: colorBackground, showPorts: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG writes the scene as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	r.portRadius = s.PortRadius
	vb := s.ViewBox

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		vb.X, vb.Y, vb.W, vb.H, math.Ceil(vb.W), math.Ceil(vb.H))

	r.renderDefs(&buf, s)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			vb.X, vb.Y, vb.W, vb.H, r.background)
	}

	renderBands(&buf, s)
	for _, e := range s.Edges {
		r.renderEdge(&buf, e)
	}
	for _, n := range s.Nodes {
		r.renderNode(&buf, n)
	}
	for _, e := range s.Edges {
		if e.Chip != nil {
			renderChip(&buf, e)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer, s *scene.Scene) {
	a := s.ArrowSize
	buf.WriteString("  <defs>\n")
	for _, m := range []struct{ id, color string }{{"arrow", colorEdge}, {"arrow-rerouted", colorRerouted}} {
		fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 0 %.1f %.1f" refX="0" refY="%.1f" markerWidth="%.1f" markerHeight="%.1f" markerUnits="userSpaceOnUse" orient="auto">`+"\n",
			m.id, a, a, a/2, a, a)
		fmt.Fprintf(buf, `      <path d="M0 0 L%.1f %.1f L0 %.1f z" fill="%s"/>`+"\n", a, a/2, a, m.color)
		buf.WriteString("    </marker>\n")
	}
	if r.embedFont {
		buf.WriteString("    <style>\n")
		fmt.Fprintf(buf, "      @font-face { font-family: '%s'; font-weight: normal; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.RegularBase64())
		fmt.Fprintf(buf, "      @font-face { font-family: '%s'; font-weight: bold; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.BoldBase64())
		buf.WriteString("    </style>\n")
	}
	buf.WriteString("  </defs>\n")
}

func renderBands(buf *bytes.Buffer, s *scene.Scene) {
	if len(s.Rows)+len(s.Columns) == 0 {
		return
	}
	size := s.Theme.Label.Size
	buf.WriteString(`  <g class="grid">` + "\n")
	for i, b := range s.Rows {
		bandRect(buf, b, i)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
			b.Box.X+4, b.Box.Y+size*1.2, fonts.FallbackFontFamily, size, colorBandText, EscapeXML(bandLabel(b)))
	}
	for i, b := range s.Columns {
		bandRect(buf, b, i)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="middle">%s</text>`+"\n",
			b.Box.X+b.Box.W/2, b.Box.Y+size*1.2, fonts.FallbackFontFamily, size, colorBandText, EscapeXML(bandLabel(b)))
	}
	buf.WriteString("  </g>\n")
}

func bandRect(buf *bytes.Buffer, b scene.Band, i int) {
	fill := colorBandEven
	if i%2 == 1 {
		fill = colorBandOdd
	}
	fmt.Fprintf(buf, `    <rect id="band-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="0.7"/>`+"\n",
		EscapeXML(b.ID), b.Box.X, b.Box.Y, b.Box.W, b.Box.H, fill)
}

func bandLabel(b scene.Band) string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

func (r *svgRenderer) renderEdge(buf *bytes.Buffer, e scene.Edge) {
	if len(e.Points) < 2 {
		return
	}
	d := route.PathData(e.Points)
	color, marker := colorEdge, "arrow"
	if e.Rerouted {
		color, marker = colorRerouted, "arrow-rerouted"
	}
	fmt.Fprintf(buf, `  <g class="edge" id="edge-%s">`+"\n", EscapeXML(e.ID))
	if r.tooltips && (e.Label != "" || e.Description != "") {
		fmt.Fprintf(buf, "    <title>%s</title>\n", EscapeXML(tooltip(e.Label, e.Description)))
	}
	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="0.85" stroke-linejoin="round"/>`+"\n",
		d, colorHalo, haloWidth)
	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round" marker-end="url(#%s)"/>`+"\n",
		d, color, edgeWidth, marker)
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n scene.Node) {
	fill, stroke := colorLeafFill, colorLeafStroke
	if n.Type == "group" {
		fill, stroke = colorGroupFill, colorGroupStrk
	}
	b := n.Box
	fmt.Fprintf(buf, `  <g class="node %s" id="node-%s">`+"\n", n.Type, EscapeXML(n.ID))
	if r.tooltips && n.Description != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", EscapeXML(n.Description))
	}
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		b.X, b.Y, b.W, b.H, cornerRadius, fill, stroke)
	writeBlock(buf, n.Text, b)

	if r.showPorts {
		for _, p := range n.Ports {
			r.renderPort(buf, p)
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderPort(buf *bytes.Buffer, p scene.Port) {
	color := colorPortIn
	if p.Direction == model.DirectionOut {
		color = colorPortOut
	}
	radius := r.portRadius
	if p.Group {
		radius *= 1.25
	}
	fmt.Fprintf(buf, `    <circle class="port" id="port-%s" cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="#ffffff" stroke-width="1"/>`+"\n",
		EscapeXML(p.ID), p.Center.X, p.Center.Y, radius, color)
	if r.portLabels && !p.Group && p.Label != "" {
		anchor, dx := "end", -8.0
		if p.Direction == model.DirectionOut {
			anchor, dx = "start", 8.0
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="9" fill="%s" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n",
			p.Center.X+dx, p.Center.Y, fonts.FallbackFontFamily, colorBandText, anchor, EscapeXML(p.Label))
	}
}

func renderChip(buf *bytes.Buffer, e scene.Edge) {
	c := e.Chip.Box
	fmt.Fprintf(buf, `  <g class="label" id="label-%s">`+"\n", EscapeXML(e.ID))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" fill="%s" stroke="%s"/>`+"\n",
		c.X, c.Y, c.W, c.H, chipRadius, colorChipFill, colorChipStroke)
	writeBlock(buf, e.Chip.Text, c)
	buf.WriteString("  </g>\n")
}

// writeBlock centers a wrapped text block inside box.
func writeBlock(buf *bytes.Buffer, blk text.Block, box route.Rect) {
	top := box.Y + (box.H-blk.Height)/2
	cx := box.X + box.W/2
	for _, l := range blk.Lines {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s" text-anchor="middle">%s</text>`+"\n",
			cx, top+l.Baseline, fonts.FallbackFontFamily, l.Style.Size, l.Style.Weight, colorOr(l.Style.Color), EscapeXML(l.Text))
	}
}

func colorOr(c string) string {
	if c == "" {
		return "#1f2933"
	}
	return c
}

func tooltip(label, desc string) string {
	switch {
	case label == "":
		return desc
	case desc == "":
		return label
	default:
		return label + ": " + desc
	}
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
