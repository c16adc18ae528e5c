package scene

import (
	"github.com/matzehuels/nestview/pkg/handles"
	"github.com/matzehuels/nestview/pkg/layout"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/route"
	"github.com/matzehuels/nestview/pkg/render/text"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// Default geometry, in diagram units.
const (
	DefaultMinBoxWidth   = 120.0
	DefaultMaxBoxWidth   = 260.0
	DefaultMinBoxHeight  = 48.0
	DefaultPaddingX      = 12.0
	DefaultPaddingY      = 10.0
	DefaultFontSize      = 14.0
	DefaultLaneSpacing   = 10.0
	DefaultLaneMargin    = 6.0
	DefaultArrowSize     = 8.0
	DefaultMargin        = 24.0
	DefaultLabelMaxWidth = 160.0
	DefaultLabelPadding  = 4.0
	DefaultPortRadius    = 4.0
)

// Options configures scene assembly.
type Options struct {
	MinBoxWidth   float64
	MaxBoxWidth   float64
	MinBoxHeight  float64
	PaddingX      float64
	PaddingY      float64
	FontSize      float64
	LaneSpacing   float64
	LaneMargin    float64
	ArrowSize     float64
	Margin        float64
	LabelMaxWidth float64
	LabelPadding  float64
	PortRadius    float64

	// Measurer measures text; nil uses the character-width estimate.
	Measurer text.Measurer

	// Grid adds row/column bands. Nil draws none.
	Grid *Grid
}

// WithDefaults fills zero fields.
func (o Options) WithDefaults() Options {
	def := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&o.MinBoxWidth, DefaultMinBoxWidth)
	def(&o.MaxBoxWidth, DefaultMaxBoxWidth)
	def(&o.MinBoxHeight, DefaultMinBoxHeight)
	def(&o.PaddingX, DefaultPaddingX)
	def(&o.PaddingY, DefaultPaddingY)
	def(&o.FontSize, DefaultFontSize)
	def(&o.LaneSpacing, DefaultLaneSpacing)
	def(&o.LaneMargin, DefaultLaneMargin)
	def(&o.ArrowSize, DefaultArrowSize)
	def(&o.Margin, DefaultMargin)
	def(&o.LabelMaxWidth, DefaultLabelMaxWidth)
	def(&o.LabelPadding, DefaultLabelPadding)
	def(&o.PortRadius, DefaultPortRadius)
	if o.MaxBoxWidth < o.MinBoxWidth {
		o.MaxBoxWidth = o.MinBoxWidth
	}
	return o
}

func (o Options) boxOptions() text.BoxOptions {
	return text.BoxOptions{
		MinWidth:  o.MinBoxWidth,
		MaxWidth:  o.MaxBoxWidth,
		MinHeight: o.MinBoxHeight,
		PaddingX:  o.PaddingX,
		PaddingY:  o.PaddingY,
	}
}

// Port is a drawn attachment point on a group box.
type Port struct {
	ID        string
	Direction model.Direction
	Label     string
	Center    route.Point
	// Group marks the permanent centered ports.
	Group bool
}

// Node is a positioned, measured node box.
type Node struct {
	ID          string
	Type        string
	Title       string
	Description string
	Box         route.Rect
	Text        text.Block
	Ports       []Port
	Rank        int
	Kept        bool
	Row         string
	Column      string
	Meta        model.Metadata
}

// Label is an edge label chip.
type Label struct {
	Text text.Block
	Box  route.Rect
}

// Edge is a routed edge.
type Edge struct {
	ID           string
	Source       string
	Target       string
	Label        string
	Description  string
	SourceHandle string
	TargetHandle string
	Rerouted     bool
	Lane         route.Lane
	Points       []route.Point
	Chip         *Label
}

// Scene is everything a sink needs to draw one view.
type Scene struct {
	Scope   string
	Nodes   []Node
	Edges   []Edge
	Rows    []Band
	Columns []Band
	ViewBox route.Rect
	Theme   text.Theme
	// ArrowSize is the arrowhead length the paths were shortened by.
	ArrowSize float64
	// PortRadius is the radius of drawn ports.
	PortRadius float64
}

// Empty reports whether the scene has no nodes.
func (s *Scene) Empty() bool { return len(s.Nodes) == 0 }

// Node returns the node with the given ID.
func (s *Scene) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Sizer returns a layout sizer that measures nodes exactly as [Build] will,
// so layout spacing matches the drawn boxes.
func Sizer(opts Options) layout.Sizer {
	opts = opts.WithDefaults()
	th := text.DefaultTheme(opts.FontSize)
	return func(n visibility.Node) (float64, float64) {
		b := text.Layout(text.NodeSegments(n.Title(), n.Horizon, n.Meta, th), opts.Measurer, opts.boxOptions())
		return b.Width, b.Height
	}
}

// Build assembles the scene. Nodes missing from l are skipped along with
// their edges. An empty view yields an empty scene with a margin-sized
// viewBox.
func Build(v *visibility.View, l *layout.Layout, ports map[string]handles.Group, opts Options) *Scene {
	opts = opts.WithDefaults()
	th := text.DefaultTheme(opts.FontSize)
	s := &Scene{Scope: v.Scope, Theme: th, ArrowSize: opts.ArrowSize, PortRadius: opts.PortRadius}

	var bounds route.Bounds
	boxes := make(map[string]route.Rect, len(v.Nodes))
	for _, n := range v.Nodes {
		lb, ok := l.Box(n.ID)
		if !ok {
			continue
		}
		box := route.Rect{X: lb.X, Y: lb.Y, W: lb.Width, H: lb.Height}
		block := text.Layout(text.NodeSegments(n.Title(), n.Horizon, n.Meta, th), opts.Measurer, opts.boxOptions())
		if block.Height > box.H {
			// Recorded positions may carry a stale, smaller size.
			box.H = block.Height
		}
		boxes[n.ID] = box

		sn := Node{
			ID:          n.ID,
			Type:        n.Type(),
			Title:       n.Title(),
			Description: n.Description,
			Box:         box,
			Text:        block,
			Rank:        lb.Rank,
			Kept:        lb.Kept,
			Meta:        n.Meta,
		}
		if g, ok := ports[n.ID]; ok {
			sn.Ports = placePorts(g, box)
			for _, p := range sn.Ports {
				bounds.Add(route.Centered(p.Center, 2*opts.PortRadius, 2*opts.PortRadius))
			}
		}
		bounds.Add(box)
		s.Nodes = append(s.Nodes, sn)
	}

	var (
		kept  []visibility.Edge
		pairs []route.Pair
	)
	for _, e := range v.Edges {
		if _, ok := boxes[e.Source]; !ok {
			continue
		}
		if _, ok := boxes[e.Target]; !ok {
			continue
		}
		kept = append(kept, e)
		pairs = append(pairs, route.Pair{Source: e.Source, Target: e.Target})
	}
	lanes := route.AssignLanes(pairs)
	ropts := route.Options{LaneSpacing: opts.LaneSpacing, LaneMargin: opts.LaneMargin, ArrowSize: opts.ArrowSize}

	for i, e := range kept {
		from := anchor(boxes[e.Source], ports, e.Source, e.SourceHandle)
		to := anchor(boxes[e.Target], ports, e.Target, e.TargetHandle)
		pts := route.Orthogonal(from, to, lanes[i].Index, lanes[i].Count, ropts)
		bounds.AddPoints(pts)

		se := Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			Label:        e.Label,
			Description:  e.Description,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Rerouted:     e.Rerouted(),
			Lane:         lanes[i],
			Points:       pts,
		}
		if e.Label != "" {
			se.Chip = placeLabel(e.Label, pts, th.Label, opts)
			bounds.Add(se.Chip.Box)
		}
		s.Edges = append(s.Edges, se)
	}

	if opts.Grid != nil {
		s.Rows, s.Columns = placeGrid(*opts.Grid, &bounds, opts)
		assignCells(s)
	}

	s.ViewBox = bounds.ViewBox(opts.Margin)
	return s
}

// placePorts converts port percentages into points on the box sides:
// inputs on the left edge, outputs on the right.
func placePorts(g handles.Group, box route.Rect) []Port {
	at := func(p handles.Port, group bool) Port {
		x := box.X
		if portSide(p.Direction) > 0 {
			x = box.Right()
		}
		return Port{
			ID:        p.ID,
			Direction: p.Direction,
			Label:     p.Label,
			Center:    route.Point{X: x, Y: box.Y + box.H*p.Percent/100},
			Group:     group,
		}
	}
	out := []Port{at(g.In, true), at(g.Out, true)}
	for _, p := range g.Inputs {
		out = append(out, at(p, false))
	}
	for _, p := range g.Outputs {
		out = append(out, at(p, false))
	}
	return out
}

// portSide is the box side ports of dir are drawn on: +1 right, -1 left.
func portSide(dir model.Direction) float64 {
	if dir == model.DirectionOut {
		return 1
	}
	return -1
}

// anchor pins an edge end to its handle's port when the owner has one, so
// the path leaves from the side the port is drawn on.
func anchor(box route.Rect, ports map[string]handles.Group, owner, handle string) route.Anchor {
	a := route.Anchor{Box: box}
	if handle == "" {
		return a
	}
	g, ok := ports[owner]
	if !ok {
		return a
	}
	p, ok := g.Port(handle)
	if !ok {
		return a
	}
	pct := p.Percent
	a.Port, a.Side = &pct, portSide(p.Direction)
	return a
}

// placeLabel centers a label chip on the path's arc-length midpoint.
func placeLabel(label string, pts []route.Point, style text.Style, opts Options) *Label {
	block := text.Layout(
		[]text.Segment{{Kind: text.KindLabel, Text: label, Style: style}},
		opts.Measurer,
		text.BoxOptions{MaxWidth: opts.LabelMaxWidth, PaddingX: opts.LabelPadding, PaddingY: opts.LabelPadding},
	)
	mid := route.Midpoint(pts)
	return &Label{Text: block, Box: route.Centered(mid, block.Width, block.Height)}
}
