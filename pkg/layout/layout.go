package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/nestview/pkg/dag"
	"github.com/matzehuels/nestview/pkg/dag/transform"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// Defaults for Options.
const (
	DefaultNodeWidth = 180.0
	DefaultFontSize  = 14.0
	DefaultMinHeight = 48.0
	DefaultRankSep   = 80.0
	DefaultNodeSep   = 40.0
	DefaultSweeps    = 4
)

// Sizer reports the width and height of a node.
type Sizer func(n visibility.Node) (width, height float64)

// Options configures Compute. Zero values select the defaults.
type Options struct {
	NodeWidth float64
	FontSize  float64
	MinHeight float64
	RankSep   float64
	NodeSep   float64
	Sweeps    int

	// Size overrides the width/height heuristic.
	Size Sizer
	// Keep holds recorded top-left positions keyed by node ID.
	Keep map[string]model.Point
}

func (o Options) withDefaults() Options {
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.MinHeight <= 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.RankSep <= 0 {
		o.RankSep = DefaultRankSep
	}
	if o.NodeSep <= 0 {
		o.NodeSep = DefaultNodeSep
	}
	if o.Sweeps <= 0 {
		o.Sweeps = DefaultSweeps
	}
	if o.Size == nil {
		w, fs, minH := o.NodeWidth, o.FontSize, o.MinHeight
		o.Size = func(n visibility.Node) (float64, float64) {
			return w, EstimateHeight(n.Title(), w, fs, minH)
		}
	}
	return o
}

// Box is a positioned node. X and Y are the top-left corner.
type Box struct {
	ID     string
	X, Y   float64
	Width  float64
	Height float64
	Rank   int
	Order  int  // position within the rank, top to bottom
	Kept   bool // position came from Options.Keep
}

// Center returns the midpoint of the box.
func (b Box) Center() model.Point {
	return model.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Layout is the result of Compute.
type Layout struct {
	// Boxes follow the order of the view's nodes.
	Boxes []Box
	// Ranks is the number of ranks, counting those that only hold
	// subdivided edges.
	Ranks int
	// Crossings is the number of edge crossings of the chosen ordering.
	Crossings int
	// CyclesBroken is the number of edges ignored to make the graph acyclic.
	CyclesBroken int
	// Bends holds, for every edge ID that spans more than one rank, the
	// centers of the slots reserved for it in intermediate ranks.
	Bends map[string][]model.Point

	index map[string]int
}

// Box returns the box of the given node.
func (l *Layout) Box(id string) (Box, bool) {
	i, ok := l.index[id]
	if !ok {
		return Box{}, false
	}
	return l.Boxes[i], true
}

// Positions returns the top-left position of every box, keyed by ID, in the
// form accepted by Options.Keep.
func (l *Layout) Positions() map[string]model.Point {
	out := make(map[string]model.Point, len(l.Boxes))
	for _, b := range l.Boxes {
		out[b.ID] = model.Point{X: b.X, Y: b.Y}
	}
	return out
}

// Compute lays out the view. It never fails: cycles are broken and empty
// views produce an empty Layout.
func Compute(v *visibility.View, opts Options) *Layout {
	opts = opts.withDefaults()
	out := &Layout{index: make(map[string]int, len(v.Nodes)), Bends: make(map[string][]model.Point)}
	if len(v.Nodes) == 0 {
		return out
	}

	sizes := make(map[string][2]float64, len(v.Nodes))
	g := dag.New()
	for _, n := range v.Nodes {
		w, h := opts.Size(n)
		sizes[n.ID] = [2]float64{w, h}
		_ = g.AddNode(dag.Node{ID: n.ID})
	}
	edgeOf := make(map[[2]string]string)
	for _, e := range v.Edges {
		key := [2]string{e.Source, e.Target}
		if _, dup := edgeOf[key]; dup || e.Source == e.Target {
			continue
		}
		edgeOf[key] = e.ID
		_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target, Meta: dag.Metadata{"id": e.ID}})
	}

	out.CyclesBroken = transform.Normalize(g)
	out.Ranks = g.MaxRow() + 1
	if g.EdgeCount() > 0 {
		out.Crossings = order(g, opts.Sweeps)
	}
	centers := place(g, sizes, opts)

	for i, n := range v.Nodes {
		c := centers[n.ID]
		sz := sizes[n.ID]
		dn, _ := g.Node(n.ID)
		b := Box{
			ID:     n.ID,
			X:      c.X - sz[0]/2,
			Y:      c.Y - sz[1]/2,
			Width:  sz[0],
			Height: sz[1],
			Rank:   dn.Row,
			Order:  slices.Index(dag.NodeIDs(g.NodesInRow(dn.Row)), n.ID),
		}
		if p, ok := opts.Keep[n.ID]; ok {
			b.X, b.Y, b.Kept = p.X, p.Y, true
		}
		out.Boxes = append(out.Boxes, b)
		out.index[n.ID] = i
	}

	for _, n := range g.Nodes() {
		if !n.IsSubdivider() {
			continue
		}
		from, _ := n.Meta[transform.MetaFrom].(string)
		to, _ := n.Meta[transform.MetaTo].(string)
		if id, ok := edgeOf[[2]string{from, to}]; ok {
			out.Bends[id] = append(out.Bends[id], centers[n.ID])
		}
	}
	return out
}

// order runs barycentric sweeps with adjacent-swap refinement and leaves g
// in the best ordering found. It returns that ordering's crossing count.
func order(g *dag.DAG, sweeps int) int {
	rows := g.RowIDs()
	best := dag.CurrentOrders(g)
	bestCount := dag.CountCrossings(g, best)

	for s := 0; s < sweeps && bestCount > 0; s++ {
		for _, r := range rows[1:] {
			reorder(g, r, r-1, true)
		}
		for i := len(rows) - 2; i >= 0; i-- {
			reorder(g, rows[i], rows[i]+1, false)
		}
		transpose(g, rows)

		cur := dag.CurrentOrders(g)
		if n := dag.CountCrossings(g, cur); n < bestCount {
			best, bestCount = cur, n
		}
	}

	for r, ids := range best {
		g.SetRowOrder(r, ids)
	}
	return bestCount
}

// reorder sorts row by the mean position of each node's neighbours in adj.
// Nodes without neighbours there keep their current position as key.
func reorder(g *dag.DAG, row, adj int, useParents bool) {
	adjPos := dag.PosMap(dag.NodeIDs(g.NodesInRow(adj)))
	ids := dag.NodeIDs(g.NodesInRow(row))
	keys := make(map[string]float64, len(ids))
	for i, id := range ids {
		nbrs := g.Children(id)
		if useParents {
			nbrs = g.Parents(id)
		}
		sum, n := 0.0, 0
		for _, nb := range nbrs {
			if p, ok := adjPos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			keys[id] = float64(i)
		} else {
			keys[id] = sum / float64(n)
		}
	}
	slices.SortStableFunc(ids, func(a, b string) int { return cmp.Compare(keys[a], keys[b]) })
	g.SetRowOrder(row, ids)
}

// transpose swaps adjacent nodes while doing so reduces crossings with both
// neighbouring ranks.
func transpose(g *dag.DAG, rows []int) {
	for improved := true; improved; {
		improved = false
		for _, r := range rows {
			ids := dag.NodeIDs(g.NodesInRow(r))
			prev := dag.PosMap(dag.NodeIDs(g.NodesInRow(r - 1)))
			next := dag.PosMap(dag.NodeIDs(g.NodesInRow(r + 1)))
			for i := 0; i+1 < len(ids); i++ {
				l, rr := ids[i], ids[i+1]
				before := dag.CountPairCrossings(g, l, rr, prev, true) + dag.CountPairCrossings(g, l, rr, next, false)
				after := dag.CountPairCrossings(g, rr, l, prev, true) + dag.CountPairCrossings(g, rr, l, next, false)
				if after < before {
					ids[i], ids[i+1] = rr, l
					improved = true
				}
			}
			g.SetRowOrder(r, ids)
		}
	}
}

// place returns the center of every node, subdividers included.
func place(g *dag.DAG, sizes map[string][2]float64, opts Options) map[string]model.Point {
	rows := g.RowIDs()
	size := func(n *dag.Node) (float64, float64) {
		if n.IsSubdivider() {
			return 0, 0
		}
		s := sizes[n.ID]
		return s[0], s[1]
	}
	sep := func(n *dag.Node) float64 {
		if n.IsSubdivider() {
			return opts.NodeSep / 2
		}
		return opts.NodeSep
	}

	rankWidth := make(map[int]float64, len(rows))
	rankHeight := make(map[int]float64, len(rows))
	tallest := 0.0
	for _, r := range rows {
		for i, n := range g.NodesInRow(r) {
			w, h := size(n)
			rankWidth[r] = max(rankWidth[r], w)
			if i > 0 {
				rankHeight[r] += sep(n)
			}
			rankHeight[r] += h
		}
		tallest = max(tallest, rankHeight[r])
	}

	centers := make(map[string]model.Point, g.NodeCount())
	x := 0.0
	for _, r := range slices.Sorted(maps.Keys(rankWidth)) {
		cx := x + rankWidth[r]/2
		y := (tallest - rankHeight[r]) / 2
		for i, n := range g.NodesInRow(r) {
			_, h := size(n)
			if i > 0 {
				y += sep(n)
			}
			centers[n.ID] = model.Point{X: cx, Y: y + h/2}
			y += h
		}
		x += rankWidth[r] + opts.RankSep
	}
	return centers
}
