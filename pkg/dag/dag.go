package dag

import (
	"errors"
	"maps"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonConsecutiveRows is returned by [DAG.Validate] when an edge
	// connects nodes that are not in adjacent ranks (From.Row+1 != To.Row).
	ErrNonConsecutiveRows = errors.New("edges must connect consecutive rows")

	// ErrGraphHasCycle is returned by [DAG.Validate] and [DAG.TopoOrder]
	// when a directed cycle exists.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes or edges.
type Metadata map[string]any

// NodeKind distinguishes between original and synthetic nodes created during
// graph transformation.
type NodeKind int

const (
	// NodeKindRegular represents a visible diagram node.
	NodeKindRegular NodeKind = iota
	// NodeKindSubdivider represents a synthetic node inserted to subdivide an
	// edge that spans several ranks. Subdividers reserve a lane for the edge
	// and are never drawn.
	NodeKindSubdivider
)

// Node is a vertex of the rank graph.
//
// Row is the rank: 0 is the leftmost column of a left-to-right layout.
type Node struct {
	ID   string
	Row  int
	Meta Metadata

	Kind NodeKind
	// MasterID links a subdivider back to the source of the edge it splits.
	MasterID string
}

// IsSubdivider reports whether the node was inserted to break a long edge.
func (n Node) IsSubdivider() bool { return n.Kind == NodeKindSubdivider }

// Edge represents a directed connection between two nodes.
type Edge struct {
	From string
	To   string
	Meta Metadata
}

// DAG is a directed graph organized into ranks for layered layouts.
//
// Unlike a plain map-backed graph, a DAG remembers insertion order: [DAG.Nodes],
// [DAG.Sources] and [DAG.NodesInRow] all return nodes in the order
// they were added, so every algorithm built on top of it is deterministic.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	rows     map[int][]*Node
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		rows:     make(map[int][]*Node),
	}
}

// AddNode adds a node to the graph and indexes it by its Row.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	d.rows[node.Row] = append(d.rows[node.Row], node)
	return nil
}

// SetRows updates rank assignments and rebuilds the row index.
// Nodes not present in rows keep their current rank.
func (d *DAG) SetRows(rows map[string]int) {
	d.rows = make(map[int][]*Node)
	for _, id := range d.order {
		n := d.nodes[id]
		if newRow, ok := rows[n.ID]; ok {
			n.Row = newRow
		}
		d.rows[n.Row] = append(d.rows[n.Row], n)
	}
}

// SetRowOrder replaces the in-rank order of row. ids must be a permutation
// of the row's current members; other values are ignored.
func (d *DAG) SetRowOrder(row int, ids []string) {
	cur := d.rows[row]
	if len(ids) != len(cur) {
		return
	}
	next := make([]*Node, 0, len(ids))
	for _, id := range ids {
		n, ok := d.nodes[id]
		if !ok || n.Row != row {
			return
		}
		next = append(next, n)
	}
	d.rows[row] = next
}

// AddEdge adds a directed edge between two existing nodes.
// Multiple edges between the same nodes are allowed.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes every edge from→to.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes this node has edges to.
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// The returned slice should not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodesInRow returns all nodes assigned to the given rank in their current
// in-rank order.
func (d *DAG) NodesInRow(row int) []*Node { return d.rows[row] }

// RowCount returns the number of distinct ranks in the graph.
func (d *DAG) RowCount() int { return len(d.rows) }

// RowIDs returns all rank indices in ascending order.
func (d *DAG) RowIDs() []int {
	return slices.Sorted(maps.Keys(d.rows))
}

// MaxRow returns the highest rank index, or 0 if the graph is empty.
func (d *DAG) MaxRow() int {
	if len(d.rows) == 0 {
		return 0
	}
	rowIDs := d.RowIDs()
	return rowIDs[len(rowIDs)-1]
}

// Sources returns nodes with no incoming edges in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Validate checks graph integrity. It verifies that every edge connects
// existing nodes in consecutive ranks and that the graph is acyclic.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		src, okS := d.nodes[e.From]
		dst, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
		if dst.Row != src.Row+1 {
			return ErrNonConsecutiveRows
		}
	}
	if len(d.Cycles()) > 0 {
		return ErrGraphHasCycle
	}
	return nil
}

// TopoOrder returns node IDs in a topological order. Among nodes that are
// ready at the same time, earlier-inserted nodes come first. It returns
// ErrGraphHasCycle if the graph is cyclic.
func (d *DAG) TopoOrder() ([]string, error) {
	inDegree := make(map[string]int, len(d.order))
	queue := make([]string, 0, len(d.order))
	for _, id := range d.order {
		inDegree[id] = len(d.incoming[id])
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	order := make([]string, 0, len(d.order))
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, child := range d.outgoing[cur] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if len(order) != len(d.order) {
		return nil, ErrGraphHasCycle
	}
	return order, nil
}

// Cycles returns the strongly connected components that contain a cycle,
// including single nodes with a self-loop. Members are listed in insertion
// order and components are ordered by their first member.
func (d *DAG) Cycles() [][]string {
	g, index := d.directed()
	var out [][]string
	for _, comp := range topo.TarjanSCC(g) {
		if len(comp) == 1 && !d.hasSelfLoop(d.order[comp[0].ID()]) {
			continue
		}
		ids := make([]int64, len(comp))
		for i, n := range comp {
			ids[i] = n.ID()
		}
		slices.Sort(ids)
		members := make([]string, len(ids))
		for i, id := range ids {
			members[i] = d.order[id]
		}
		out = append(out, members)
	}
	slices.SortFunc(out, func(a, b []string) int {
		return int(index[a[0]] - index[b[0]])
	})
	return out
}

func (d *DAG) hasSelfLoop(id string) bool {
	return slices.Contains(d.outgoing[id], id)
}

// directed mirrors the graph into a gonum directed graph whose node IDs are
// insertion indices. Self-loops are omitted because simple graphs reject them.
func (d *DAG) directed() (*simple.DirectedGraph, map[string]int64) {
	g := simple.NewDirectedGraph()
	index := make(map[string]int64, len(d.order))
	for i, id := range d.order {
		index[id] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, e := range d.edges {
		if e.From == e.To {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(index[e.From]), simple.Node(index[e.To])))
	}
	return g, index
}

// PosMap creates a position lookup map from a slice of node IDs.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
