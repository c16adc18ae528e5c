package model

import (
	"maps"
	"slices"
)

// Metadata stores free-form key-value pairs attached to a container, such as
// "score", "budget" or "cost". Metadata maps are copied on build, never shared.
type Metadata map[string]any

// Point is a 2-D coordinate in diagram units.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Container is the base domain entity supplied by the host.
type Container struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        string   `json:"tags,omitempty" yaml:"tags,omitempty"` // comma-separated
	Horizon     string   `json:"horizon,omitempty" yaml:"horizon,omitempty"`
	ParentID    string   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Position    *Point   `json:"position,omitempty" yaml:"position,omitempty"`
	Meta        Metadata `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// ChildRef references a containee, optionally carrying the relationship
// payload that connects it to its parent.
type ChildRef struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Position    *Point `json:"position,omitempty" yaml:"position,omitempty"`
	Tags        string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ChildEntry is one row of the parent→children table.
type ChildEntry struct {
	ContainerID string     `json:"containerId" yaml:"containerId"`
	Children    []ChildRef `json:"children" yaml:"children"`
}

// ContainerRef is a lightweight back-reference produced by [Build].
type ContainerRef struct {
	ID   string
	Name string
}

// Node wraps a Container with its derived structure.
//
// TagSet is the parsed form of Container.Tags.
// Children are the declared containees (parent→children table plus ParentID
// pointers). Flows are outgoing relationship-map targets that are not also
// containees. Parents lists the containers that declare this node as a child.
type Node struct {
	Container
	TagSet   Tags
	Role     Role
	Children []ChildRef
	Flows    []ChildRef
	Parents  []ContainerRef
}

// Title returns the display name, falling back to the ID.
func (n *Node) Title() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Pair is one parent→child or source→target record, in the order Build
// first saw it. Either endpoint may name an unknown container.
type Pair struct {
	Source      string
	Target      string
	Label       string
	Description string
	Flow        bool // true when the pair came only from the relationship map
}

// Graph is the annotated node set produced by [Build].
// Nodes keep the order of the input container list.
type Graph struct {
	nodes []*Node
	index map[string]*Node
	pairs []Pair

	// Duplicates lists container IDs that appeared more than once; the first
	// occurrence wins.
	Duplicates []string
}

// Build merges containers, the parent→children table, and flow relationships
// into a Graph.
//
// Pairs are collected in this order: table entries, containers naming a
// ParentID, then relationships. A (source, target) pair is recorded once;
// later records only fill in a label or description the earlier one lacked.
// Pairs may reference unknown IDs: they are kept so the visibility resolver
// can report them.
//
// Build does not retain or modify any of its arguments.
func Build(containers []Container, table []ChildEntry, rels []Relationship) *Graph {
	g := &Graph{index: make(map[string]*Node, len(containers))}

	for _, c := range containers {
		if c.ID == "" {
			continue
		}
		if _, dup := g.index[c.ID]; dup {
			g.Duplicates = append(g.Duplicates, c.ID)
			continue
		}
		n := &Node{Container: c}
		n.Meta = maps.Clone(c.Meta)
		if c.Position != nil {
			p := *c.Position
			n.Position = &p
		}
		n.TagSet = ParseTags(c.Tags)
		n.Role = RoleOf(n.TagSet)
		g.nodes = append(g.nodes, n)
		g.index[c.ID] = n
	}

	b := pairBuilder{seen: make(map[[2]string]int)}
	for _, row := range table {
		for _, ref := range row.Children {
			b.add(row.ContainerID, ref, false)
		}
	}
	for _, c := range g.nodes {
		if c.ParentID != "" {
			b.add(c.ParentID, ChildRef{ID: c.ID, Name: c.Name, Tags: c.Container.Tags}, false)
		}
	}
	for _, r := range rels {
		b.add(r.Source, ChildRef{ID: r.Target, Label: r.Label, Description: r.Description}, true)
	}
	g.pairs = make([]Pair, len(b.refs))

	for i, ref := range b.refs {
		src := b.sources[i]
		g.pairs[i] = Pair{Source: src, Target: ref.ID, Label: ref.Label, Description: ref.Description, Flow: b.flow[i]}
		parent, ok := g.index[src]
		if !ok {
			continue
		}
		if b.flow[i] {
			parent.Flows = append(parent.Flows, ref)
			continue
		}
		parent.Children = append(parent.Children, ref)
		if child, ok := g.index[ref.ID]; ok {
			child.Parents = append(child.Parents, ContainerRef{ID: parent.ID, Name: parent.Title()})
		}
	}
	return g
}

type pairBuilder struct {
	sources []string
	refs    []ChildRef
	flow    []bool
	seen    map[[2]string]int
}

func (b *pairBuilder) add(source string, ref ChildRef, flow bool) {
	if source == "" || ref.ID == "" {
		return
	}
	key := [2]string{source, ref.ID}
	if i, ok := b.seen[key]; ok {
		if b.refs[i].Label == "" {
			b.refs[i].Label = ref.Label
		}
		if b.refs[i].Description == "" {
			b.refs[i].Description = ref.Description
		}
		return
	}
	b.seen[key] = len(b.refs)
	b.sources = append(b.sources, source)
	b.refs = append(b.refs, ref)
	b.flow = append(b.flow, flow)
}

// Pairs returns every recorded pair in build order.
func (g *Graph) Pairs() []Pair { return slices.Clone(g.pairs) }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns all nodes in input order. The slice is a copy; the nodes are
// shared and must be treated as read-only.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Groups returns the IDs of all group-role nodes in input order.
func (g *Graph) Groups() []string {
	var ids []string
	for _, n := range g.nodes {
		if n.Role.IsGroup() {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// IsGroup reports whether id names an existing group node.
func (g *Graph) IsGroup(id string) bool {
	n, ok := g.index[id]
	return ok && n.Role.IsGroup()
}
