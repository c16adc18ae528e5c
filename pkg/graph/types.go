package graph

import (
	"github.com/matzehuels/nestview/pkg/handles"
	"github.com/matzehuels/nestview/pkg/layout"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node types.
const (
	TypeGroup = visibility.TypeGroup
	TypeLeaf  = visibility.TypeLeaf
)

// =============================================================================
// Graph - Node/Edge Wire Format
// =============================================================================

// Graph is the node/edge format handed to live rendering surfaces. Used for
// API responses, the JSON view output and recorded layouts.
type Graph struct {
	Scope string `json:"scope,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Node is a visible container with its top-left position.
type Node struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"` // "group" or "leaf"
	Position model.Point `json:"position"`
	Width    float64     `json:"width,omitempty"`
	Height   float64     `json:"height,omitempty"`
	Data     NodeData    `json:"data"`
}

// NodeData is the display payload of a node.
type NodeData struct {
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Horizon     string         `json:"horizon,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Role        string         `json:"role"`
	Meta        map[string]any `json:"meta,omitempty"`
	Ports       []Port         `json:"ports,omitempty"` // groups only
}

// Port is an allocated group port. Percent runs from 0 (top) to 100 (bottom).
type Port struct {
	ID        string  `json:"id"`
	Direction string  `json:"direction"`
	Label     string  `json:"label,omitempty"`
	Percent   float64 `json:"percent"`
}

// =============================================================================
// Edge
// =============================================================================

// Edge connects two visible nodes, optionally through group ports.
type Edge struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	Data         *EdgeData `json:"data,omitempty"`
	SourceHandle string    `json:"sourceHandle,omitempty"`
	TargetHandle string    `json:"targetHandle,omitempty"`
}

// EdgeData is the optional payload of an edge. OriginSource and OriginTarget
// are set only for rerouted edges.
type EdgeData struct {
	Label        string `json:"label,omitempty"`
	Description  string `json:"description,omitempty"`
	OriginSource string `json:"originSource,omitempty"`
	OriginTarget string `json:"originTarget,omitempty"`
}

// =============================================================================
// View ↔ Graph Conversion
// =============================================================================

// FromView converts a resolved view into the wire format. Positions and sizes
// come from l when it has a box for the node; ports are attached to groups
// present in ports. Both l and ports may be nil.
func FromView(v *visibility.View, l *layout.Layout, ports map[string]handles.Group) Graph {
	out := Graph{
		Scope: v.Scope,
		Nodes: make([]Node, 0, len(v.Nodes)),
		Edges: make([]Edge, 0, len(v.Edges)),
	}

	for _, n := range v.Nodes {
		node := Node{
			ID:   n.ID,
			Type: n.Type(),
			Data: NodeData{
				Label:       n.Title(),
				Description: n.Description,
				Horizon:     n.Horizon,
				Tags:        []string(n.Tags),
				Role:        n.Role.String(),
				Meta:        copyMeta(n.Meta),
			},
		}
		if l != nil {
			if b, ok := l.Box(n.ID); ok {
				node.Position = model.Point{X: b.X, Y: b.Y}
				node.Width, node.Height = b.Width, b.Height
			}
		} else if n.Position != nil {
			node.Position = *n.Position
		}
		if g, ok := ports[n.ID]; ok {
			node.Data.Ports = fromGroup(g)
		}
		out.Nodes = append(out.Nodes, node)
	}

	for _, e := range v.Edges {
		edge := Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
		}
		if e.Label != "" || e.Description != "" || e.Rerouted() {
			edge.Data = &EdgeData{Label: e.Label, Description: e.Description}
			if e.Rerouted() {
				edge.Data.OriginSource, edge.Data.OriginTarget = e.OriginSource, e.OriginTarget
			}
		}
		out.Edges = append(out.Edges, edge)
	}
	return out
}

// Positions returns every node's top-left position, keyed by ID, in the form
// accepted by layout.Options.Keep. A saved Graph therefore doubles as a
// recorded layout.
func (g Graph) Positions() map[string]model.Point {
	out := make(map[string]model.Point, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n.Position
	}
	return out
}

// =============================================================================
// Internal Helpers
// =============================================================================

func fromGroup(g handles.Group) []Port {
	conv := func(p handles.Port) Port {
		return Port{ID: p.ID, Direction: p.Direction.String(), Label: p.Label, Percent: p.Percent}
	}
	out := []Port{conv(g.In), conv(g.Out)}
	for _, p := range g.Inputs {
		out = append(out, conv(p))
	}
	for _, p := range g.Outputs {
		out = append(out, conv(p))
	}
	return out
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
