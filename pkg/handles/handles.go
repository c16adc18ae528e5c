// Package handles places the ports of visible groups.
//
// A group has two lanes: inputs on its left edge and outputs on its right
// edge. Each lane is confined to the band between Inset and 1-Inset of the
// node height, minus a centered exclusion zone that is reserved for the
// group's own in/out ports. Ports fill the upper half of a lane first, then
// the lower half; within a half, N ports sit at
//
//	start + span × (i+1)/(N+1)
//
// Positions are percentages of the node height, measured from the top.
package handles

import (
	"cmp"
	"slices"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// Default lane geometry, as fractions of the node height.
const (
	DefaultInset     = 0.15
	DefaultExclusion = 0.20
)

// Options configures Allocate. Zero values select the defaults.
type Options struct {
	Inset     float64
	Exclusion float64
}

func (o Options) withDefaults() Options {
	if o.Inset <= 0 || o.Inset >= 0.5 {
		o.Inset = DefaultInset
	}
	if o.Exclusion <= 0 || o.Exclusion >= 1-2*o.Inset {
		o.Exclusion = DefaultExclusion
	}
	return o
}

// Port is an allocated attachment point.
type Port struct {
	ID        string
	Direction model.Direction
	Buried    string // empty for the group's own ports
	Label     string
	Percent   float64 // 0 = top edge, 100 = bottom edge
}

// Group holds every port of one visible group.
type Group struct {
	Owner   string
	In      Port // permanent group input, centered
	Out     Port // permanent group output, centered
	Inputs  []Port
	Outputs []Port
}

// Port returns the port with the given ID.
func (g Group) Port(id string) (Port, bool) {
	switch id {
	case g.In.ID:
		return g.In, true
	case g.Out.ID:
		return g.Out, true
	}
	for _, p := range g.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range g.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// GroupPortID names the permanent port of a group in the given direction.
func GroupPortID(owner string, dir model.Direction) string {
	return visibility.EscapeID(owner) + ":" + dir.String()
}

// Allocate places every port of every visible group in v. The result is
// keyed by group ID and has an entry for each visible group, even one with
// no rerouted handles.
func Allocate(v *visibility.View, opts Options) map[string]Group {
	opts = opts.withDefaults()
	out := make(map[string]Group)
	for _, n := range v.Nodes {
		if !n.Role.IsGroup() {
			continue
		}
		g := Group{
			Owner: n.ID,
			In:    Port{ID: GroupPortID(n.ID, model.DirectionIn), Direction: model.DirectionIn, Percent: 50},
			Out:   Port{ID: GroupPortID(n.ID, model.DirectionOut), Direction: model.DirectionOut, Percent: 50},
		}
		var ins, outs []visibility.Handle
		for _, h := range orderByMembers(v.HandlesFor(n.ID), n.Members) {
			if h.Direction == model.DirectionIn {
				ins = append(ins, h)
			} else {
				outs = append(outs, h)
			}
		}
		g.Inputs = place(ins, opts)
		g.Outputs = place(outs, opts)
		out[n.ID] = g
	}
	return out
}

// orderByMembers sorts handles whose buried node is a declared member by
// member order; the rest keep registration order after them.
func orderByMembers(hs []visibility.Handle, members []model.ChildRef) []visibility.Handle {
	rank := make(map[string]int, len(members))
	for i, m := range members {
		rank[m.ID] = i
	}
	slices.SortStableFunc(hs, func(a, b visibility.Handle) int {
		ra, okA := rank[a.Buried]
		rb, okB := rank[b.Buried]
		switch {
		case okA && okB:
			return cmp.Compare(ra, rb)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return hs
}

func place(hs []visibility.Handle, opts Options) []Port {
	upper := (len(hs) + 1) / 2
	top := Spread(upper, opts.Inset, 0.5-opts.Exclusion/2)
	bottom := Spread(len(hs)-upper, 0.5+opts.Exclusion/2, 1-opts.Inset)
	positions := append(top, bottom...)

	ports := make([]Port, len(hs))
	for i, h := range hs {
		ports[i] = Port{
			ID:        h.ID,
			Direction: h.Direction,
			Buried:    h.Buried,
			Label:     h.BuriedName,
			Percent:   positions[i] * 100,
		}
	}
	return ports
}

// Spread returns n evenly spaced fractions strictly inside [start, end].
func Spread(n int, start, end float64) []float64 {
	out := make([]float64, n)
	span := end - start
	for i := range out {
		out[i] = start + span*float64(i+1)/float64(n+1)
	}
	return out
}
