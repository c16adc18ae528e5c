package visibility

import (
	"context"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/observability"
)

// DefaultMaxHops bounds the ancestor walk when Options.MaxHops is unset.
const DefaultMaxHops = 3

// Drop reasons reported in View.Dropped.
const (
	ReasonUnknownSource = "unknown source"
	ReasonUnknownTarget = "unknown target"
)

// Options configures Resolve.
type Options struct {
	// MaxHops bounds the ancestor walk. Zero or negative means DefaultMaxHops.
	MaxHops int
	// Logger receives warnings for dropped relationships. Nil discards.
	Logger *log.Logger
	// Hooks receives resolver events. Nil means no-op.
	Hooks observability.ResolveHooks
}

func (o Options) withDefaults() Options {
	if o.MaxHops <= 0 {
		o.MaxHops = DefaultMaxHops
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Hooks == nil {
		o.Hooks = observability.NoopResolveHooks{}
	}
	return o
}

// Resolve computes the view of g at the active group ("" for top level).
// It fails only when active does not name an existing group.
func Resolve(ctx context.Context, g *model.Graph, active string, opts Options) (*View, error) {
	if err := validateActive(g, active); err != nil {
		return nil, err
	}
	r := &resolver{
		ctx:     ctx,
		g:       g,
		opts:    opts.withDefaults(),
		view:    &View{Scope: active},
		edges:   make(map[string]struct{}),
		handles: make(map[string]struct{}),
	}
	r.visible = visibleSet(g, active)
	r.collectNodes()
	for _, p := range g.Pairs() {
		r.resolvePair(p)
	}
	return r.view, nil
}

type resolver struct {
	ctx     context.Context
	g       *model.Graph
	opts    Options
	visible map[string]bool
	view    *View
	edges   map[string]struct{}
	handles map[string]struct{}
}

// visibleSet applies the scope filter followed by nested-group suppression.
func visibleSet(g *model.Graph, active string) map[string]bool {
	candidates := make(map[string]bool)
	if active != "" {
		parent, _ := g.Node(active)
		for _, ref := range parent.Children {
			if _, ok := g.Node(ref.ID); ok {
				candidates[ref.ID] = true
			}
		}
	} else {
		for _, n := range g.Nodes() {
			if n.Role.IsGroup() || !hasGroupParent(g, n) {
				candidates[n.ID] = true
			}
		}
	}

	visible := make(map[string]bool, len(candidates))
	for id := range candidates {
		n, _ := g.Node(id)
		suppressed := false
		for _, p := range n.Parents {
			if candidates[p.ID] && g.IsGroup(p.ID) {
				suppressed = true
				break
			}
		}
		if !suppressed {
			visible[id] = true
		}
	}
	return visible
}

func hasGroupParent(g *model.Graph, n *model.Node) bool {
	for _, p := range n.Parents {
		if g.IsGroup(p.ID) {
			return true
		}
	}
	return false
}

func (r *resolver) collectNodes() {
	for _, n := range r.g.Nodes() {
		if !r.visible[n.ID] {
			continue
		}
		vn := Node{
			ID:          n.ID,
			Name:        n.Name,
			Description: n.Description,
			Horizon:     n.Horizon,
			Tags:        slices.Clone(n.TagSet),
			Role:        n.Role,
			Meta:        maps.Clone(n.Meta),
		}
		if n.Position != nil {
			p := *n.Position
			vn.Position = &p
		}
		if n.Role.IsGroup() {
			vn.Members = slices.Clone(n.Children)
		}
		r.view.Nodes = append(r.view.Nodes, vn)
	}
}

type endpoint struct {
	id     string
	handle *Handle
}

func (r *resolver) resolvePair(p model.Pair) {
	if _, ok := r.g.Node(p.Source); !ok {
		r.drop(p, ReasonUnknownSource)
		return
	}
	if _, ok := r.g.Node(p.Target); !ok {
		r.drop(p, ReasonUnknownTarget)
		return
	}

	src, ok := r.endpoint(p.Source, model.DirectionOut)
	if !ok {
		return
	}
	dst, ok := r.endpoint(p.Target, model.DirectionIn)
	if !ok || src.id == dst.id {
		return
	}

	e := Edge{
		ID:           EdgeID(src.id, dst.id, p.Source, p.Target),
		Source:       src.id,
		Target:       dst.id,
		Label:        p.Label,
		Description:  p.Description,
		OriginSource: p.Source,
		OriginTarget: p.Target,
	}
	if src.handle != nil {
		e.SourceHandle = r.addHandle(*src.handle)
	}
	if dst.handle != nil {
		e.TargetHandle = r.addHandle(*dst.handle)
	}
	if _, dup := r.edges[e.ID]; dup {
		return
	}
	r.edges[e.ID] = struct{}{}
	r.view.Edges = append(r.view.Edges, e)
}

// endpoint resolves id to itself when visible, or to its nearest visible group
// ancestor when it is a hidden interface leaf.
func (r *resolver) endpoint(id string, dir model.Direction) (endpoint, bool) {
	if r.visible[id] {
		return endpoint{id: id}, true
	}
	n, _ := r.g.Node(id)
	if !n.Role.IsInterface() {
		return endpoint{}, false
	}
	owner, ok := r.nearestVisibleGroup(id)
	if !ok {
		return endpoint{}, false
	}
	return endpoint{
		id: owner,
		handle: &Handle{
			ID:         HandleID(owner, dir, id),
			Owner:      owner,
			Direction:  dir,
			Buried:     id,
			BuriedName: n.Title(),
		},
	}, true
}

// nearestVisibleGroup walks containment parents breadth-first, at most
// MaxHops levels, and returns the first visible group it meets.
func (r *resolver) nearestVisibleGroup(id string) (string, bool) {
	return NearestVisibleGroup(r.g, id, r.opts.MaxHops, func(id string) bool { return r.visible[id] })
}

// NearestVisibleGroup returns the first ancestor of id, in breadth-first
// order over containment parents, that is a group and satisfies visible. The
// walk visits each container at most once and stops after maxHops levels, so
// it terminates on cyclic containment data.
func NearestVisibleGroup(g *model.Graph, id string, maxHops int, visible func(string) bool) (string, bool) {
	seen := map[string]bool{id: true}
	frontier := []string{id}
	for hop := 0; hop < maxHops && len(frontier) > 0; hop++ {
		var next []string
		for _, cur := range frontier {
			n, ok := g.Node(cur)
			if !ok {
				continue
			}
			for _, p := range n.Parents {
				if seen[p.ID] {
					continue
				}
				seen[p.ID] = true
				if g.IsGroup(p.ID) && visible(p.ID) {
					return p.ID, true
				}
				next = append(next, p.ID)
			}
		}
		frontier = next
	}
	return "", false
}

func (r *resolver) addHandle(h Handle) string {
	if _, dup := r.handles[h.ID]; dup {
		return h.ID
	}
	r.handles[h.ID] = struct{}{}
	r.view.Handles = append(r.view.Handles, h)
	r.opts.Hooks.OnHandleRegistered(r.ctx, h.Owner, h.Direction.String(), h.Buried)
	return h.ID
}

func (r *resolver) drop(p model.Pair, reason string) {
	r.opts.Logger.Warn("dropping relationship", "source", p.Source, "target", p.Target, "reason", reason)
	r.view.Dropped = append(r.view.Dropped, Dropped{Source: p.Source, Target: p.Target, Reason: reason})
	r.opts.Hooks.OnRelationshipDropped(r.ctx, p.Source, p.Target, reason)
}
