package pipeline

import (
	"context"
	"maps"
	"time"

	"github.com/matzehuels/nestview/pkg/graph"
	"github.com/matzehuels/nestview/pkg/handles"
	nvio "github.com/matzehuels/nestview/pkg/io"
	"github.com/matzehuels/nestview/pkg/layout"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/observability"
	"github.com/matzehuels/nestview/pkg/render/scene"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// =============================================================================
// View Stages
// =============================================================================

// BuildView runs build → resolve → allocate → layout → scene without caching
// or rendering. Options must already be validated.
func BuildView(ctx context.Context, ds *nvio.Dataset, opts Options, hooks observability.Hooks) (*Result, error) {
	hooks = hooks.OrNoop()
	cfg := opts.Config
	res := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Build
	start := time.Now()
	g, relErrs := ds.Graph()
	for _, err := range relErrs {
		opts.Logger.Warn("skipping relationship", "err", err)
		res.Warnings = append(res.Warnings, err.Error())
	}
	for _, id := range g.Duplicates {
		opts.Logger.Warn("duplicate container id, keeping first", "id", id)
	}
	res.Graph = g
	res.Stats.BuildTime = time.Since(start)

	// Stage 2: Resolve
	start = time.Now()
	ro := cfg.ResolveOptions()
	ro.Logger = opts.Logger
	ro.Hooks = hooks.Resolve
	v, err := visibility.Resolve(ctx, g, opts.Scope, ro)
	res.Stats.ResolveTime = time.Since(start)
	if err != nil {
		hooks.Pipeline.OnResolveComplete(ctx, opts.Scope, 0, 0, res.Stats.ResolveTime, err)
		return nil, err
	}
	hooks.Pipeline.OnResolveComplete(ctx, opts.Scope, len(v.Nodes), len(v.Edges), res.Stats.ResolveTime, nil)
	res.View = v
	res.Stats.NodeCount = len(v.Nodes)
	res.Stats.EdgeCount = len(v.Edges)
	res.Stats.HandleCount = len(v.Handles)
	res.Stats.DroppedCount = len(v.Dropped)

	// Stage 3: Allocate
	res.Ports = handles.Allocate(v, cfg.HandleOptions())

	// Stage 4: Layout
	start = time.Now()
	hooks.Pipeline.OnLayoutStart(ctx, len(v.Nodes))
	so := sceneOptions(ds, opts)
	lo := cfg.LayoutOptions()
	lo.Size = scene.Sizer(so)
	lo.Keep = keepPositions(ds, opts)
	res.Layout = layout.Compute(v, lo)
	res.Stats.LayoutTime = time.Since(start)
	hooks.Pipeline.OnLayoutComplete(ctx, res.Stats.LayoutTime, nil)

	// Scene assembly belongs to rendering but every output reads it.
	if so.Grid == nil && opts.RankColumns {
		so.Grid = scene.RankColumns(res.Layout)
	}
	res.Scene = scene.Build(v, res.Layout, res.Ports, so)
	res.Nodelink = graph.FromView(v, res.Layout, res.Ports)
	return res, nil
}

func sceneOptions(ds *nvio.Dataset, opts Options) scene.Options {
	so := opts.Config.SceneOptions()
	so.Measurer = opts.Measurer
	so.Grid = opts.Grid
	if so.Grid == nil {
		so.Grid = ds.Grid
	}
	return so
}

// keepPositions merges recorded positions. In keep-layout mode container
// positions come first, then the dataset's position table; the caller's
// positions always apply last.
func keepPositions(ds *nvio.Dataset, opts Options) map[string]model.Point {
	keep := make(map[string]model.Point)
	if opts.KeepLayout {
		for _, c := range ds.Containers {
			if c.Position != nil {
				keep[c.ID] = *c.Position
			}
		}
		maps.Copy(keep, ds.Positions)
	}
	maps.Copy(keep, opts.Positions)
	if len(keep) == 0 {
		return nil
	}
	return keep
}
