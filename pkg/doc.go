// Package pkg provides the libraries behind nestview, a renderer for nested
// container diagrams.
//
// # Overview
//
// A nestview dataset is a flat list of containers, a parent→children table
// and a map of relationships. Containers tagged "group" hold other
// containers. A diagram is always drawn at one scope: the top level or the
// inside of one group. Nodes hidden at that scope are not simply dropped;
// their relationships are rerouted to the nearest visible ancestor and
// attached to a port (a "handle") on that group's border.
//
// # Architecture
//
// The data flow through nestview:
//
//	JSON / YAML dataset (file, URL or stdin)
//	         ↓
//	    [io] and [source] (decode)
//	         ↓
//	    [model] (containers, roles, parent links, relationship pairs)
//	         ↓
//	    [visibility] (scope, rerouting, dropped report)
//	         ↓
//	    [handles] (port placement on group borders)
//	         ↓
//	    [layout] over [dag] (ranks, crossing reduction, coordinates)
//	         ↓
//	    [render] (scene, routing, SVG/PNG/PDF/DOT/summary sinks)
//
// [pipeline] runs these stages with caching through [cache] and reports
// progress through [observability]. [graph] is the node/edge JSON that
// interactive front ends consume.
//
// # Quick Start
//
//	ds, err := io.ReadFile("intake.json")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), observability.Hooks{}, logger)
//	res, err := runner.Execute(ctx, ds, pipeline.Options{
//	    Scope:   "intake",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("intake.svg", res.Artifacts["svg"], 0o644)
//
// # Supporting Packages
//
//   - [config]: TOML tunables with validated defaults
//   - [errors]: coded errors shared by the CLI and the HTTP server
//   - [httputil]: HTTP client with retries used by [source]
//   - [fonts]: embedded fonts for text measurement
//   - [buildinfo]: version stamped in at link time
//
// [io]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/io
// [source]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/source
// [model]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/model
// [visibility]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/visibility
// [handles]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/handles
// [layout]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/layout
// [dag]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/dag
// [render]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/observability
// [graph]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/graph
// [config]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/httputil
// [fonts]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/nestview/pkg/buildinfo
package pkg
