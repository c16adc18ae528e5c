// Package visibility decides which nodes are visible at a drill-down scope and
// reroutes relationships that cross into hidden subtrees.
//
// # Scopes
//
// A [Scope] names the active group (empty for the top level) and keeps a
// bounded history for back-navigation. At the top level every group is
// visible together with the leaves that no group contains. Inside a group,
// exactly its direct children are visible. In both cases a node whose
// containing parent is itself a visible group is suppressed, so only one
// level of nesting shows at a time.
//
// # Rerouting
//
// Every pair recorded by the model (containment and flow) is resolved
// endpoint by endpoint. A visible endpoint stands for itself. A hidden
// endpoint tagged input or output is replaced by its nearest visible group
// ancestor, found by a breadth-first walk over containment parents bounded by
// [Options.MaxHops]; the ancestor gains a [Handle] standing in for the buried
// node. Anything else drops the pair. Pairs that collapse onto a single node
// are skipped.
//
//	view, err := visibility.Resolve(ctx, g, scope.Active(), visibility.Options{})
//	for _, e := range view.Edges {
//	    fmt.Println(e.Source, "->", e.Target, e.SourceHandle, e.TargetHandle)
//	}
//
// # Determinism
//
// Nodes keep the order of the input container list; edges and handles keep
// the order in which their pairs were first seen. Re-adding an existing edge
// or handle ID is a no-op. Resolve allocates a fresh [View] on every call and
// never writes to the model graph.
package visibility
