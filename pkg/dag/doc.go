// Package dag provides the rank graph used by nestview's layered layout.
//
// # Overview
//
// The layout engine turns the visible nodes and edges of a view into a
// directed graph whose nodes are organized into ranks. Ranks run left to
// right; nodes within a rank are stacked top to bottom. After layering and
// subdivision every edge connects consecutive ranks (From.Row+1 == To.Row),
// which is what crossing counting and barycentric ordering rely on.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "intake", Row: 0})
//	g.AddNode(dag.Node{ID: "billing", Row: 1})
//	g.AddEdge(dag.Edge{From: "intake", To: "billing"})
//
// # Determinism
//
// The graph remembers insertion order. Every query that returns several nodes
// returns them in that order, and [DAG.TopoOrder] breaks ties the same way, so
// layouts computed from the same view are identical run to run.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] use a Fenwick tree to count
// inversions in O(E log V) time. [CountPairCrossings] scores a single adjacent
// swap for local refinement.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
//
// The [transform] subpackage provides cycle breaking, layer assignment and
// edge subdivision.
//
// [transform]: github.com/matzehuels/nestview/pkg/dag/transform
package dag
