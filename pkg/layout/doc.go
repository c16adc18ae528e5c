// Package layout assigns left-to-right ranked coordinates to the nodes of a
// resolved view.
//
// # Pipeline
//
// [Compute] mirrors the view into a [dag.DAG], then:
//
//  1. Breaks cycles, assigns longest-path ranks and subdivides long edges
//     ([transform.Normalize])
//  2. Orders every rank with alternating barycentric sweeps followed by
//     adjacent-swap refinement, keeping the ordering with the fewest
//     crossings seen
//  3. Places ranks left to right, RankSep apart, and stacks each rank top to
//     bottom, NodeSep apart, centered on the tallest rank
//
// Positions are computed as box centers and returned as top-left anchors.
//
// # Sizing
//
// Unless the caller supplies a [Sizer], every node is NodeWidth wide and as
// tall as [EstimateHeight] says its title needs.
//
// # Keep Layout
//
// When Options.Keep holds a recorded top-left position for a node, that
// position is used verbatim. Nodes without one fall back to the computed
// layout.
//
// [dag.DAG]: github.com/matzehuels/nestview/pkg/dag
// [transform.Normalize]: github.com/matzehuels/nestview/pkg/dag/transform
package layout
