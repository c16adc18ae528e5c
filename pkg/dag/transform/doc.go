// Package transform provides graph transformations that prepare a rank graph
// for ordering and coordinate assignment.
//
// # Overview
//
// A resolved view can contain cycles (two groups feeding each other), edges
// that skip ranks, and nodes in arbitrary order. [Normalize] turns it into a
// canonical form where:
//
//   - The graph is acyclic ([BreakCycles])
//   - Every node has a longest-path rank ([AssignLayers])
//   - Every edge connects consecutive ranks ([Subdivide])
//
// All three steps visit nodes in insertion order, so the same input always
// produces the same ranks and the same synthetic node IDs.
package transform
