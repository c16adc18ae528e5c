package transform

import "github.com/matzehuels/nestview/pkg/dag"

// Normalize prepares a rank graph for ordering: it breaks cycles, assigns
// longest-path ranks and subdivides edges spanning more than one rank. It
// returns the number of edges removed to break cycles. After Normalize,
// g.Validate() succeeds.
func Normalize(g *dag.DAG) int {
	removed := BreakCycles(g)
	removed += AssignLayers(g)
	Subdivide(g)
	return removed
}
