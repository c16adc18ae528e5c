package transform

import "github.com/matzehuels/nestview/pkg/dag"

// AssignLayers gives every node its longest-path rank: sources sit at rank
// 0 and every other node one rank right of its furthest parent. Ranks are
// computed over [dag.DAG.TopoOrder], so ties resolve in insertion order.
//
// A cyclic graph has its cycles broken first; the return value is the number
// of edges that removed, which is 0 after [BreakCycles]. Existing rank
// assignments are overwritten.
func AssignLayers(g *dag.DAG) int {
	removed := 0
	order, err := g.TopoOrder()
	if err != nil {
		removed = BreakCycles(g)
		order, _ = g.TopoOrder()
	}

	rank := make(map[string]int, len(order))
	for _, id := range order {
		r := rank[id]
		rank[id] = r
		for _, child := range g.Children(id) {
			rank[child] = max(rank[child], r+1)
		}
	}
	g.SetRows(rank)
	return removed
}
