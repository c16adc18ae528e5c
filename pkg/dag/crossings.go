package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the number of edge crossings for the given rank
// orderings, summed over each pair of consecutive ranks. orders holds node
// IDs top to bottom per rank; missing ranks count as empty.
//
// Example:
//
//	orders := map[int][]string{
//	    0: {"intake", "billing"},
//	    1: {"ledger", "audit", "mail"},
//	}
//	crossings := dag.CountCrossings(g, orders)
func CountCrossings(g *DAG, orders map[int][]string) int {
	rows := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i < len(rows)-1; i++ {
		r := rows[i]
		crossings += CountLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// CurrentOrders returns the in-rank order of every rank as a map suitable
// for [CountCrossings].
func CurrentOrders(g *DAG) map[int][]string {
	orders := make(map[int][]string, g.RowCount())
	for _, r := range g.RowIDs() {
		orders[r] = NodeIDs(g.NodesInRow(r))
	}
	return orders
}

// CountLayerCrossings counts edge crossings between two adjacent ranks.
// Edges (u1,v1) and (u2,v2) cross exactly when pos(u1) < pos(u2) and
// pos(v1) > pos(v2), so with edges sorted by source the count is the number
// of inversions among target positions, tallied with a Fenwick tree in
// O(E log V). Parallel edges count once per copy.
func CountLayerCrossings(g *DAG, left, right []string) int {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	rightPos := PosMap(right)

	// Sources are visited in rank order, so only targets need sorting.
	var targets []int
	for _, id := range left {
		start := len(targets)
		for _, child := range g.Children(id) {
			if pos, ok := rightPos[child]; ok {
				targets = append(targets, pos)
			}
		}
		slices.Sort(targets[start:])
	}

	tree := make(fenwick, len(right)+1)
	crossings := 0
	for seen, pos := range targets {
		crossings += seen - tree.prefix(pos)
		tree.add(pos)
	}
	return crossings
}

// fenwick counts inserted positions; index 0 is unused.
type fenwick []int

func (f fenwick) add(pos int) {
	for i := pos + 1; i < len(f); i += i & -i {
		f[i]++
	}
}

// prefix returns how many inserted positions are <= pos.
func (f fenwick) prefix(pos int) int {
	n := 0
	for i := pos + 1; i > 0; i -= i & -i {
		n += f[i]
	}
	return n
}

// CountPairCrossings counts the crossings contributed by two nodes of the same
// rank when left is placed before right. If useParents is true it considers
// edges to the previous rank, otherwise edges to the next rank. adjPos maps the
// adjacent rank's node IDs to their positions.
//
// Adjacent-swap refinement compares CountPairCrossings(l, r) with
// CountPairCrossings(r, l) to decide whether swapping helps.
func CountPairCrossings(g *DAG, left, right string, adjPos map[string]int, useParents bool) int {
	var lnbr, rnbr []string
	if useParents {
		lnbr = g.Parents(left)
		rnbr = g.Parents(right)
	} else {
		lnbr = g.Children(left)
		rnbr = g.Children(right)
	}

	crossings := 0
	for _, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range rnbr {
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
