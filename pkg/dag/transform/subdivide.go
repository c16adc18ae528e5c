package transform

import (
	"fmt"

	"github.com/matzehuels/nestview/pkg/dag"
)

// Subdivider metadata keys. MetaEdge holds "from->to" for display; MetaFrom
// and MetaTo hold the endpoints of the edge the chain was cut from.
const (
	MetaEdge = "edge"
	MetaFrom = "from"
	MetaTo   = "to"
)

// Subdivide breaks edges that span several ranks into chains of single-rank
// edges joined by [dag.NodeKindSubdivider] nodes, and returns how many
// subdividers it added:
//
//	Before: intake (rank 0) → ledger (rank 3)
//	After:  intake → intake_sub_1 → intake_sub_2 → ledger
//
// Subdividers hold a slot in every rank the edge passes through, so ordering
// can route it around real nodes and the exported edge can bend there. Each
// one records the edge source as MasterID and the endpoints in its metadata.
//
// IDs have the form "source_sub_rank"; collisions get a numeric suffix
// ("intake_sub_1__2"). The original edge metadata moves to the last hop.
func Subdivide(g *dag.DAG) int {
	ids := newIDGen(g.Nodes())
	added := 0
	for _, e := range g.Edges() {
		src, okS := g.Node(e.From)
		dst, okD := g.Node(e.To)
		if !okS || !okD || dst.Row <= src.Row+1 {
			continue
		}

		g.RemoveEdge(e.From, e.To)
		meta := dag.Metadata{MetaEdge: e.From + "->" + e.To, MetaFrom: e.From, MetaTo: e.To}
		prev := src.ID
		for row := src.Row + 1; row < dst.Row; row++ {
			id := ids.next(e.From, row)
			// IDs are fresh and both endpoints exist, so neither call can fail.
			_ = g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindSubdivider, MasterID: e.From, Meta: meta})
			_ = g.AddEdge(dag.Edge{From: prev, To: id})
			prev = id
			added++
		}
		_ = g.AddEdge(dag.Edge{From: prev, To: dst.ID, Meta: e.Meta})
	}
	return added
}

type idGen map[string]struct{}

func newIDGen(nodes []*dag.Node) idGen {
	used := make(idGen, len(nodes)*2)
	for _, n := range nodes {
		used[n.ID] = struct{}{}
	}
	return used
}

func (used idGen) next(base string, row int) string {
	prefix := fmt.Sprintf("%s_sub_%d", base, row)
	id := prefix
	for i := 1; ; i++ {
		if _, taken := used[id]; !taken {
			used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
