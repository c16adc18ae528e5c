package transform

import (
	"fmt"
	"testing"

	"github.com/matzehuels/nestview/pkg/dag"
)

func build(ids []string, edges [][2]string) *dag.DAG {
	g := dag.New()
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		edges       [][2]string
		wantRemoved int
		wantEdges   int
	}{
		{"no cycles", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 0, 2},
		{"two-cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 1, 1},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 1, 2},
		{"self loop", []string{"a"}, [][2]string{{"a", "a"}}, 1, 0},
		{"no sources", []string{"a", "b"}, [][2]string{{"b", "a"}, {"a", "b"}}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(tt.ids, tt.edges)
			if got := BreakCycles(g); got != tt.wantRemoved {
				t.Errorf("BreakCycles() = %d, want %d", got, tt.wantRemoved)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if len(g.Cycles()) != 0 {
				t.Errorf("cycles remain: %v", g.Cycles())
			}
		})
	}
}

func TestBreakCyclesIsDeterministic(t *testing.T) {
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "b"}}
	first := build([]string{"a", "b", "c", "d"}, edges)
	second := build([]string{"a", "b", "c", "d"}, edges)
	BreakCycles(first)
	BreakCycles(second)

	a, b := first.Edges(), second.Edges()
	if len(a) != len(b) {
		t.Fatalf("edge counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].From != b[i].From || a[i].To != b[i].To {
			t.Errorf("edge %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestAssignLayers(t *testing.T) {
	g := build([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	AssignLayers(g)
	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 0}
	for id, row := range want {
		n, _ := g.Node(id)
		if n.Row != row {
			t.Errorf("%s.Row = %d, want %d", id, n.Row, row)
		}
	}
}

func TestSubdivide(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	AssignLayers(g)
	Subdivide(g)

	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	sub, ok := g.Node("a_sub_1")
	if !ok {
		t.Fatal("expected subdivider a_sub_1")
	}
	if !sub.IsSubdivider() || sub.MasterID != "a" || sub.Meta[MetaEdge] != "a->c" {
		t.Errorf("subdivider = %+v", sub)
	}
	if g.NodeCount() != 4 || g.EdgeCount() != 4 {
		t.Errorf("nodes=%d edges=%d, want 4/4", g.NodeCount(), g.EdgeCount())
	}
}

func TestSubdivideUniqueIDs(t *testing.T) {
	g := build([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}, {"a", "d"}})
	AssignLayers(g)
	Subdivide(g)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if _, ok := g.Node("a_sub_1__1"); !ok {
		t.Errorf("expected collision-suffixed subdivider, nodes = %v", dag.NodeIDs(g.Nodes()))
	}
}

func TestAssignLayersBreaksCycles(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	if removed := AssignLayers(g); removed != 1 {
		t.Errorf("AssignLayers() removed %d edges, want 1", removed)
	}
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, row := range want {
		n, _ := g.Node(id)
		if n.Row != row {
			t.Errorf("%s.Row = %d, want %d", id, n.Row, row)
		}
	}
}

func TestBreakCyclesDeepChain(t *testing.T) {
	const n = 5000
	ids := make([]string, n)
	edges := make([][2]string, 0, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("n%d", i)
		if i > 0 {
			edges = append(edges, [2]string{ids[i-1], ids[i]})
		}
	}
	edges = append(edges, [2]string{ids[n-1], ids[0]})
	g := build(ids, edges)
	if got := BreakCycles(g); got != 1 {
		t.Errorf("BreakCycles() = %d, want 1", got)
	}
	if _, err := g.TopoOrder(); err != nil {
		t.Errorf("TopoOrder() = %v", err)
	}
}
