package layout

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/visibility"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func view(ids []string, edges ...[2]string) *visibility.View {
	v := &visibility.View{}
	for _, id := range ids {
		v.Nodes = append(v.Nodes, visibility.Node{ID: id})
	}
	for _, e := range edges {
		v.Edges = append(v.Edges, visibility.Edge{ID: e[0] + "->" + e[1], Source: e[0], Target: e[1]})
	}
	return v
}

func TestEstimateHeight(t *testing.T) {
	tests := []struct {
		name  string
		label string
		width float64
		want  float64
	}{
		{"short label floors", "API", 180, 48},
		{"wraps to three lines", "Customer Onboarding Workflow Review", 140, 3*14*LineHeightFactor + 2*VerticalPadding},
		{"zero width", "anything", 0, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateHeight(tt.label, tt.width, 14, 48); !approx(got, tt.want) {
				t.Errorf("EstimateHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeChainRunsLeftToRight(t *testing.T) {
	l := Compute(view([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"}), Options{})
	if l.Ranks != 3 {
		t.Errorf("Ranks = %d, want 3", l.Ranks)
	}

	wantX := []float64{0, 260, 520}
	for i, id := range []string{"a", "b", "c"} {
		b, ok := l.Box(id)
		if !ok {
			t.Fatalf("missing box %s", id)
		}
		if b.Rank != i || !approx(b.X, wantX[i]) || !approx(b.Y, 0) {
			t.Errorf("%s = rank %d at (%v,%v), want rank %d at (%v,0)", id, b.Rank, b.X, b.Y, i, wantX[i])
		}
		if b.Width != DefaultNodeWidth || b.Height != DefaultMinHeight {
			t.Errorf("%s size = %vx%v", id, b.Width, b.Height)
		}
		c := b.Center()
		if !approx(c.X, b.X+b.Width/2) || !approx(c.Y, b.Y+b.Height/2) {
			t.Errorf("%s center = %v", id, c)
		}
	}
}

func TestComputeStacksRankTopToBottom(t *testing.T) {
	l := Compute(view([]string{"root", "x", "y"}, [2]string{"root", "x"}, [2]string{"root", "y"}), Options{})
	x, _ := l.Box("x")
	y, _ := l.Box("y")
	root, _ := l.Box("root")

	if !approx(y.Y-x.Y, DefaultMinHeight+DefaultNodeSep) {
		t.Errorf("x.Y=%v y.Y=%v, want a gap of height+sep", x.Y, y.Y)
	}
	mid := (x.Center().Y + y.Center().Y) / 2
	if !approx(root.Center().Y, mid) {
		t.Errorf("root center %v not centered on %v", root.Center().Y, mid)
	}
}

func TestComputeReducesCrossings(t *testing.T) {
	l := Compute(view([]string{"a", "b", "x", "y"}, [2]string{"a", "y"}, [2]string{"b", "x"}), Options{})
	if l.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", l.Crossings)
	}
	x, _ := l.Box("x")
	y, _ := l.Box("y")
	if y.Order != 0 || x.Order != 1 {
		t.Errorf("orders y=%d x=%d, want y above x", y.Order, x.Order)
	}
}

func TestComputeBreaksCyclesAndRecordsBends(t *testing.T) {
	l := Compute(view([]string{"a", "b", "c"},
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"a", "c"}, [2]string{"c", "a"},
	), Options{})
	if l.CyclesBroken != 1 {
		t.Errorf("CyclesBroken = %d, want 1", l.CyclesBroken)
	}
	bends := l.Bends["a->c"]
	if len(bends) != 1 {
		t.Fatalf("Bends[a->c] = %v, want one slot", bends)
	}
	b, _ := l.Box("b")
	if !approx(bends[0].X, b.Center().X) {
		t.Errorf("bend x = %v, want rank-1 center %v", bends[0].X, b.Center().X)
	}
}

func TestComputeKeepLayout(t *testing.T) {
	keep := map[string]model.Point{"b": {X: 5, Y: 7}}
	l := Compute(view([]string{"a", "b"}, [2]string{"a", "b"}), Options{Keep: keep})

	b, _ := l.Box("b")
	if !b.Kept || b.X != 5 || b.Y != 7 {
		t.Errorf("b = %+v, want kept at (5,7)", b)
	}
	a, _ := l.Box("a")
	if a.Kept {
		t.Error("a has no recorded position and must be computed")
	}
	if got := l.Positions()["b"]; got != (model.Point{X: 5, Y: 7}) {
		t.Errorf("Positions()[b] = %v", got)
	}
}

func TestComputeCustomSizer(t *testing.T) {
	l := Compute(view([]string{"a"}), Options{Size: func(visibility.Node) (float64, float64) { return 100, 30 }})
	a, _ := l.Box("a")
	if a.Width != 100 || a.Height != 30 {
		t.Errorf("size = %vx%v, want 100x30", a.Width, a.Height)
	}
}

func TestComputeEmptyAndDeterministic(t *testing.T) {
	if l := Compute(&visibility.View{}, Options{}); len(l.Boxes) != 0 || l.Ranks != 0 {
		t.Errorf("empty view produced %d boxes in %d ranks", len(l.Boxes), l.Ranks)
	}
	if l := Compute(view([]string{"a", "b"}), Options{}); l.Ranks != 1 || l.Crossings != 0 {
		t.Errorf("edgeless view: Ranks = %d, Crossings = %d, want 1 and 0", l.Ranks, l.Crossings)
	}

	v := view([]string{"a", "b", "c", "d", "e"},
		[2]string{"a", "d"}, [2]string{"b", "c"}, [2]string{"a", "c"}, [2]string{"b", "e"}, [2]string{"c", "e"})
	first := Compute(v, Options{})
	for range 5 {
		again := Compute(v, Options{})
		if !slices.Equal(first.Boxes, again.Boxes) {
			t.Fatal("layout differs between runs")
		}
	}
}
