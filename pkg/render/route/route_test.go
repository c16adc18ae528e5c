package route

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

var testOpts = Options{LaneSpacing: 10, LaneMargin: 6, ArrowSize: 8}

func TestParallelEdgesFanOut(t *testing.T) {
	x := Anchor{Box: Rect{X: 0, Y: 0, W: 100, H: 50}}
	y := Anchor{Box: Rect{X: 300, Y: 0, W: 100, H: 50}}

	lanes := AssignLanes([]Pair{{"X", "Y"}, {"X", "Y"}, {"X", "Y"}})
	var paths [][]Point
	for _, l := range lanes {
		paths = append(paths, Orthogonal(x, y, l.Index, l.Count, testOpts))
	}

	center := x.Box.Center().Y
	offsets := make([]float64, len(paths))
	for i, p := range paths {
		offsets[i] = p[0].Y - center
	}
	if offsets[0] == offsets[1] || offsets[1] == offsets[2] || offsets[0] == offsets[2] {
		t.Fatalf("offsets not distinct: %v", offsets)
	}
	if offsets[0] != -offsets[2] || offsets[1] != 0 {
		t.Errorf("offsets not symmetric around zero: %v", offsets)
	}
	for i, p := range paths {
		end := p[len(p)-1]
		if end.X != y.Box.X-testOpts.ArrowSize {
			t.Errorf("path %d ends at x=%v, want %v", i, end.X, y.Box.X-testOpts.ArrowSize)
		}
	}
}

func TestOrthogonal(t *testing.T) {
	box := Rect{X: 0, Y: 0, W: 100, H: 50}
	port := 20.0

	tests := []struct {
		name string
		from Anchor
		to   Anchor
		want []Point
	}{
		{
			name: "straight right",
			from: Anchor{Box: box},
			to:   Anchor{Box: Rect{X: 300, Y: 0, W: 100, H: 50}},
			want: []Point{{X: 100, Y: 25}, {X: 292, Y: 25}},
		},
		{
			name: "straight left",
			from: Anchor{Box: Rect{X: 300, Y: 0, W: 100, H: 50}},
			to:   Anchor{Box: box},
			want: []Point{{X: 300, Y: 25}, {X: 108, Y: 25}},
		},
		{
			name: "straight down",
			from: Anchor{Box: box},
			to:   Anchor{Box: Rect{X: 0, Y: 200, W: 100, H: 50}},
			want: []Point{{X: 50, Y: 50}, {X: 50, Y: 192}},
		},
		{
			name: "elbow",
			from: Anchor{Box: box},
			to:   Anchor{Box: Rect{X: 300, Y: 100, W: 100, H: 50}},
			want: []Point{{X: 100, Y: 25}, {X: 196, Y: 25}, {X: 196, Y: 125}, {X: 292, Y: 125}},
		},
		{
			name: "source port",
			from: Anchor{Box: box, Port: &port},
			to:   Anchor{Box: Rect{X: 300, Y: 0, W: 100, H: 50}},
			want: []Point{{X: 100, Y: 10}, {X: 196, Y: 10}, {X: 196, Y: 25}, {X: 292, Y: 25}},
		},
		{
			name: "ports facing each other",
			from: Anchor{Box: box, Port: &port, Side: 1},
			to:   Anchor{Box: Rect{X: 300, Y: 0, W: 100, H: 50}, Port: &port, Side: -1},
			want: []Point{{X: 100, Y: 10}, {X: 292, Y: 10}},
		},
		{
			name: "output port with target behind",
			from: Anchor{Box: box, Port: &port, Side: 1},
			to:   Anchor{Box: Rect{X: -300, Y: 0, W: 100, H: 50}},
			want: []Point{
				{X: 100, Y: 10}, {X: 120, Y: 10}, {X: 120, Y: 70},
				{X: -328, Y: 70}, {X: -328, Y: 25}, {X: -308, Y: 25},
			},
		},
		{
			name: "input port facing away",
			from: Anchor{Box: Rect{X: 300, Y: 0, W: 100, H: 50}},
			to:   Anchor{Box: box, Port: &port, Side: -1},
			want: []Point{
				{X: 300, Y: 25}, {X: 280, Y: 25}, {X: 280, Y: 70},
				{X: -28, Y: 70}, {X: -28, Y: 10}, {X: -8, Y: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Orthogonal(tt.from, tt.to, 0, 1, testOpts)
			if !equalPoints(got, tt.want) {
				t.Errorf("Orthogonal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLaneOffsetClamped(t *testing.T) {
	from := Anchor{Box: Rect{W: 100, H: 50}}
	to := Anchor{Box: Rect{X: 300, W: 100, H: 50}}

	p := Orthogonal(from, to, 0, 11, testOpts)
	if got, want := p[0].Y, 6.0; got != want {
		t.Errorf("first lane y = %v, want %v (clamped to margin)", got, want)
	}
}

func TestLaneOffset(t *testing.T) {
	tests := []struct {
		i, n int
		want float64
	}{
		{0, 1, 0},
		{0, 2, -5},
		{1, 2, 5},
		{0, 3, -10},
		{2, 3, 10},
	}
	for _, tt := range tests {
		if got := LaneOffset(tt.i, tt.n, 10); got != tt.want {
			t.Errorf("LaneOffset(%d, %d) = %v, want %v", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestAssignLanesFirstSeen(t *testing.T) {
	got := AssignLanes([]Pair{{"a", "b"}, {"b", "a"}, {"a", "b"}})
	want := []Lane{{0, 2}, {0, 1}, {1, 2}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lane[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCollapse(t *testing.T) {
	got := Collapse([]Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}})
	want := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}
	if !equalPoints(got, want) {
		t.Errorf("Collapse() = %v, want %v", got, want)
	}
}

func TestMidpoint(t *testing.T) {
	pts := []Point{{X: 100, Y: 25}, {X: 196, Y: 25}, {X: 196, Y: 125}, {X: 292, Y: 125}}
	if got := Midpoint(pts); got != (Point{X: 196, Y: 75}) {
		t.Errorf("Midpoint() = %v, want {196 75}", got)
	}
	if got := Midpoint([]Point{{X: 3, Y: 4}}); got != (Point{X: 3, Y: 4}) {
		t.Errorf("Midpoint(single) = %v", got)
	}
}

func TestBounds(t *testing.T) {
	var b Bounds
	if vb := b.ViewBox(10); vb != (Rect{W: 20, H: 20}) {
		t.Errorf("empty ViewBox = %+v", vb)
	}
	b.Add(Rect{X: 10, Y: 10, W: 5, H: 5})
	b.AddPoints([]Point{{X: -4, Y: 30}})
	if got, want := b.ViewBox(2), (Rect{X: -6, Y: 8, W: 23, H: 24}); got != want {
		t.Errorf("ViewBox = %+v, want %+v", got, want)
	}
}

func TestPathData(t *testing.T) {
	if got, want := PathData([]Point{{X: 1, Y: 2}, {X: 3.5, Y: 2}}), "M1.00 2.00 L3.50 2.00"; got != want {
		t.Errorf("PathData() = %q, want %q", got, want)
	}
}

func TestRoutesAreOrthogonal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		box := func(label string) Rect {
			return Rect{
				X: rapid.Float64Range(-500, 500).Draw(t, label+"x"),
				Y: rapid.Float64Range(-500, 500).Draw(t, label+"y"),
				W: rapid.Float64Range(20, 200).Draw(t, label+"w"),
				H: rapid.Float64Range(20, 120).Draw(t, label+"h"),
			}
		}
		n := rapid.IntRange(1, 6).Draw(t, "lanes")
		i := rapid.IntRange(0, n-1).Draw(t, "lane")

		pts := Orthogonal(Anchor{Box: box("s")}, Anchor{Box: box("t")}, i, n, testOpts)
		if len(pts) == 0 {
			t.Fatalf("degenerate path %v", pts)
		}
		for k := 1; k < len(pts); k++ {
			a, b := pts[k-1], pts[k]
			if math.Abs(a.X-b.X) > eps && math.Abs(a.Y-b.Y) > eps {
				t.Fatalf("diagonal segment %v -> %v", a, b)
			}
		}
	})
}

func TestPortSidesAreHonored(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		box := func(label string) Rect {
			return Rect{
				X: rapid.Float64Range(-500, 500).Draw(t, label+"x"),
				Y: rapid.Float64Range(-500, 500).Draw(t, label+"y"),
				W: rapid.Float64Range(20, 200).Draw(t, label+"w"),
				H: rapid.Float64Range(20, 120).Draw(t, label+"h"),
			}
		}
		side := func(label string) float64 {
			return rapid.SampledFrom([]float64{-1, 1}).Draw(t, label)
		}
		pct := rapid.Float64Range(0, 100).Draw(t, "pct")
		from := Anchor{Box: box("s"), Port: &pct, Side: side("fromSide")}
		to := Anchor{Box: box("t"), Port: &pct, Side: side("toSide")}

		pts := Orthogonal(from, to, 0, 1, testOpts)
		first, last := pts[0], pts[len(pts)-1]
		if want := from.Box.Center().X + from.Side*from.Box.W/2; math.Abs(first.X-want) > eps {
			t.Fatalf("path starts at x=%v, want port side x=%v", first.X, want)
		}
		if want := to.Box.Center().X + to.Side*(to.Box.W/2+testOpts.ArrowSize); math.Abs(last.X-want) > eps {
			t.Fatalf("path ends at x=%v, want x=%v", last.X, want)
		}
		if len(pts) > 1 {
			prev := pts[len(pts)-2]
			if (prev.X-last.X)*to.Side < -eps {
				t.Fatalf("path enters %v from inside the target: %v", to.Box, pts)
			}
		}
	})
}

func equalPoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i].X-b[i].X) > 1e-9 || math.Abs(a[i].Y-b[i].Y) > 1e-9 {
			return false
		}
	}
	return true
}
