package route

import "math"

// Options tunes orthogonal routing.
type Options struct {
	// LaneSpacing is the distance between neighbouring parallel edges.
	LaneSpacing float64
	// LaneMargin keeps lane offsets this far from a box corner.
	LaneMargin float64
	// ArrowSize is the arrowhead length; paths stop this far short of the
	// target boundary so the tip, not the line, touches it.
	ArrowSize float64
}

// Anchor is one end of an edge: a box and an optional port.
type Anchor struct {
	Box Rect
	// Port, when set, pins the attachment point at this percentage of the
	// box height measured from the top.
	Port *float64
	// Side is the box side a port is drawn on: -1 for left, +1 for right.
	// Zero lets the router pick the side facing the other box.
	Side float64
}

// Orthogonal routes an edge between two boxes. lane and lanes describe the
// edge's position in its parallel group; a lone edge uses lane 0 of 1.
//
// The dominant axis is horizontal when |Δx| ≥ |Δy| or when either end has a
// port. The path leaves the source through the side facing the target (or
// its port's side), bends once at the midpoint of the gap shifted by the
// lane offset, and ends ArrowSize short of the target side. When the sides
// do not face each other across a gap, the path steps out of both boxes and
// runs through a corridor below them. Collinear and duplicate points are
// removed.
func Orthogonal(from, to Anchor, lane, lanes int, opts Options) []Point {
	cs, ct := from.Box.Center(), to.Box.Center()
	dx, dy := ct.X-cs.X, ct.Y-cs.Y
	off := LaneOffset(lane, lanes, opts.LaneSpacing)

	horizontal := math.Abs(dx) >= math.Abs(dy) || from.Port != nil || to.Port != nil
	if horizontal {
		out := sideOf(from, signOf(dx))
		in := sideOf(to, -out)
		y1 := portOr(from, cs.Y+clampOffset(off, from.Box.H, opts.LaneMargin))
		y2 := portOr(to, ct.Y+clampOffset(off, to.Box.H, opts.LaneMargin))
		x1 := cs.X + out*from.Box.W/2
		x2 := ct.X + in*(to.Box.W/2+opts.ArrowSize)
		if in == -out && out*(x2-x1) > 0 {
			mid := (x1+x2)/2 + out*off
			return Collapse([]Point{{X: x1, Y: y1}, {X: mid, Y: y1}, {X: mid, Y: y2}, {X: x2, Y: y2}})
		}

		step := 2*math.Max(opts.LaneSpacing, opts.ArrowSize) + float64(lane)*opts.LaneSpacing
		a1, a2 := x1+out*step, x2+in*step
		yc := math.Max(from.Box.Bottom(), to.Box.Bottom()) + step
		return Collapse([]Point{
			{X: x1, Y: y1}, {X: a1, Y: y1}, {X: a1, Y: yc},
			{X: a2, Y: yc}, {X: a2, Y: y2}, {X: x2, Y: y2},
		})
	}

	sign := signOf(dy)
	x1 := cs.X + clampOffset(off, from.Box.W, opts.LaneMargin)
	x2 := ct.X + clampOffset(off, to.Box.W, opts.LaneMargin)
	y1 := cs.Y + sign*from.Box.H/2
	y2 := ct.Y - sign*(to.Box.H/2+opts.ArrowSize)
	mid := (y1+y2)/2 + sign*off
	return Collapse([]Point{{X: x1, Y: y1}, {X: x1, Y: mid}, {X: x2, Y: mid}, {X: x2, Y: y2}})
}

// sideOf returns the side a ported anchor is drawn on, or fallback.
func sideOf(a Anchor, fallback float64) float64 {
	if a.Port == nil || a.Side == 0 {
		return fallback
	}
	return signOf(a.Side)
}

func portOr(a Anchor, fallback float64) float64 {
	if a.Port == nil {
		return fallback
	}
	return a.Box.Y + a.Box.H*(*a.Port)/100
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// LaneOffset returns the perpendicular offset of lane i among n parallel
// edges: offsets are spaced evenly and centered on zero.
func LaneOffset(i, n int, spacing float64) float64 {
	if n <= 1 {
		return 0
	}
	return (float64(i) - float64(n-1)/2) * spacing
}

// clampOffset limits off to ±(extent/2 - margin) so the attachment point
// stays on the box side.
func clampOffset(off, extent, margin float64) float64 {
	limit := math.Max(0, extent/2-margin)
	return math.Max(-limit, math.Min(limit, off))
}

// Collapse drops repeated points and interior points lying on a straight
// axis-aligned run.
func Collapse(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && same(out[n-1], p) {
			continue
		}
		if n := len(out); n >= 2 && collinear(out[n-2], out[n-1], p) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

const eps = 1e-9

func same(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func collinear(a, b, c Point) bool {
	return (math.Abs(a.X-b.X) < eps && math.Abs(b.X-c.X) < eps) ||
		(math.Abs(a.Y-b.Y) < eps && math.Abs(b.Y-c.Y) < eps)
}

// Length returns the total length of a polyline.
func Length(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return total
}

// Midpoint returns the point halfway along the polyline by arc length.
func Midpoint(pts []Point) Point {
	switch len(pts) {
	case 0:
		return Point{}
	case 1:
		return pts[0]
	}
	half := Length(pts) / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if seg >= half && seg > 0 {
			t := half / seg
			return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		}
		half -= seg
	}
	return pts[len(pts)-1]
}

// PathData formats a polyline as an SVG path "d" attribute.
func PathData(pts []Point) string {
	buf := make([]byte, 0, len(pts)*16)
	for i, p := range pts {
		if i == 0 {
			buf = append(buf, 'M')
		} else {
			buf = append(buf, " L"...)
		}
		buf = appendFloat(buf, p.X)
		buf = append(buf, ' ')
		buf = appendFloat(buf, p.Y)
	}
	return string(buf)
}
