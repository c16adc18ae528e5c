package route

import (
	"math"

	"github.com/matzehuels/nestview/pkg/model"
)

// Point is a 2-D coordinate.
type Point = model.Point

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset grows r by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Centered returns a w×h rectangle centered on p.
func Centered(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

// Bounds accumulates the extent of every emitted shape.
type Bounds struct {
	r   Rect
	set bool
}

// Add registers a rectangle.
func (b *Bounds) Add(r Rect) {
	if !b.set {
		b.r, b.set = r, true
		return
	}
	b.r = b.r.Union(r)
}

// AddPoints registers every point of a polyline.
func (b *Bounds) AddPoints(pts []Point) {
	for _, p := range pts {
		b.Add(Rect{X: p.X, Y: p.Y})
	}
}

// Empty reports whether nothing has been registered.
func (b *Bounds) Empty() bool { return !b.set }

// Rect returns the union of everything registered.
func (b *Bounds) Rect() Rect { return b.r }

// ViewBox returns the registered union grown by margin. An empty registry
// yields a margin-sized box at the origin.
func (b *Bounds) ViewBox(margin float64) Rect {
	if !b.set {
		return Rect{W: 2 * margin, H: 2 * margin}
	}
	return b.r.Inset(margin)
}
