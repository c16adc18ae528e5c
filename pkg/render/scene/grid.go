package scene

import (
	"fmt"

	"github.com/matzehuels/nestview/pkg/layout"
	"github.com/matzehuels/nestview/pkg/render/route"
)

// Band is one grid row or column. Start and Size run along y for rows and
// along x for columns; Box is filled in by [Build].
type Band struct {
	ID    string     `json:"id" yaml:"id"`
	Label string     `json:"label,omitempty" yaml:"label,omitempty"`
	Start float64    `json:"start" yaml:"start"`
	Size  float64    `json:"size" yaml:"size"`
	Box   route.Rect `json:"-" yaml:"-"`
}

// Grid is an optional row/column overlay.
type Grid struct {
	Rows    []Band `json:"rows,omitempty" yaml:"rows,omitempty"`
	Columns []Band `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Empty reports whether the grid has no bands.
func (g *Grid) Empty() bool { return g == nil || len(g.Rows)+len(g.Columns) == 0 }

// RankColumns derives one column per layout rank, spanning the boxes in it.
func RankColumns(l *layout.Layout) *Grid {
	type span struct{ lo, hi float64 }
	spans := make(map[int]*span)
	for _, b := range l.Boxes {
		s, ok := spans[b.Rank]
		if !ok {
			spans[b.Rank] = &span{b.X, b.X + b.Width}
		} else {
			s.lo = min(s.lo, b.X)
			s.hi = max(s.hi, b.X+b.Width)
		}
	}

	g := &Grid{}
	for r := 0; r < l.Ranks; r++ {
		s, ok := spans[r]
		if !ok {
			continue
		}
		g.Columns = append(g.Columns, Band{
			ID:    fmt.Sprintf("rank-%d", r),
			Label: fmt.Sprintf("Rank %d", r+1),
			Start: s.lo,
			Size:  s.hi - s.lo,
		})
	}
	return g
}

// placeGrid stretches bands across the content registered so far, plus a
// header strip for their labels, and registers them.
func placeGrid(g Grid, bounds *route.Bounds, opts Options) (rows, cols []Band) {
	content := bounds.Rect()
	header := opts.FontSize * 1.6

	for _, b := range g.Rows {
		b.Box = route.Rect{X: content.X - header, Y: b.Start, W: content.W + header, H: b.Size}
		bounds.Add(b.Box)
		rows = append(rows, b)
	}
	for _, b := range g.Columns {
		b.Box = route.Rect{X: b.Start, Y: content.Y - header, W: b.Size, H: content.H + header}
		bounds.Add(b.Box)
		cols = append(cols, b)
	}
	return rows, cols
}

// assignCells records the row and column containing each node's center.
func assignCells(s *Scene) {
	for i := range s.Nodes {
		c := s.Nodes[i].Box.Center()
		for _, r := range s.Rows {
			if c.Y >= r.Start && c.Y < r.Start+r.Size {
				s.Nodes[i].Row = r.ID
				break
			}
		}
		for _, col := range s.Columns {
			if c.X >= col.Start && c.X < col.Start+col.Size {
				s.Nodes[i].Column = col.ID
				break
			}
		}
	}
}
