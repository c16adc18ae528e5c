// Package summary produces a deterministic description of a rendered scene,
// as plain text for people and as JSON for machines.
//
// Sections always appear in the same order: viewport, grid bounds, rows,
// columns, nodes and edges. Nodes and edges keep scene order; metadata keys
// are sorted.
package summary

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/route"
	"github.com/matzehuels/nestview/pkg/render/scene"
)

// Options filters the summary.
type Options struct {
	// RightwardOnly keeps only edges whose target lies to the right of their
	// source, for strictly left-to-right readings.
	RightwardOnly bool
}

// Rect is an axis-aligned area in diagram units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Band is a grid row or column.
type Band struct {
	ID    string  `json:"id"`
	Label string  `json:"label,omitempty"`
	Start float64 `json:"start"`
	Size  float64 `json:"size"`
}

// Node describes one node box.
type Node struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Position    model.Point    `json:"position"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Row         string         `json:"row,omitempty"`
	Column      string         `json:"column,omitempty"`
	Description string         `json:"description,omitempty"`
	Meta        model.Metadata `json:"meta,omitempty"`
}

// Edge describes one edge with resolved endpoint titles.
type Edge struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	SourceTitle string `json:"sourceTitle"`
	TargetTitle string `json:"targetTitle"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	Rerouted    bool   `json:"rerouted,omitempty"`
	Lane        int    `json:"lane,omitempty"`
}

// Summary is the structured description of a scene.
type Summary struct {
	Scope    string `json:"scope"`
	Viewport Rect   `json:"viewport"`
	Grid     *Rect  `json:"grid,omitempty"`
	Rows     []Band `json:"rows"`
	Columns  []Band `json:"columns"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// Build summarizes s.
func Build(s *scene.Scene, opts Options) *Summary {
	out := &Summary{
		Scope:    s.Scope,
		Viewport: toRect(s.ViewBox),
		Rows:     toBands(s.Rows),
		Columns:  toBands(s.Columns),
		Nodes:    make([]Node, 0, len(s.Nodes)),
		Edges:    make([]Edge, 0, len(s.Edges)),
	}

	var grid route.Bounds
	for _, b := range append(slices.Clone(s.Rows), s.Columns...) {
		grid.Add(b.Box)
	}
	if !grid.Empty() {
		r := toRect(grid.Rect())
		out.Grid = &r
	}

	titles := make(map[string]string, len(s.Nodes))
	centers := make(map[string]float64, len(s.Nodes))
	for _, n := range s.Nodes {
		titles[n.ID] = n.Title
		centers[n.ID] = n.Box.Center().X
		out.Nodes = append(out.Nodes, Node{
			ID:          n.ID,
			Title:       n.Title,
			Type:        n.Type,
			Position:    model.Point{X: n.Box.X, Y: n.Box.Y},
			Width:       n.Box.W,
			Height:      n.Box.H,
			Row:         n.Row,
			Column:      n.Column,
			Description: n.Description,
			Meta:        n.Meta,
		})
	}

	for _, e := range s.Edges {
		if opts.RightwardOnly && centers[e.Target] <= centers[e.Source] {
			continue
		}
		out.Edges = append(out.Edges, Edge{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			SourceTitle: titles[e.Source],
			TargetTitle: titles[e.Target],
			Label:       resolvedLabel(e.Label, e.Description),
			Description: e.Description,
			Rerouted:    e.Rerouted,
			Lane:        e.Lane.Index,
		})
	}
	return out
}

// resolvedLabel prefers the explicit label and falls back to the first line
// of the description.
func resolvedLabel(label, desc string) string {
	if label != "" {
		return label
	}
	first, _, _ := strings.Cut(desc, "\n")
	return strings.TrimSpace(first)
}

func toRect(r route.Rect) Rect { return Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H} }

func toBands(bs []scene.Band) []Band {
	out := make([]Band, 0, len(bs))
	for _, b := range bs {
		out = append(out, Band{ID: b.ID, Label: b.Label, Start: b.Start, Size: b.Size})
	}
	return out
}

// JSON returns the summary as indented JSON.
func (s *Summary) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Text returns the plain-text form.
func (s *Summary) Text() string {
	var buf bytes.Buffer
	_ = s.WriteText(&buf)
	return buf.String()
}

// WriteText writes the plain-text form to w.
func (s *Summary) WriteText(w io.Writer) error {
	var b bytes.Buffer
	scope := s.Scope
	if scope == "" {
		scope = "(top level)"
	}

	b.WriteString("# Diagram\n")
	fmt.Fprintf(&b, "scope: %s\n", scope)
	fmt.Fprintf(&b, "viewport: %s\n", fmtRect(s.Viewport))
	if s.Grid != nil {
		fmt.Fprintf(&b, "grid: %s\n", fmtRect(*s.Grid))
	} else {
		b.WriteString("grid: none\n")
	}

	fmt.Fprintf(&b, "\n## Rows (%d)\n", len(s.Rows))
	for _, r := range s.Rows {
		fmt.Fprintf(&b, "- %s %q y=%.1f height=%.1f\n", r.ID, r.Label, r.Start, r.Size)
	}
	fmt.Fprintf(&b, "\n## Columns (%d)\n", len(s.Columns))
	for _, c := range s.Columns {
		fmt.Fprintf(&b, "- %s %q x=%.1f width=%.1f\n", c.ID, c.Label, c.Start, c.Size)
	}

	fmt.Fprintf(&b, "\n## Nodes (%d)\n", len(s.Nodes))
	for _, n := range s.Nodes {
		fmt.Fprintf(&b, "- %s %q [%s] at (%.1f, %.1f) size %.1fx%.1f", n.ID, n.Title, n.Type, n.Position.X, n.Position.Y, n.Width, n.Height)
		if n.Row != "" || n.Column != "" {
			fmt.Fprintf(&b, " cell=%s/%s", orDash(n.Row), orDash(n.Column))
		}
		b.WriteByte('\n')
		if n.Description != "" {
			fmt.Fprintf(&b, "    description: %s\n", oneLine(n.Description))
		}
		for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
			fmt.Fprintf(&b, "    %s: %v\n", k, n.Meta[k])
		}
	}

	fmt.Fprintf(&b, "\n## Edges (%d)\n", len(s.Edges))
	for _, e := range s.Edges {
		fmt.Fprintf(&b, "- %s: %q -> %q", e.ID, e.SourceTitle, e.TargetTitle)
		if e.Label != "" {
			fmt.Fprintf(&b, " label=%q", e.Label)
		}
		if e.Rerouted {
			b.WriteString(" (rerouted)")
		}
		b.WriteByte('\n')
		if e.Description != "" && e.Description != e.Label {
			fmt.Fprintf(&b, "    description: %s\n", oneLine(e.Description))
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}

func fmtRect(r Rect) string {
	return fmt.Sprintf("x=%.1f y=%.1f width=%.1f height=%.1f", r.X, r.Y, r.Width, r.Height)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
