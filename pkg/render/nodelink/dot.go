package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nestview/pkg/render"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes role, tags and metadata in node labels.
	// When false, only the title is shown.
	Detailed bool
	// Ranks pins nodes to layout ranks (node ID → rank) with rank=same
	// subgraphs, so Graphviz keeps the columns computed by the layout engine.
	Ranks map[string]int
}

// ToDOT converts a resolved view to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Groups are drawn as filled folders; rerouted edges leave a group on its
// east side and enter on its west side, dashed, matching the port lanes of
// the native renderer.
func ToDOT(v *visibility.View, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range v.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	if len(opts.Ranks) > 0 {
		writeRanks(&buf, v, opts.Ranks)
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		if e.Rerouted() {
			attrs = append(attrs, "style=dashed", "color=\"#3e6bbf\"")
			if e.SourceHandle != "" {
				attrs = append(attrs, "tailport=e")
			}
			if e.TargetHandle != "" {
				attrs = append(attrs, "headport=w")
			}
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeRanks(buf *bytes.Buffer, v *visibility.View, ranks map[string]int) {
	byRank := make(map[int][]string)
	for _, n := range v.Nodes {
		if r, ok := ranks[n.ID]; ok {
			byRank[r] = append(byRank[r], n.ID)
		}
	}
	for _, r := range slices.Sorted(maps.Keys(byRank)) {
		quoted := make([]string, len(byRank[r]))
		for i, id := range byRank[r] {
			quoted[i] = strconv.Quote(id)
		}
		fmt.Fprintf(buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}
}

func fmtLabel(n visibility.Node, detailed bool) string {
	if !detailed {
		return n.Title()
	}

	parts := []string{fmt.Sprintf("role: %s", n.Role)}
	if len(n.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("tags: %s", n.Tags))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return n.Title() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n visibility.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Role.IsGroup() {
		attrs = append(attrs, "shape=folder", "style=filled", "fillcolor=\"#e6f0ff\"", "color=\"#3e6bbf\"")
	}
	if n.Description != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Description))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's root element (which sizes in points)
// to a plain pixel-sized root with a zero-origin viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
