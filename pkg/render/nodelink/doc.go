// Package nodelink renders a resolved view as a Graphviz node-link diagram.
//
// # Overview
//
// This is an alternate export next to the native scene renderer: Graphviz
// does its own layout and routing, which is useful for a quick sanity check
// or for feeding the DOT source into other tools.
//
// # Usage
//
// Convert a view to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(view, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include role, tags and metadata
//   - Ranks: pin nodes to the native layout's ranks
//
// The generated DOT uses left-to-right layout (rankdir=LR), matching the
// native renderer's orientation.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
