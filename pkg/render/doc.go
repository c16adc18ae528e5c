// Package render turns resolved, laid-out views into output documents.
//
// # Overview
//
// Rendering is split into small subpackages that run in sequence:
//
//   - [text]: typed display segments, text measurement and word wrapping
//   - [route]: orthogonal edge paths, lane offsets, label anchors, bounds
//   - [scene]: joins a view, its layout and its ports into measured shapes
//   - [sink]: writes a scene as SVG, PNG or JSON
//   - [summary]: deterministic text/JSON description of a scene
//   - [nodelink]: alternate Graphviz rendering of a view
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). [sink.RenderPNG] draws
// natively and does not need it.
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [text]: github.com/matzehuels/nestview/pkg/render/text
// [route]: github.com/matzehuels/nestview/pkg/render/route
// [scene]: github.com/matzehuels/nestview/pkg/render/scene
// [sink]: github.com/matzehuels/nestview/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/nestview/pkg/render/sink.RenderPNG
// [summary]: github.com/matzehuels/nestview/pkg/render/summary
// [nodelink]: github.com/matzehuels/nestview/pkg/render/nodelink
package render
