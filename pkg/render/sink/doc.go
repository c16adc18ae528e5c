// Package sink writes a [scene.Scene] to output formats.
//
// # Formats
//
//   - SVG ([RenderSVG]): self-contained vector document. The root element
//     carries pixel width/height and a viewBox covering every registered
//     shape. Edges are drawn as a soft halo stroke under a solid stroke with
//     an arrowhead marker; labels sit on rounded chips.
//   - PNG ([RenderPNG]): native raster drawn with gg from the same scene, so
//     no external tool is needed.
//   - JSON ([RenderJSON]): the scene geometry for external tools.
//
// An empty scene still produces a valid, minimal document.
//
//	svg := sink.RenderSVG(sc, sink.WithEmbeddedFont())
//	png, err := sink.RenderPNG(sc, sink.WithScale(2))
//
// [scene.Scene]: github.com/matzehuels/nestview/pkg/render/scene.Scene
package sink
