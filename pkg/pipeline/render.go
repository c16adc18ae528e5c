package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/graph"
	"github.com/matzehuels/nestview/pkg/render"
	"github.com/matzehuels/nestview/pkg/render/nodelink"
	"github.com/matzehuels/nestview/pkg/render/sink"
	"github.com/matzehuels/nestview/pkg/render/summary"
)

// Render generates output artifacts in the requested formats from a result
// produced by [BuildView].
func Render(ctx context.Context, res *Result, formats []string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := RenderFormat(ctx, res, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(ctx context.Context, res *Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(res.Scene, svgOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(res.Scene, sink.WithScale(opts.Config.Render.PNGScale))
	case FormatPDF:
		return render.ToPDF(ctx, sink.RenderSVG(res.Scene, svgOptions(opts)...))
	case FormatJSON:
		return sink.RenderJSON(res.Scene)
	case FormatView:
		return graph.Marshal(res.Nodelink)
	case FormatDOT:
		return []byte(toDOT(res, opts)), nil
	case FormatGraphvizSVG:
		return nodelink.RenderSVG(ctx, toDOT(res, opts))
	case FormatSummary:
		return []byte(summary.Build(res.Scene, summaryOptions(opts)).Text()), nil
	case FormatSummaryJSON:
		return summary.Build(res.Scene, summaryOptions(opts)).JSON()
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// svgOptions builds SVG rendering options.
func svgOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Config.Render.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	if opts.Tooltips {
		svgOpts = append(svgOpts, sink.WithTooltips())
	}
	return svgOpts
}

func summaryOptions(opts Options) summary.Options {
	return summary.Options{RightwardOnly: opts.RightwardOnly}
}

func toDOT(res *Result, opts Options) string {
	ranks := make(map[string]int, len(res.Layout.Boxes))
	for _, b := range res.Layout.Boxes {
		ranks[b.ID] = b.Rank
	}
	return nodelink.ToDOT(res.View, nodelink.Options{Detailed: opts.Detailed, Ranks: ranks})
}
