package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	nvio "github.com/matzehuels/nestview/pkg/io"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/pipeline"
	"github.com/matzehuels/nestview/pkg/source"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string // output file (single format) or base path
	formats       []string
	scope         string // active group; empty renders the top level
	positions     string // positions file (plain map or graph export)
	keepLayout    bool   // honor positions recorded in the dataset
	rankColumns   bool   // derive a column band per rank
	rightwardOnly bool   // drop edges that point backwards
	detailed      bool   // role, tags and metadata in DOT labels
	tooltips      bool   // <title> elements in SVG output
	noCache       bool
	refresh       bool
	watch         bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file|url|-]",
		Short: "Render a dataset to SVG, PNG, PDF, DOT or a summary",
		Long: `Render a container dataset (JSON or YAML) at one scope.

The dataset is a file path, an http(s) URL, or - for standard input.

Formats: ` + strings.Join(pipeline.FormatNames(), ", ") + `

With several formats, -o names a base path and each file gets its format's
extension. "-o -" writes a single format to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == stdoutPath && len(opts.formats) > 1 {
				return fmt.Errorf("cannot write %d formats to stdout", len(opts.formats))
			}
			if opts.watch && !source.Watchable(args[0]) {
				return fmt.Errorf("--watch needs a local file, got %s", args[0])
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated (default svg)")
	cmd.Flags().StringVarP(&opts.scope, "scope", "s", "", "group to render the inside of (default: top level)")
	cmd.Flags().StringVar(&opts.positions, "positions", "", "positions file to keep node placement from")
	cmd.Flags().BoolVar(&opts.keepLayout, "keep-layout", false, "reuse positions recorded in the dataset")
	cmd.Flags().BoolVar(&opts.rankColumns, "rank-columns", false, "draw one column band per rank")
	cmd.Flags().BoolVar(&opts.rightwardOnly, "rightward-only", false, "omit edges that point backwards")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show role, tags and metadata (dot, graphviz-svg)")
	cmd.Flags().BoolVar(&opts.tooltips, "tooltips", false, "add hover titles to SVG nodes and edges")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input changes")

	return cmd
}

// runRender renders once, or on every change when opts.watch is set.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	build := func(ctx context.Context) error {
		return c.renderOnce(ctx, runner, input, opts, pipeline.Options{Config: cfg})
	}
	if !opts.watch {
		return build(ctx)
	}

	if err := build(ctx); err != nil {
		c.Logger.Error("render failed", "err", err)
	}
	paths := []string{input}
	if opts.positions != "" {
		paths = append(paths, opts.positions)
	}
	return c.watch(ctx, paths, build)
}

// renderOnce reads the inputs, runs the pipeline and writes every artifact.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, input string, opts renderOpts, base pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	quiet := opts.output == stdoutPath

	var spinner *Spinner
	if !quiet && !opts.watch {
		spinner = newSpinner(ctx, "Reading "+filepath.Base(input))
		spinner.Start()
		defer spinner.Stop()
	}

	ds, err := c.openDataset(ctx, base.Config, input)
	if err != nil {
		return err
	}
	var positions map[string]model.Point
	if opts.positions != "" {
		if positions, err = nvio.ReadPositionsFile(opts.positions); err != nil {
			return err
		}
	}

	popts := base
	popts.Scope = opts.scope
	popts.Formats = opts.formats
	popts.Positions = positions
	popts.KeepLayout = opts.keepLayout
	popts.RankColumns = opts.rankColumns
	popts.RightwardOnly = opts.rightwardOnly
	popts.Detailed = opts.detailed
	popts.Tooltips = opts.tooltips
	popts.Refresh = opts.refresh
	popts.Logger = logger

	if spinner != nil {
		spinner.SetMessage(fmt.Sprintf("Rendering %s at %s", filepath.Base(input), scopeLabel(opts.scope)))
	}
	res, err := runner.Execute(ctx, ds, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	for _, d := range res.View.Dropped {
		logger.Warn("dropped relationship", "source", d.Source, "target", d.Target, "reason", d.Reason)
	}

	if quiet {
		_, err := os.Stdout.Write(res.Artifacts[opts.formats[0]])
		return err
	}

	for _, format := range opts.formats {
		file := outputPath(opts.output, input, format, len(opts.formats))
		if err := os.WriteFile(file, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
		printFile(file)
	}
	printStats(res.Stats, res.CacheInfo.RenderHit)
	prog.done(fmt.Sprintf("Rendered %s at %s", filepath.Base(input), scopeLabel(opts.scope)))
	return nil
}

// outputPath picks the file for one format. A single format with an explicit
// -o uses it verbatim; otherwise the format's extension is appended to the
// base path.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, input) + pipeline.Extensions[format]
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input; URL inputs use the
// last path element and stdin uses the app name, both in the working
// directory. If output has a known format extension, it strips the longest one.
func basePath(output, input string) string {
	if output == "" {
		return inputBase(input)
	}
	longest := ""
	for _, ext := range pipeline.Extensions {
		if strings.HasSuffix(output, ext) && len(ext) > len(longest) {
			longest = ext
		}
	}
	return strings.TrimSuffix(output, longest)
}

func inputBase(input string) string {
	switch {
	case input == source.Stdin:
		return appName
	case source.IsRemote(input):
		u, err := url.Parse(input)
		if err != nil {
			return appName
		}
		name := path.Base(u.Path)
		if name == "/" || name == "." {
			return appName
		}
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

func scopeLabel(scope string) string {
	if scope == "" {
		return "top level"
	}
	return "scope " + scope
}
