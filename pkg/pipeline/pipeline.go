// Package pipeline provides the diagram pipeline shared by the CLI and the
// HTTP API.
//
// This package implements the complete build → resolve → layout → render
// pipeline. By centralizing this logic, `nestview render`, `nestview serve`
// and `nestview explore` draw identical pictures from identical inputs.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Build: Turn a dataset into the annotated graph model
//  2. Resolve: Compute the visible nodes and edges at a scope, rerouting
//     relationships of buried containers through group handles
//  3. Allocate: Place the handles on their groups
//  4. Layout: Assign left-to-right ranked positions, honoring recorded ones
//  5. Render: Assemble the scene and write each requested format
//
// Stages 1 to 4 plus scene assembly are cheap and always run; rendered
// artifacts are cached, keyed by the dataset hash and every option that
// changes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, observability.Hooks{}, logger)
//	result, err := runner.Execute(ctx, dataset, pipeline.Options{
//	    Scope:   "intake",
//	    Formats: []string{"svg", "summary"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run the view stages alone:
//
//	view, err := runner.View(ctx, dataset, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nestview/pkg/config"
	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/graph"
	"github.com/matzehuels/nestview/pkg/handles"
	"github.com/matzehuels/nestview/pkg/layout"
	"github.com/matzehuels/nestview/pkg/model"
	"github.com/matzehuels/nestview/pkg/render/scene"
	"github.com/matzehuels/nestview/pkg/render/text"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG         = "svg"
	FormatPNG         = "png"
	FormatPDF         = "pdf"
	FormatJSON        = "json"
	FormatView        = "view"
	FormatDOT         = "dot"
	FormatGraphvizSVG = "graphviz-svg"
	FormatSummary     = "summary"
	FormatSummaryJSON = "summary-json"
)

// DefaultFormat is rendered when Options.Formats is empty.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:         true,
	FormatPNG:         true,
	FormatPDF:         true,
	FormatJSON:        true,
	FormatView:        true,
	FormatDOT:         true,
	FormatGraphvizSVG: true,
	FormatSummary:     true,
	FormatSummaryJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:         "image/svg+xml",
	FormatPNG:         "image/png",
	FormatPDF:         "application/pdf",
	FormatJSON:        "application/json",
	FormatView:        "application/json",
	FormatDOT:         "text/vnd.graphviz",
	FormatGraphvizSVG: "image/svg+xml",
	FormatSummary:     "text/plain; charset=utf-8",
	FormatSummaryJSON: "application/json",
}

// Extensions maps each format to the file extension the CLI writes.
var Extensions = map[string]string{
	FormatSVG:         ".svg",
	FormatPNG:         ".png",
	FormatPDF:         ".pdf",
	FormatJSON:        ".scene.json",
	FormatView:        ".view.json",
	FormatDOT:         ".dot",
	FormatGraphvizSVG: ".graphviz.svg",
	FormatSummary:     ".txt",
	FormatSummaryJSON: ".summary.json",
}

// Options holds all configuration for one pipeline run.
// Fields are grouped by the stage that uses them.
type Options struct {
	// Resolve options
	Scope string `json:"scope,omitempty"`

	// Layout options
	KeepLayout bool                   `json:"keep_layout,omitempty"` // reuse positions recorded in the dataset
	Positions  map[string]model.Point `json:"positions,omitempty"`   // recorded top-left positions, always honored

	// Render options
	Formats       []string    `json:"formats,omitempty"`
	Grid          *scene.Grid `json:"grid,omitempty"`
	RankColumns   bool        `json:"rank_columns,omitempty"`
	RightwardOnly bool        `json:"rightward_only,omitempty"`
	Detailed      bool        `json:"detailed,omitempty"` // role, tags and metadata in DOT labels
	Tooltips      bool        `json:"tooltips,omitempty"` // SVG <title> elements

	// Tunables; the zero value means config.Default().
	Config config.Config `json:"config"`

	// Cache control
	Refresh bool `json:"-"`

	// Runtime (not serialized)
	Logger   *log.Logger   `json:"-"`
	Measurer text.Measurer `json:"-"`

	validated bool
}

// Result holds the output of a pipeline run.
type Result struct {
	RunID       string
	DatasetHash string

	Graph    *model.Graph
	View     *visibility.View
	Ports    map[string]handles.Group
	Layout   *layout.Layout
	Scene    *scene.Scene
	Nodelink graph.Graph

	// Warnings lists malformed relationship keys skipped while building.
	Warnings []string

	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information from a pipeline run.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	HandleCount  int
	DroppedCount int
	BuildTime    time.Duration
	ResolveTime  time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo contains information about cache hits during pipeline execution.
type CacheInfo struct {
	RenderHit bool     // Whether all artifacts came from cache
	Hits      []string // Formats served from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == (config.Config{}) {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Config.Render.RightwardOnly {
		o.RightwardOnly = true
	}
	if o.Config.Render.RankColumns {
		o.RankColumns = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
