package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/nestview/pkg/errors"
	"github.com/matzehuels/nestview/pkg/handles"
	"github.com/matzehuels/nestview/pkg/layout"
	"github.com/matzehuels/nestview/pkg/render/scene"
	"github.com/matzehuels/nestview/pkg/visibility"
)

// FileName is the config file looked up by [Find].
const FileName = "nestview.toml"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full set of tunables.
type Config struct {
	Visibility VisibilityConfig `toml:"visibility"`
	Handles    HandlesConfig    `toml:"handles"`
	Layout     LayoutConfig     `toml:"layout"`
	Render     RenderConfig     `toml:"render"`
	Cache      CacheConfig      `toml:"cache"`
	Server     ServerConfig     `toml:"server"`
	Source     SourceConfig     `toml:"source"`
}

// VisibilityConfig tunes the visibility resolver.
type VisibilityConfig struct {
	// MaxHops bounds the ancestor walk for rerouted relationships.
	MaxHops int `toml:"max_hops"`
	// HistoryLimit caps the scope back-navigation stack.
	HistoryLimit int `toml:"history_limit"`
}

// HandlesConfig tunes port placement on groups. Values are fractions of the
// node height.
type HandlesConfig struct {
	Inset     float64 `toml:"inset"`
	Exclusion float64 `toml:"exclusion"`
}

// LayoutConfig tunes the ranked layout.
type LayoutConfig struct {
	NodeWidth float64 `toml:"node_width"`
	FontSize  float64 `toml:"font_size"`
	MinHeight float64 `toml:"min_height"`
	RankSep   float64 `toml:"rank_sep"`
	NodeSep   float64 `toml:"node_sep"`
	Sweeps    int     `toml:"sweeps"`
}

// RenderConfig tunes the exported document.
type RenderConfig struct {
	MinBoxWidth   float64 `toml:"min_box_width"`
	MaxBoxWidth   float64 `toml:"max_box_width"`
	MinBoxHeight  float64 `toml:"min_box_height"`
	PaddingX      float64 `toml:"padding_x"`
	PaddingY      float64 `toml:"padding_y"`
	FontSize      float64 `toml:"font_size"`
	LaneSpacing   float64 `toml:"lane_spacing"`
	LaneMargin    float64 `toml:"lane_margin"`
	ArrowSize     float64 `toml:"arrow_size"`
	Margin        float64 `toml:"margin"`
	LabelMaxWidth float64 `toml:"label_max_width"`
	PNGScale      float64 `toml:"png_scale"`
	EmbedFont     bool    `toml:"embed_font"`
	RankColumns   bool    `toml:"rank_columns"`
	RightwardOnly bool    `toml:"rightward_only"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// ServerConfig configures `nestview serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// SourceConfig controls how datasets are fetched from URLs.
type SourceConfig struct {
	Timeout  Duration `toml:"timeout"`
	Attempts int      `toml:"attempts"`
	// TokenEnv names an environment variable holding a bearer token.
	TokenEnv string `toml:"token_env"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Visibility: VisibilityConfig{
			MaxHops:      visibility.DefaultMaxHops,
			HistoryLimit: visibility.DefaultHistoryLimit,
		},
		Handles: HandlesConfig{
			Inset:     handles.DefaultInset,
			Exclusion: handles.DefaultExclusion,
		},
		Layout: LayoutConfig{
			NodeWidth: layout.DefaultNodeWidth,
			FontSize:  layout.DefaultFontSize,
			MinHeight: layout.DefaultMinHeight,
			RankSep:   layout.DefaultRankSep,
			NodeSep:   layout.DefaultNodeSep,
			Sweeps:    layout.DefaultSweeps,
		},
		Render: RenderConfig{
			MinBoxWidth:   scene.DefaultMinBoxWidth,
			MaxBoxWidth:   scene.DefaultMaxBoxWidth,
			MinBoxHeight:  scene.DefaultMinBoxHeight,
			PaddingX:      scene.DefaultPaddingX,
			PaddingY:      scene.DefaultPaddingY,
			FontSize:      scene.DefaultFontSize,
			LaneSpacing:   scene.DefaultLaneSpacing,
			LaneMargin:    scene.DefaultLaneMargin,
			ArrowSize:     scene.DefaultArrowSize,
			Margin:        scene.DefaultMargin,
			LabelMaxWidth: scene.DefaultLabelMaxWidth,
			PNGScale:      2,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
			MaxBodyBytes: 8 << 20,
		},
		Source: SourceConfig{
			Timeout:  Duration{30 * time.Second},
			Attempts: 3,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, cfg.Validate()
}

// Find returns the first nestview.toml in dir or its parents, or "" if none
// exists.
func Find(dir string) string {
	for {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate rejects values the engine cannot work with.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	if c.Visibility.MaxHops <= 0 {
		return invalid("visibility.max_hops must be positive")
	}
	if c.Visibility.HistoryLimit <= 0 {
		return invalid("visibility.history_limit must be positive")
	}
	if c.Handles.Inset <= 0 || c.Handles.Inset >= 0.5 {
		return invalid("handles.inset must be in (0, 0.5)")
	}
	if c.Handles.Exclusion <= 0 || c.Handles.Exclusion >= 1-2*c.Handles.Inset {
		return invalid("handles.exclusion must be in (0, 1 - 2*inset)")
	}

	type field struct {
		name string
		v    float64
	}
	for _, f := range []field{
		{"layout.node_width", c.Layout.NodeWidth},
		{"layout.font_size", c.Layout.FontSize},
		{"layout.min_height", c.Layout.MinHeight},
		{"layout.rank_sep", c.Layout.RankSep},
		{"layout.node_sep", c.Layout.NodeSep},
		{"render.min_box_width", c.Render.MinBoxWidth},
		{"render.max_box_width", c.Render.MaxBoxWidth},
		{"render.min_box_height", c.Render.MinBoxHeight},
		{"render.font_size", c.Render.FontSize},
		{"render.label_max_width", c.Render.LabelMaxWidth},
		{"render.png_scale", c.Render.PNGScale},
	} {
		if f.v <= 0 {
			return invalid("%s must be positive", f.name)
		}
	}
	if c.Source.Attempts <= 0 {
		return invalid("source.attempts must be positive")
	}
	if c.Layout.Sweeps <= 0 {
		return invalid("layout.sweeps must be positive")
	}
	for _, f := range []field{
		{"render.padding_x", c.Render.PaddingX},
		{"render.padding_y", c.Render.PaddingY},
		{"render.lane_spacing", c.Render.LaneSpacing},
		{"render.lane_margin", c.Render.LaneMargin},
		{"render.arrow_size", c.Render.ArrowSize},
		{"render.margin", c.Render.Margin},
	} {
		if f.v < 0 {
			return invalid("%s must not be negative", f.name)
		}
	}
	if c.Render.MaxBoxWidth < c.Render.MinBoxWidth {
		return invalid("render.max_box_width must be >= render.min_box_width")
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return invalid("cache.redis_url is required for the redis backend")
		}
	default:
		return invalid("cache.backend must be one of none, file, redis (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl must not be negative")
	}

	if c.Server.Addr == "" {
		return invalid("server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return invalid("server.max_body_bytes must be positive")
	}
	return nil
}

// ResolveOptions converts the visibility section.
func (c Config) ResolveOptions() visibility.Options {
	return visibility.Options{MaxHops: c.Visibility.MaxHops}
}

// HandleOptions converts the handles section.
func (c Config) HandleOptions() handles.Options {
	return handles.Options{Inset: c.Handles.Inset, Exclusion: c.Handles.Exclusion}
}

// LayoutOptions converts the layout section.
func (c Config) LayoutOptions() layout.Options {
	l := c.Layout
	return layout.Options{
		NodeWidth: l.NodeWidth,
		FontSize:  l.FontSize,
		MinHeight: l.MinHeight,
		RankSep:   l.RankSep,
		NodeSep:   l.NodeSep,
		Sweeps:    l.Sweeps,
	}
}

// SceneOptions converts the render section.
func (c Config) SceneOptions() scene.Options {
	r := c.Render
	return scene.Options{
		MinBoxWidth:   r.MinBoxWidth,
		MaxBoxWidth:   r.MaxBoxWidth,
		MinBoxHeight:  r.MinBoxHeight,
		PaddingX:      r.PaddingX,
		PaddingY:      r.PaddingY,
		FontSize:      r.FontSize,
		LaneSpacing:   r.LaneSpacing,
		LaneMargin:    r.LaneMargin,
		ArrowSize:     r.ArrowSize,
		Margin:        r.Margin,
		LabelMaxWidth: r.LabelMaxWidth,
	}
}
