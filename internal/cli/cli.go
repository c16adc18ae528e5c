package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestview/pkg/buildinfo"
	"github.com/matzehuels/nestview/pkg/cache"
	"github.com/matzehuels/nestview/pkg/config"
	"github.com/matzehuels/nestview/pkg/httputil"
	nvio "github.com/matzehuels/nestview/pkg/io"
	"github.com/matzehuels/nestview/pkg/observability"
	"github.com/matzehuels/nestview/pkg/pipeline"
	"github.com/matzehuels/nestview/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "nestview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Nestview draws nested container diagrams one scope at a time",
		Long:         `Nestview renders hierarchical container graphs as left-to-right diagrams. Relationships into collapsed groups are rerouted onto ports on the nearest visible ancestor.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: nearest "+config.FileName+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads --config, or the nearest nestview.toml above the working
// directory, or falls back to the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Find(wd)
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.hooks(), c.Logger), nil
}

// hooks reports pipeline events through the CLI logger at debug level.
func (c *CLI) hooks() observability.Hooks {
	return observability.NewLogHooks(c.Logger)
}

// openDataset reads a file, "-" for stdin, or an http(s) URL.
func (c *CLI) openDataset(ctx context.Context, cfg config.Config, ref string) (*nvio.Dataset, error) {
	if !source.IsRemote(ref) {
		return source.Open(ctx, ref, nil)
	}
	opts := []httputil.Option{
		httputil.WithTimeout(cfg.Source.Timeout.Duration),
		httputil.WithRetry(cfg.Source.Attempts, httputil.DefaultDelay),
	}
	if cfg.Source.TokenEnv != "" {
		if tok := os.Getenv(cfg.Source.TokenEnv); tok != "" {
			opts = append(opts, httputil.WithHeader("Authorization", "Bearer "+tok))
		}
	}
	c.Logger.Debug("fetching dataset", "url", ref)
	return source.Open(ctx, ref, httputil.NewClient(opts...))
}

// newCache opens the configured backend. A file cache that cannot resolve a
// directory degrades to no caching.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.RedisURL})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return fc, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the per-user default.
func cacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
