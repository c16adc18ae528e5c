package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/nestview/pkg/cache"
	nvio "github.com/matzehuels/nestview/pkg/io"
	"github.com/matzehuels/nestview/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, hooks and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Hooks  observability.Hooks
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and hooks.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, hooks observability.Hooks, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Hooks:  hooks.OrNoop(),
		Logger: logger,
	}
}

// Execute runs the complete build → resolve → allocate → layout → render
// pipeline. Rendered artifacts are served from and stored in the cache.
func (r *Runner) Execute(ctx context.Context, ds *nvio.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res, err := r.View(ctx, ds, opts)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("resolved view",
		"scope", scopeName(opts.Scope),
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"handles", res.Stats.HandleCount,
		"dropped", res.Stats.DroppedCount)

	renderStart := time.Now()
	r.Hooks.Pipeline.OnRenderStart(ctx, opts.Formats)
	artifacts, hits, err := r.renderWithCache(ctx, res, opts)
	res.Stats.RenderTime = time.Since(renderStart)
	r.Hooks.Pipeline.OnRenderComplete(ctx, opts.Formats, res.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	res.CacheInfo.Hits = hits
	res.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", res.Stats.RenderTime)
	return res, nil
}

// View runs every stage except rendering. It never touches the cache.
func (r *Runner) View(ctx context.Context, ds *nvio.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if ds == nil {
		ds = &nvio.Dataset{}
	}

	res, err := BuildView(ctx, ds, opts, r.Hooks)
	if err != nil {
		return nil, err
	}
	res.RunID = uuid.NewString()
	if h, err := cache.HashValue(ds); err == nil {
		res.DatasetHash = h
	}
	return res, nil
}

// renderWithCache renders each format, consulting the cache first unless
// opts.Refresh is set. It returns the formats that were cache hits.
func (r *Runner) renderWithCache(ctx context.Context, res *Result, opts Options) (map[string][]byte, []string, error) {
	keyOpts, err := artifactKeyOpts(opts)
	cacheable := err == nil && res.DatasetHash != ""
	if err != nil {
		r.Logger.Debug("artifact caching disabled", "err", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits []string
	for _, format := range opts.Formats {
		var key string
		if cacheable {
			ko := keyOpts
			ko.Format = format
			key = r.Keyer.ArtifactKey(res.DatasetHash, ko)
			if !opts.Refresh {
				if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
					r.Hooks.Cache.OnCacheHit(ctx, format)
					artifacts[format] = data
					hits = append(hits, format)
					continue
				} else if err != nil {
					r.Logger.Warn("cache read failed", "format", format, "err", err)
				}
				r.Hooks.Cache.OnCacheMiss(ctx, format)
			}
		}

		data, err := RenderFormat(ctx, res, format, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, artifactTTL(opts)); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "err", err)
			} else {
				r.Hooks.Cache.OnCacheSet(ctx, format, len(data))
			}
		}
	}
	return artifacts, hits, nil
}

// artifactKeyOpts hashes every option that changes rendered output.
func artifactKeyOpts(opts Options) (cache.ArtifactKeyOpts, error) {
	shape := opts
	shape.Scope, shape.Formats, shape.Positions = "", nil, nil
	optionsHash, err := cache.HashValue(struct {
		Options
		Measurer string `json:"measurer"`
	}{shape, fmt.Sprintf("%T", opts.Measurer)})
	if err != nil {
		return cache.ArtifactKeyOpts{}, err
	}
	var positionsHash string
	if len(opts.Positions) > 0 {
		if positionsHash, err = cache.HashValue(opts.Positions); err != nil {
			return cache.ArtifactKeyOpts{}, err
		}
	}
	return cache.ArtifactKeyOpts{
		Scope:         opts.Scope,
		OptionsHash:   optionsHash,
		PositionsHash: positionsHash,
	}, nil
}

// artifactTTL returns the configured cache lifetime, falling back to
// cache.TTLArtifact.
func artifactTTL(opts Options) time.Duration {
	if ttl := opts.Config.Cache.TTL.Duration; ttl > 0 {
		return ttl
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func scopeName(scope string) string {
	if scope == "" {
		return "(top level)"
	}
	return scope
}
