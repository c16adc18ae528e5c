// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Hosts hand a [Hooks] value to the
// resolver and the pipeline runner; nothing is registered globally, so two
// runners in the same process can report to different sinks.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Let the host pass its implementation in through options
//
// # Usage
//
//	hooks := observability.Hooks{Pipeline: myPipelineHooks{}}
//	runner := pipeline.NewRunner(cache, hooks, logger)
//
// Libraries call hooks to emit events:
//
//	hooks.Pipeline.OnLayoutStart(ctx, nodeCount)
//	// ... compute layout ...
//	hooks.Pipeline.OnLayoutComplete(ctx, duration, err)
package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveHooks receives events from visibility resolution.
type ResolveHooks interface {
	// OnRelationshipDropped records a relationship that never reached the view
	// because an endpoint is unknown or could not be rerouted.
	OnRelationshipDropped(ctx context.Context, source, target, reason string)

	// OnHandleRegistered records a new port on a visible group.
	OnHandleRegistered(ctx context.Context, owner, direction, buried string)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	// Resolve events
	OnResolveComplete(ctx context.Context, scope string, nodeCount, edgeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// Hooks bundles every hook category. Nil fields are treated as no-ops; call
// [Hooks.OrNoop] before use.
type Hooks struct {
	Resolve  ResolveHooks
	Pipeline PipelineHooks
	Cache    CacheHooks
}

// OrNoop returns a copy of h with every nil category replaced by its no-op
// implementation.
func (h Hooks) OrNoop() Hooks {
	if h.Resolve == nil {
		h.Resolve = NoopResolveHooks{}
	}
	if h.Pipeline == nil {
		h.Pipeline = NoopPipelineHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	return h
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnRelationshipDropped(context.Context, string, string, string) {}
func (NoopResolveHooks) OnHandleRegistered(context.Context, string, string, string)    {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnResolveComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration, error)           {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks reports every event to a charm logger at debug level.
// The CLI installs it so events show up under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns a [Hooks] value with every category routed to logger.
func NewLogHooks(logger *log.Logger) Hooks {
	l := LogHooks{Logger: logger}
	return Hooks{Resolve: l, Pipeline: l, Cache: l}
}

func (l LogHooks) OnRelationshipDropped(_ context.Context, source, target, reason string) {
	l.Logger.Debug("relationship dropped", "source", source, "target", target, "reason", reason)
}

func (l LogHooks) OnHandleRegistered(_ context.Context, owner, direction, buried string) {
	l.Logger.Debug("handle registered", "owner", owner, "direction", direction, "buried", buried)
}

func (l LogHooks) OnResolveComplete(_ context.Context, scope string, nodes, edges int, d time.Duration, err error) {
	l.Logger.Debug("resolve complete", "scope", scope, "nodes", nodes, "edges", edges, "took", d, "err", err)
}

func (l LogHooks) OnLayoutStart(_ context.Context, nodeCount int) {
	l.Logger.Debug("layout start", "nodes", nodeCount)
}

func (l LogHooks) OnLayoutComplete(_ context.Context, d time.Duration, err error) {
	l.Logger.Debug("layout complete", "took", d, "err", err)
}

func (l LogHooks) OnRenderStart(_ context.Context, formats []string) {
	l.Logger.Debug("render start", "formats", formats)
}

func (l LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	l.Logger.Debug("render complete", "formats", formats, "took", d, "err", err)
}

func (l LogHooks) OnCacheHit(_ context.Context, keyType string) {
	l.Logger.Debug("cache hit", "type", keyType)
}

func (l LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	l.Logger.Debug("cache miss", "type", keyType)
}

func (l LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	l.Logger.Debug("cache set", "type", keyType, "bytes", size)
}
