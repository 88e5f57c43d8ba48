// Package observability lets the binary observe pipeline, cache and server
// events without the libraries depending on a metrics or logging backend.
//
// Each event category has an interface with a no-op default. The binary
// installs implementations once at startup; libraries fetch the current ones
// at the call site:
//
//	observability.Install(observability.Hooks{Cache: myCacheMetrics})
//
//	observability.Pipeline().OnLayoutStart(ctx, points)
//	res := funnel.Layout(series, m, cfg)
//	observability.Pipeline().OnLayoutComplete(ctx, res.Passes, res.SideLabels(), time.Since(start), nil)
//
// [LogHooks] implements every category on top of charmbracelet/log.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout and render pipeline.
type PipelineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, points int)
	OnLayoutComplete(ctx context.Context, passes, sideLabels int, duration time.Duration, err error)

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

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events for requests handled by the server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int) {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// Hooks bundles one implementation per event category.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

func noopHooks() Hooks {
	return Hooks{Pipeline: NoopPipelineHooks{}, Cache: NoopCacheHooks{}, HTTP: NoopHTTPHooks{}}
}

var (
	mu      sync.RWMutex
	current = noopHooks()
)

// Install replaces the hooks for every non-nil field of h.
func Install(h Hooks) {
	mu.Lock()
	defer mu.Unlock()
	if h.Pipeline != nil {
		current.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		current.Cache = h.Cache
	}
	if h.HTTP != nil {
		current.HTTP = h.HTTP
	}
}

// SetPipelineHooks installs pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) { Install(Hooks{Pipeline: h}) }

// SetCacheHooks installs cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) { Install(Hooks{Cache: h}) }

// SetHTTPHooks installs server request hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) { Install(Hooks{HTTP: h}) }

func installed() Hooks {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return installed().Pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return installed().Cache }

// HTTP returns the installed server request hooks.
func HTTP() HTTPHooks { return installed().HTTP }

// Reset restores the no-op hooks. Tests use it in t.Cleanup.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = noopHooks()
}
