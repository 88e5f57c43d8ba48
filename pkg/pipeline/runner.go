package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/funnelchart/pkg/cache"
	"github.com/matzehuels/funnelchart/pkg/chart"
	"github.com/matzehuels/funnelchart/pkg/errors"
	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	def, err := LoadDefinition(opts)
	if err != nil {
		return nil, err
	}
	result.Definition = def
	result.Stats.ParseTime = time.Since(parseStart)
	opts.ApplyDefinition(def)

	opts.Logger.Debug("loaded chart",
		"title", def.Title,
		"series", len(def.Series),
		"duration", result.Stats.ParseTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayout(ctx, def, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Slices = len(layout.Slices)
	result.Stats.SideLabels = layout.SideLabels()
	result.Stats.Passes = layout.Passes
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"slices", result.Stats.Slices,
		"side_labels", result.Stats.SideLabels,
		"passes", result.Stats.Passes,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.Render(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout lays out a validated definition, reading and writing the
// cache. The boolean reports a cache hit.
func (r *Runner) ComputeLayout(ctx context.Context, def *chart.Definition, opts Options) (funnel.Result, bool, error) {
	if def == nil {
		return funnel.Result{}, false, errors.New(errors.ErrCodeInvalidInput, "chart definition is required")
	}
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()

	input := newLayoutInput(def)
	chartHash, err := cache.HashJSON(input)
	if err != nil {
		return funnel.Result{}, false, errors.Wrap(errors.ErrCodeInternal, err, "hash chart")
	}
	cacheKey := r.Keyer.LayoutKey(chartHash, opts.LayoutKeyOpts(input.Config))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, ok := r.cachedLayout(ctx, cacheKey, opts.Logger); ok {
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeLayout)

	m, err := opts.measurer()
	if err != nil {
		return funnel.Result{}, false, err
	}

	hooks := observability.Pipeline()
	points := 0
	for _, s := range input.Series {
		points += s.Count()
	}
	hooks.OnLayoutStart(ctx, points)
	start := time.Now()
	layout := GenerateLayout(def, m)
	hooks.OnLayoutComplete(ctx, layout.Passes, layout.SideLabels(), time.Since(start), nil)

	if data, err := json.Marshal(layout); err == nil {
		r.store(ctx, cacheKey, keyTypeLayout, data, cache.TTLLayout, opts.Logger)
	}

	return layout, false, nil
}

// cachedLayout returns the layout stored under key. Undecodable entries are
// treated as misses and recomputed.
func (r *Runner) cachedLayout(ctx context.Context, key string, logger *log.Logger) (funnel.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
		return funnel.Result{}, false
	}
	if !hit {
		return funnel.Result{}, false
	}
	var layout funnel.Result
	if err := json.Unmarshal(data, &layout); err != nil {
		logger.Debug("discarding corrupt layout", "key", key, "error", err)
		return funnel.Result{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return layout, true
}

// Render generates artifacts with caching. The boolean reports whether every
// requested format came from the cache.
func (r *Runner) Render(ctx context.Context, layout funnel.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := json.Marshal(layout)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderFromLayout(ctx, layout, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, key, keyTypeArtifact, data, cache.TTLArtifact, opts.Logger)
	}

	return artifacts, false, nil
}

// store writes a cache entry. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
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
