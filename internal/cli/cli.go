// Package cli implements the funnelchart command-line interface.
//
// The CLI lays out and renders funnel charts described in TOML or JSON
// definition files, and can serve the same pipeline over HTTP. It is built
// on cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute the funnel geometry and write it as layout JSON
//   - visualize: Render a saved layout to SVG, PNG, PDF or JSON
//   - render: Load, lay out and render a chart in one step
//   - serve: Run the HTTP server
//   - cache: Manage the local layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports layout, render and cache events.
package cli

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelchart/pkg/buildinfo"
	"github.com/matzehuels/funnelchart/pkg/cache"
	"github.com/matzehuels/funnelchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "funnelchart"

	// envRedisURL selects a shared Redis cache when --redis is not given.
	envRedisURL = "FUNNELCHART_REDIS_URL"
)

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

	// redisURL selects a Redis cache instead of the file cache.
	redisURL string

	verbose bool
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
		Use:   appName,
		Short: "funnelchart lays out and renders funnel charts",
		Long: `funnelchart turns a list of stages and values into a funnel chart.

Each stage becomes a trapezoid whose area is proportional to its value. Labels
that do not fit inside their slice are moved beside the funnel and connected
with leader lines.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				enableEventLogging(c.Logger)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.redisURL, "redis", os.Getenv(envRedisURL), "Redis URL for a shared cache (e.g. redis://localhost:6379/0)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys are scoped by build
// version so that a new engine never reads layouts cached by an older one.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Get().Version+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache returns the cache selected by flags: none, Redis, or the file
// cache under cacheDir. An unusable home directory disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, c.redisURL, "")
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "url", redactURL(c.redisURL))
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/funnelchart/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the output path without extension. An empty output uses
// the input path with its extension and any ".layout" suffix removed.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// redactURL hides the password of a Redis URL for logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
