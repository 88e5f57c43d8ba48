package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelchart/internal/server"
)

// serveCommand creates the serve command for running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render pipeline over HTTP",
		Long: `Serve the layout and render pipeline over HTTP.

Routes:
  GET  /healthz     build information
  POST /v1/layout   chart JSON in, layout JSON out
  POST /v1/render   chart JSON in, artifact out (?format=svg,png,pdf,json)

Use --redis to share the cache between several server instances.

Examples:
  funnelchart serve
  funnelchart serve --addr 127.0.0.1:9000 --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger)
			return srv.ListenAndServe(ctx, addr, func(a net.Addr) {
				fmt.Fprintln(stdout, StyleTitle.Render(appName+" server"))
				printKeyValue("Listening", StyleLink.Render("http://"+displayAddr(a)))
				printKeyValue("Cache", c.cacheLabel(noCache))
				printNewline()
				printNextStep("Try", "curl http://"+displayAddr(a)+"/healthz")
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr turns a wildcard listen address into one a browser can open.
func displayAddr(a net.Addr) string {
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return a.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

// cacheLabel describes the cache backend for display.
func (c *CLI) cacheLabel(noCache bool) string {
	switch {
	case noCache:
		return "disabled"
	case c.redisURL != "":
		return redactURL(c.redisURL)
	default:
		dir, err := cacheDir()
		if err != nil {
			return "disabled"
		}
		return dir
	}
}
