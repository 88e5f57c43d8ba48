package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/pipeline"
)

// renderCommand creates the render command: definition to artifacts in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [chart.toml]",
		Short: "Lay out and render a chart definition",
		Long: `Lay out and render a chart definition.

Equivalent to 'layout' followed by 'visualize', without writing the
intermediate layout file. Both stages are cached.

Examples:
  funnelchart render q3.toml
  funnelchart render q3.toml -f svg,png --wrap --converge
  funnelchart render q3.json -f pdf -o reports/q3.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts)

	return cmd
}

// addRenderFlags registers the flags that control drawing.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title (default: chart setting)")
	cmd.Flags().StringSliceVar(&opts.Palette, "palette", nil, "slice colours as #rrggbb, cycled by series")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "add hover highlighting to SVG output")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "inline the label font in SVG and PDF output")
	if cmd.Flags().Lookup("font-size") == nil {
		cmd.Flags().Float64Var(&opts.FontSize, "font-size", pipeline.DefaultFontSize, "label font size in pixels")
	}
	if cmd.Flags().Lookup("refresh") == nil {
		cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	}
}

// runRender executes the full pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, os.Stderr, "Rendering chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
		layout:    result.Layout,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams describes one batch of rendered artifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	layout    funnel.Result
	cacheHit  bool
}

// writeArtifacts writes each artifact in format order. A single format goes
// to output verbatim; several formats share output as a base path.
func writeArtifacts(p artifactWriteParams) error {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(p.output, p.input, format, len(p.formats))
		if err := writeOutput(path, data); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	for _, path := range paths {
		printFile(path)
	}
	printStats(len(p.layout.Slices), p.layout.SideLabels(), p.layout.Passes, p.cacheHit)
	return nil
}

// artifactPath returns the output file for one format.
func artifactPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}
