package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelchart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing funnel geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [chart.toml]",
		Short: "Compute funnel geometry from a chart definition",
		Long: `Compute funnel geometry from a chart definition.

The layout command reads a TOML or JSON chart, sizes every slice so its area
is proportional to its value, and places labels inside slices or beside the
funnel. The result is written as <chart>.layout.json, which 'visualize' can
render to SVG/PNG/PDF without recomputing.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the flags that override chart layout settings.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width (default: chart setting or 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height (default: chart setting or 600)")
	cmd.Flags().Float64Var(&opts.Slope, "slope", 0, "side slope in (0, 0.5) (default: chart setting or 0.3)")
	cmd.Flags().Float64Var(&opts.MinLabelWidth, "min-label-width", 0, "narrowest label box before ellipsis")
	cmd.Flags().BoolVar(&opts.Wrap, "wrap", false, "word-wrap labels instead of truncating them")
	cmd.Flags().BoolVar(&opts.Converge, "converge", false, "repeat layout passes until the funnel stops moving")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", pipeline.DefaultFontSize, "label font size in pixels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
}

// runLayout loads the chart, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	opts.Logger = c.Logger
	def, err := pipeline.LoadDefinition(opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayout(ctx, def, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Input) + ".layout.json"
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Slices), layout.SideLabels(), layout.Passes, cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// writeOutput writes data to path, creating the file with 0644 permissions.
func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
