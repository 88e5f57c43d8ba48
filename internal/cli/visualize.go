package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelchart/pkg/errors"
	"github.com/matzehuels/funnelchart/pkg/funnel"
	"github.com/matzehuels/funnelchart/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [chart.layout.json]",
		Short: "Render a funnel from a computed layout",
		Long: `Render a funnel from a computed layout.

The visualize command takes a layout file (produced by 'layout') and renders
it to SVG, PNG, PDF or JSON. The layout already holds every slice, label and
leader line position, so this step is purely about drawing.

Use 'render' as a shortcut to go directly from a chart definition to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	addRenderFlags(cmd, &opts)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := readLayoutFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, os.Stderr, "Rendering...")
	spinner.Start()

	p := newProgress(c.Logger)
	artifacts, cacheHit, err := runner.Render(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Rendered %s", plural(len(artifacts), "file")))

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		layout:    layout,
		cacheHit:  cacheHit,
	})
}

// readLayoutFile decodes a layout written by the layout command.
func readLayoutFile(path string) (funnel.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return funnel.Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s not found", path)
		}
		return funnel.Result{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	var layout funnel.Result
	if err := json.Unmarshal(data, &layout); err != nil {
		return funnel.Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout %s", path)
	}
	if len(layout.Points) != len(layout.Slices) || len(layout.Points) != len(layout.Labels) {
		return funnel.Result{}, errors.New(errors.ErrCodeInvalidInput, "layout %s is incomplete: %d points, %d slices, %d labels",
			path, len(layout.Points), len(layout.Slices), len(layout.Labels))
	}
	return layout, nil
}
