package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danilokhury/orbitmap/pkg/render"
	"github.com/danilokhury/orbitmap/pkg/render/raster"
)

// snapshotCommand creates the snapshot command for rendering the map to PNG.
func (c *CLI) snapshotCommand() *cobra.Command {
	var (
		output     string
		width      int
		height     int
		categories string
		linkMode   string
	)

	cmd := &cobra.Command{
		Use:   "snapshot [dataset.json]",
		Short: "Render the whole map to a PNG image",
		Long: `Render the whole map to a PNG image.

The snapshot command computes the layout and draws it once, framed to fit the
image, using the same pipeline as the interactive view.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return c.runSnapshot(cmd.Context(), path, output, width, height, categories, linkMode)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.png)")
	cmd.Flags().IntVar(&width, "width", 1920, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 1080, "image height in pixels")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated category filter")
	cmd.Flags().StringVar(&linkMode, "links", "", "link rendering: all, intra, off (default from config)")

	return cmd
}

func (c *CLI) runSnapshot(ctx context.Context, input, output string, width, height int, categories, linkMode string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	mode, err := resolveLinkMode(linkMode, cfg)
	if err != nil {
		return err
	}
	dataset, err := c.loadDataset(ctx, cfg, input)
	if err != nil {
		return err
	}

	var active map[string]bool
	if categories != "" {
		active = activeSet(strings.Split(categories, ","))
	}

	spinner := newSpinner(ctx, "Rendering snapshot...")
	spinner.Start()

	l := c.buildLayout(cfg, dataset, active)
	canvas, err := raster.Snapshot(l, render.Frame{LinkMode: mode, Links: dataset.Links}, width, height)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(input, ".png", "orbitmap.png")
	}
	if err := canvas.SavePNG(outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	stats := l.Stats()
	printSuccess("Snapshot complete")
	printFile(outputPath)
	printStats(stats.Cards, stats.Parents+stats.Children, 0)

	return nil
}
