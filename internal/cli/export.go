package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/render/nodelink"
)

// Export formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// exportCommand creates the export command for category-graph diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
		links    bool
	)

	cmd := &cobra.Command{
		Use:   "export [dataset.json]",
		Short: "Export the category hierarchy as a node-link diagram",
		Long: `Export the category hierarchy as a node-link diagram.

The export command emits Graphviz DOT, or renders it to SVG in-process.
Parent categories appear as bold boxes with their children attached below;
--links adds dashed edges counting the cross-category record links between
each pair of categories.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return c.runExport(cmd.Context(), path, output, format, detailed, links)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include record counts in labels")
	cmd.Flags().BoolVar(&links, "links", false, "include aggregated cross-category link edges")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output, format string, detailed, links bool) error {
	if format != formatDOT && format != formatSVG {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format %q: want svg or dot", format)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	dataset, err := c.loadDataset(ctx, cfg, input)
	if err != nil {
		return err
	}

	l := c.buildLayout(cfg, dataset, nil)
	dot := nodelink.ToDOT(l, dataset.Links, nodelink.Options{
		Detailed:     detailed,
		IncludeLinks: links,
	})

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		spinner := newSpinner(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = nodelink.RenderSVG(dot)
		spinner.Stop()
		if err != nil {
			return err
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(input, "."+format, appName+"."+format)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Export complete (%s)", strings.ToUpper(format))
	printFile(outputPath)

	return nil
}
