package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/model"
)

// layoutCommand creates the layout command for computing placements headlessly.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		categories string
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset.json]",
		Short: "Compute the orbital layout and write it as JSON",
		Long: `Compute the orbital layout and write it as JSON.

The layout command runs the same placement the interactive view uses, without
opening a window: category regions packed on rings, cards placed on orbits
inside each region. The output lists every region with its center and radius
and every card with its world position.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return c.runLayout(cmd.Context(), path, output, categories)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated category filter")

	return cmd
}

// layoutExport is the JSON shape written by the layout command.
type layoutExport struct {
	Regions []*model.CategoryRegion `json:"regions"`
	Cards   []cardExport            `json:"cards"`
}

type cardExport struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pinned   bool    `json:"pinned,omitempty"`
}

func (c *CLI) runLayout(ctx context.Context, input, output, categories string) error {
	cfg, err := c.loadConfig()
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

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	l := c.buildLayout(cfg, dataset, active)
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(input, ".layout.json", "layout.json")
	}
	if err := writeLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	stats := l.Stats()
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(stats.Cards, stats.Parents+stats.Children, 0)
	printNewline()
	printNextStep("Render", appName+" snapshot "+input)

	return nil
}

// writeLayoutFile serializes the built layout with record ids attached to
// each card.
func writeLayoutFile(l *layout.Layout, path string) error {
	export := layoutExport{Regions: l.Roots, Cards: make([]cardExport, 0, len(l.Cards))}
	for _, card := range l.Cards {
		export.Cards = append(export.Cards, cardExport{
			ID:       card.Record.ID,
			Category: card.Record.Category,
			X:        card.X,
			Y:        card.Y,
			Pinned:   card.Pinned,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
