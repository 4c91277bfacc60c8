package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// positionsCommand creates the positions command group for inspecting and
// resetting the persisted placement store.
func (c *CLI) positionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Inspect or reset saved card and region positions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List every saved position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPositionsShow(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all saved positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPositionsClear(cmd.Context())
		},
	})

	return cmd
}

func (c *CLI) runPositionsShow(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printInfo("No saved positions")
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var cards, regions int
	for _, k := range keys {
		e := entries[k]
		label := k
		if name, ok := model.ParseRegionKey(k); ok {
			label = name + " (region)"
			regions++
		} else {
			cards++
		}
		value := fmt.Sprintf("%.1f, %.1f", e.X, e.Y)
		if e.Pinned {
			value += "  pinned"
		}
		printKeyValue(label, value)
	}

	printNewline()
	printDetail("%d cards, %d regions", cards, regions)
	return nil
}

func (c *CLI) runPositionsClear(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(ctx); err != nil {
		return err
	}
	printSuccess("Saved positions cleared")
	printNextStep("Relayout", appName+" view")
	return nil
}
