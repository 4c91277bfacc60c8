package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danilokhury/orbitmap/internal/app"
	"github.com/danilokhury/orbitmap/internal/config"
	"github.com/danilokhury/orbitmap/pkg/scene"
)

// viewCommand creates the view command that opens the interactive map window.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		pick      bool
		linkMode  string
		backend   string
		noPersist bool
	)

	cmd := &cobra.Command{
		Use:   "view [dataset.json]",
		Short: "Open the interactive orbital map",
		Long: `Open the interactive orbital map.

The dataset comes from the given JSON file, or from the configured MongoDB
source when no file is passed. Manually placed cards and regions persist to
the configured store and restore on the next run.

Controls: drag to pan, wheel to zoom, double-click a label to frame its
region, double-click empty space to fit everything, F fits, L cycles link
rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return c.runView(cmd.Context(), path, pick, linkMode, backend, noPersist)
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "pick the active categories interactively")
	cmd.Flags().StringVar(&linkMode, "links", "", "link rendering: all, intra, off (default from config)")
	cmd.Flags().StringVar(&backend, "store", "", "position store backend: file, redis (default from config)")
	cmd.Flags().BoolVar(&noPersist, "no-persist", false, "do not load or save positions")

	return cmd
}

func (c *CLI) runView(ctx context.Context, path string, pick bool, linkMode, backend string, noPersist bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Store.Backend = backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	mode, err := resolveLinkMode(linkMode, cfg)
	if err != nil {
		return err
	}

	dataset, err := c.loadDataset(ctx, cfg, path)
	if err != nil {
		return err
	}

	var active []string
	if pick {
		picker := NewCategoryListModel(dataset)
		final, err := tea.NewProgram(picker, tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("category picker: %w", err)
		}
		m, ok := final.(CategoryListModel)
		if !ok || !m.Confirmed {
			printInfo("Cancelled")
			return nil
		}
		active = m.Selection()
	}

	opts := scene.Options{
		Dataset:      dataset,
		SaveDebounce: time.Duration(cfg.Store.DebounceMS) * time.Millisecond,
		Logger:       c.Logger,
		Layout:       layoutParams(cfg.Layout),
		Viewport:     viewportConfig(cfg.Viewport),
		Render:       renderConfig(cfg),
		LinkMode:     mode,
	}
	if !noPersist {
		store, err := newStore(ctx, cfg.Store)
		if err != nil {
			if cfg.Store.Backend == config.BackendRedis {
				c.Logger.Warn("position store unavailable, continuing without persistence", "err", err)
			} else {
				return err
			}
		} else {
			opts.Store = store
		}
	}

	s, err := scene.New(ctx, opts, scene.Events{})
	if err != nil {
		return err
	}
	defer func() {
		// The window context is gone by now; give the final save a moment.
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Close(flushCtx); err != nil {
			c.Logger.Warn("close scene", "err", err)
		}
	}()

	if active != nil {
		if err := s.SetActiveCategories(ctx, active); err != nil {
			return err
		}
	}

	stats := s.Layout().Stats()
	c.Logger.Info("map ready", "cards", stats.Cards, "parents", stats.Parents, "children", stats.Children)

	return app.Run(ctx, s, appName, mode)
}
