// Package cli implements the orbitmap command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/danilokhury/orbitmap/internal/config"
	"github.com/danilokhury/orbitmap/internal/source"
	"github.com/danilokhury/orbitmap/pkg/buildinfo"
	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/model"
	"github.com/danilokhury/orbitmap/pkg/positions"
	"github.com/danilokhury/orbitmap/pkg/render"
	"github.com/danilokhury/orbitmap/pkg/viewport"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "orbitmap"

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

	// configPath is the --config override, empty for the default location.
	configPath string
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
		Use:          appName,
		Short:        "Orbitmap lays out categorized records as an orbital map",
		Long:         `Orbitmap arranges categorized records on concentric rings around their category centers, producing a pannable, zoomable map with persistent manual placement.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/orbitmap/config.toml)")

	// Register all subcommands
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.positionsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Loading
// =============================================================================

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadDataset resolves the dataset from an optional file argument or the
// configured MongoDB source.
func (c *CLI) loadDataset(ctx context.Context, cfg *config.Config, path string) (*model.Dataset, error) {
	loader, err := source.Open(path, cfg.Source)
	if err != nil {
		return nil, err
	}

	p := newProgress(c.Logger)
	d, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	p.done(fmt.Sprintf("Loaded %d records", len(d.Records)))
	return d, nil
}

// newStore creates the position store selected by the config.
func newStore(ctx context.Context, cfg config.StoreConfig) (positions.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return positions.NewFileStore(cfg.Dir)
	case config.BackendRedis:
		return positions.NewRedisStore(ctx, cfg.RedisAddr)
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidBackend, "unknown store backend %q", cfg.Backend)
}

// buildLayout runs the layout engine over the dataset without persistence,
// for the one-shot commands.
func (c *CLI) buildLayout(cfg *config.Config, d *model.Dataset, active map[string]bool) *layout.Layout {
	engine := layout.NewEngine(layoutParams(cfg.Layout), c.Logger)
	return engine.Build(d, active, nil)
}

// =============================================================================
// Config Mapping
// =============================================================================

func layoutParams(l config.LayoutConfig) layout.Params {
	return layout.Params{
		CardWidth:       l.CardWidth,
		CardHeight:      l.CardHeight,
		CardGap:         l.CardGap,
		RingHeight:      l.RingHeight,
		LabelMargin:     l.LabelMargin,
		BaseRingRadius:  l.BaseRingRadius,
		RingScale:       l.RingScale,
		ChildOrbitGap:   l.ChildOrbitGap,
		MinParentRing:   l.MinParentRing,
		RegionPadding:   l.RegionPadding,
		CollisionPasses: l.CollisionPasses,
	}
}

func viewportConfig(v config.ViewportConfig) viewport.Config {
	return viewport.Config{
		MinZoom:      v.MinZoom,
		MaxZoom:      v.MaxZoom,
		PanFriction:  v.PanFriction,
		ZoomLerp:     v.ZoomLerp,
		TransitionMS: float64(v.TransitionMS),
	}
}

func renderConfig(cfg *config.Config) render.Config {
	return render.Config{
		CardWidth:  cfg.Layout.CardWidth,
		CardHeight: cfg.Layout.CardHeight,
		CullMargin: cfg.Render.CullMargin,
		LODFullPx:  cfg.Render.LODFullPx,
		LODRectPx:  cfg.Render.LODRectPx,
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// activeSet converts a category name slice to the engine's filter form. Nil
// means all categories.
func activeSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// resolveLinkMode validates a --links flag value, falling back to the config.
func resolveLinkMode(flag string, cfg *config.Config) (string, error) {
	mode := flag
	if mode == "" {
		mode = cfg.Render.LinkMode
	}
	if !model.ValidLinkModes[mode] {
		return "", apperrors.New(apperrors.ErrCodeInvalidInput,
			"invalid link mode %q: want all, intra, or off", mode)
	}
	return mode, nil
}

// defaultOutput derives an output path from the input file, or falls back when
// the dataset came from a database.
func defaultOutput(input, suffix, fallback string) string {
	if input == "" {
		return fallback
	}
	base := input[:len(input)-len(filepath.Ext(input))]
	return base + suffix
}
