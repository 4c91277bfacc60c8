// Package config loads the orbitmap configuration file.
//
// Configuration is TOML, read from an explicit path or from the default
// location ~/.config/orbitmap/config.toml. A missing file is not an error:
// every field has a default, and the zero-value sections are filled in by
// Default before decoding.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
)

// Storage backends for persisted card/region positions.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the full application configuration.
type Config struct {
	Layout   LayoutConfig   `toml:"layout"`
	Viewport ViewportConfig `toml:"viewport"`
	Render   RenderConfig   `toml:"render"`
	Store    StoreConfig    `toml:"store"`
	Source   SourceConfig   `toml:"source"`
}

// LayoutConfig holds the orbital layout tunables.
type LayoutConfig struct {
	CardWidth       float64 `toml:"card_width"`
	CardHeight      float64 `toml:"card_height"`
	CardGap         float64 `toml:"card_gap"`
	RingHeight      float64 `toml:"ring_height"`
	LabelMargin     float64 `toml:"label_margin"`
	BaseRingRadius  float64 `toml:"base_ring_radius"`
	RingScale       float64 `toml:"ring_scale"`
	ChildOrbitGap   float64 `toml:"child_orbit_gap"`
	MinParentRing   float64 `toml:"min_parent_ring"`
	RegionPadding   float64 `toml:"region_padding"`
	CollisionPasses int     `toml:"collision_passes"`
}

// ViewportConfig holds camera behavior tunables.
type ViewportConfig struct {
	MinZoom      float64 `toml:"min_zoom"`
	MaxZoom      float64 `toml:"max_zoom"`
	PanFriction  float64 `toml:"pan_friction"`
	ZoomLerp     float64 `toml:"zoom_lerp"`
	TransitionMS int     `toml:"transition_ms"`
}

// RenderConfig holds render pipeline tunables.
type RenderConfig struct {
	CullMargin float64 `toml:"cull_margin"`
	LODFullPx  float64 `toml:"lod_full_px"`
	LODRectPx  float64 `toml:"lod_rect_px"`
	LinkMode   string  `toml:"link_mode"`
}

// StoreConfig selects and configures the position persistence backend.
type StoreConfig struct {
	Backend    string `toml:"backend"` // "file" or "redis"
	Dir        string `toml:"dir"`     // file backend; empty means config dir
	RedisAddr  string `toml:"redis_addr"`
	DebounceMS int    `toml:"debounce_ms"`
}

// SourceConfig configures the optional MongoDB dataset source.
type SourceConfig struct {
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			CardWidth:       120,
			CardHeight:      70,
			CardGap:         18,
			RingHeight:      90,
			LabelMargin:     12,
			BaseRingRadius:  300,
			RingScale:       60,
			ChildOrbitGap:   80,
			MinParentRing:   400,
			RegionPadding:   60,
			CollisionPasses: 6,
		},
		Viewport: ViewportConfig{
			MinZoom:      0.05,
			MaxZoom:      4.0,
			PanFriction:  0.92,
			ZoomLerp:     0.18,
			TransitionMS: 600,
		},
		Render: RenderConfig{
			CullMargin: 200,
			LODFullPx:  25,
			LODRectPx:  12,
			LinkMode:   "all",
		},
		Store: StoreConfig{
			Backend:    BackendFile,
			RedisAddr:  "localhost:6379",
			DebounceMS: 2000,
		},
		Source: SourceConfig{
			MongoDatabase:   "orbitmap",
			MongoCollection: "records",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "orbitmap", "config.toml"), nil
}

// Load reads the config file at path, overlaying it onto the defaults.
// If path is empty the default location is used. A missing file yields
// the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise produce degenerate layouts.
func (c *Config) Validate() error {
	if c.Layout.CardWidth <= 0 || c.Layout.CardHeight <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "card dimensions must be positive")
	}
	if c.Layout.CollisionPasses < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "collision_passes must be >= 0")
	}
	if c.Viewport.MinZoom <= 0 || c.Viewport.MaxZoom <= c.Viewport.MinZoom {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "zoom bounds must satisfy 0 < min < max")
	}
	if c.Viewport.PanFriction <= 0 || c.Viewport.PanFriction >= 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "pan_friction must be in (0, 1)")
	}
	if c.Store.Backend != BackendFile && c.Store.Backend != BackendRedis {
		return apperrors.New(apperrors.ErrCodeInvalidBackend, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}
