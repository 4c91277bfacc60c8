package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg.Layout.CardWidth != def.Layout.CardWidth {
		t.Errorf("CardWidth = %v, want default %v", cfg.Layout.CardWidth, def.Layout.CardWidth)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, BackendFile)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
collision_passes = 10

[store]
backend = "redis"
redis_addr = "redis:6379"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Layout.CollisionPasses != 10 {
		t.Errorf("CollisionPasses = %d, want 10", cfg.Layout.CollisionPasses)
	}
	if cfg.Store.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q, want redis:6379", cfg.Store.RedisAddr)
	}
	// Untouched sections keep their defaults.
	if cfg.Layout.CardWidth != Default().Layout.CardWidth {
		t.Errorf("CardWidth = %v, want default", cfg.Layout.CardWidth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero card width", func(c *Config) { c.Layout.CardWidth = 0 }, true},
		{"negative passes", func(c *Config) { c.Layout.CollisionPasses = -1 }, true},
		{"inverted zoom bounds", func(c *Config) { c.Viewport.MaxZoom = c.Viewport.MinZoom }, true},
		{"friction out of range", func(c *Config) { c.Viewport.PanFriction = 1.5 }, true},
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
