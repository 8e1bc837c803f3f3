package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/geolife/internal/geohash"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Precision != 2 {
		t.Errorf("expected precision 2, got %d", cfg.Precision)
	}
	if cfg.TickRateHz != 5 {
		t.Errorf("expected 5 ticks per second, got %v", cfg.TickRateHz)
	}
	if cfg.TickInterval() != 200*time.Millisecond {
		t.Errorf("expected 200ms interval, got %v", cfg.TickInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	origin, err := cfg.OriginHash()
	if err != nil || origin != "u2" {
		t.Errorf("OriginHash() = %q, %v", origin, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte(`precision: 5
tick_rate_hz: 10
cycle_window: 2
origin:
  lat: 40.7128
  lng: -74.006
seed:
  pattern: glider
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Precision != 5 || cfg.TickRateHz != 10 || cfg.CycleWindow != 2 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Seed.Pattern != "glider" {
		t.Errorf("expected glider, got %q", cfg.Seed.Pattern)
	}
	// unset keys keep their defaults
	if cfg.Seed.Random.Density != DefaultDensity {
		t.Errorf("expected default density, got %v", cfg.Seed.Random.Density)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.MaxGenerations = 50
	cfg.Seed.Cells = []string{"u2", "u3"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.MaxGenerations != 50 || len(loaded.Seed.Cells) != 2 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero precision", func(c *Config) { c.Precision = 0 }, geohash.ErrInvalidPrecision},
		{"huge precision", func(c *Config) { c.Precision = 13 }, geohash.ErrInvalidPrecision},
		{"zero tick rate", func(c *Config) { c.TickRateHz = 0 }, ErrInvalidTickRate},
		{"sub-nanosecond tick rate", func(c *Config) { c.TickRateHz = 2e9 }, ErrInvalidTickRate},
		{"infinite tick rate", func(c *Config) { c.TickRateHz = math.Inf(1) }, ErrInvalidTickRate},
		{"NaN tick rate", func(c *Config) { c.TickRateHz = math.NaN() }, ErrInvalidTickRate},
		{"zero cycle window", func(c *Config) { c.CycleWindow = 0 }, ErrInvalidCycleWindow},
		{"bad origin", func(c *Config) { c.Origin.Lat = 120 }, geohash.ErrInvalidCoordinate},
		{"bad density", func(c *Config) { c.Seed.Random.Density = 1.5 }, ErrInvalidDensity},
		{"bad seed cell", func(c *Config) { c.Seed.Cells = []string{"ai"} }, geohash.ErrInvalidGeohash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_Other(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed.Pattern = "nonexistent"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown pattern")
	}

	cfg = DefaultConfig()
	cfg.Seed.Cells = []string{"u2edh"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for precision mismatch")
	}

	cfg = DefaultConfig()
	cfg.MaxGenerations = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative max generations")
	}
}

func TestGetPattern(t *testing.T) {
	p := GetPattern("glider")
	if p == nil {
		t.Fatal("expected pattern, got nil")
	}
	if len(p.Cells()) != 5 {
		t.Errorf("expected 5 glider cells, got %d", len(p.Cells()))
	}

	if GetPattern("nonexistent") != nil {
		t.Error("expected nil for nonexistent pattern")
	}
}

func TestPatternCells(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"block", 4},
		{"beehive", 6},
		{"loaf", 7},
		{"blinker", 3},
		{"toad", 6},
		{"beacon", 8},
		{"lwss", 9},
		{"rpentomino", 5},
	}

	for _, tt := range tests {
		if got := len(GetPattern(tt.name).Cells()); got != tt.expected {
			t.Errorf("pattern %s: expected %d cells, got %d", tt.name, tt.expected, got)
		}
	}
}

func TestListPatterns(t *testing.T) {
	names := ListPatterns()
	if len(names) != len(Patterns) {
		t.Errorf("expected %d patterns, got %d", len(Patterns), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("patterns not sorted: %v", names)
		}
	}
}

func TestCheckTickRate(t *testing.T) {
	tests := []struct {
		hz    float64
		valid bool
	}{
		{5, true},
		{0.001, true},
		{1e9, true},
		{0, false},
		{-1, false},
		{2e9, false},
		{1e-10, false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
		{math.NaN(), false},
	}

	for _, tt := range tests {
		err := CheckTickRate(tt.hz)
		if tt.valid && err != nil {
			t.Errorf("CheckTickRate(%v) = %v, want nil", tt.hz, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidTickRate) {
			t.Errorf("CheckTickRate(%v) = %v, want ErrInvalidTickRate", tt.hz, err)
		}
	}
}

func TestLoadRejectsNonFiniteTickRate(t *testing.T) {
	for _, v := range []string{".inf", ".nan", "2e9"} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("tick_rate_hz: "+v+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrInvalidTickRate) {
			t.Errorf("tick_rate_hz %s: error = %v, want ErrInvalidTickRate", v, err)
		}
	}
}
