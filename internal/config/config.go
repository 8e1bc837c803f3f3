package config

import (
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/geolife/internal/geohash"
)

const (
	DefaultPrecision   = 2
	DefaultTickRateHz  = 5.0
	DefaultCycleWindow = 1
	DefaultLat         = 48.196
	DefaultLng         = 16.357
	DefaultSoupSize    = 8
	DefaultDensity     = 0.35
)

var (
	ErrInvalidTickRate    = errors.New("config: tick rate must be a positive finite number")
	ErrInvalidCycleWindow = errors.New("config: cycle window must be at least 1")
	ErrInvalidDensity     = errors.New("config: density must be within [0, 1]")
)

type Config struct {
	Precision      int          `yaml:"precision"`
	TickRateHz     float64      `yaml:"tick_rate_hz"`
	MaxGenerations int          `yaml:"max_generations"`
	CycleWindow    int          `yaml:"cycle_window"`
	Origin         OriginConfig `yaml:"origin"`
	Seed           SeedConfig   `yaml:"seed"`
}

// OriginConfig anchors patterns, random soups and the terminal viewport.
type OriginConfig struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type SeedConfig struct {
	Pattern string       `yaml:"pattern"`
	Cells   []string     `yaml:"cells"`
	Random  RandomConfig `yaml:"random"`
}

type RandomConfig struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Density float64 `yaml:"density"`
	Seed    int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Precision:   DefaultPrecision,
		TickRateHz:  DefaultTickRateHz,
		CycleWindow: DefaultCycleWindow,
		Origin: OriginConfig{
			Lat: DefaultLat,
			Lng: DefaultLng,
		},
		Seed: SeedConfig{
			Random: RandomConfig{
				Width:   DefaultSoupSize,
				Height:  DefaultSoupSize,
				Density: DefaultDensity,
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[config.Load] failed to read file: %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "[config.Load] failed to unmarshal data from file: %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "[config.Load] %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Precision <= 0 || c.Precision > geohash.MaxPrecision {
		return errors.Wrapf(geohash.ErrInvalidPrecision, "precision %d", c.Precision)
	}
	if err := CheckTickRate(c.TickRateHz); err != nil {
		return err
	}
	if c.CycleWindow < 1 {
		return errors.Wrapf(ErrInvalidCycleWindow, "got %d", c.CycleWindow)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("config: max generations must not be negative, got %d", c.MaxGenerations)
	}
	if _, err := c.OriginHash(); err != nil {
		return err
	}
	if d := c.Seed.Random.Density; d < 0 || d > 1 {
		return errors.Wrapf(ErrInvalidDensity, "got %v", d)
	}
	if c.Seed.Pattern != "" && GetPattern(c.Seed.Pattern) == nil {
		return errors.Errorf("config: unknown pattern %q (available: %v)", c.Seed.Pattern, ListPatterns())
	}
	for _, h := range c.Seed.Cells {
		if len(h) != c.Precision {
			return errors.Errorf("config: seed cell %q does not have precision %d", h, c.Precision)
		}
		if !geohash.Valid(h) {
			return errors.Wrapf(geohash.ErrInvalidGeohash, "seed cell %q", h)
		}
	}
	return nil
}

// OriginHash is the cell containing the origin at the configured precision.
func (c *Config) OriginHash() (string, error) {
	return geohash.Encode(c.Origin.Lat, c.Origin.Lng, c.Precision)
}

// CheckTickRate rejects NaN, infinities, non-positive rates and rates whose
// interval does not fit a time.Duration of at least 1ns.
func CheckTickRate(hz float64) error {
	if math.IsNaN(hz) || math.IsInf(hz, 0) || hz <= 0 {
		return errors.Wrapf(ErrInvalidTickRate, "got %v", hz)
	}
	if ns := float64(time.Second) / hz; ns < 1 || ns >= math.MaxInt64 {
		return errors.Wrapf(ErrInvalidTickRate, "%v Hz gives no usable tick interval", hz)
	}
	return nil
}

// TickInterval is the wall-clock time between generations.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRateHz)
}
