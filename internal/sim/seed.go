package sim

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/san-kum/geolife/internal/config"
	"github.com/san-kum/geolife/internal/geohash"
)

// PlacePattern lays p out with its top left cell on origin. Rows run
// south, columns east.
func PlacePattern(origin string, p *config.Pattern) ([]string, error) {
	if p == nil {
		return nil, errors.New("sim: nil pattern")
	}
	cells := p.Cells()
	out := make([]string, 0, len(cells))
	for _, rc := range cells {
		h, err := geohash.Offset(origin, -rc[0], rc[1])
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// RandomSoup marks each cell of a width x height block south east of
// origin alive with probability density.
func RandomSoup(origin string, width, height int, density float64, rng *rand.Rand) ([]string, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("sim: soup size must be positive, got %dx%d", width, height)
	}
	if !geohash.Valid(origin) {
		return nil, errors.Wrapf(geohash.ErrInvalidGeohash, "origin %q", origin)
	}
	var out []string
	for r := 0; r < height; r++ {
		for col := 0; col < width; col++ {
			if rng.Float64() >= density {
				continue
			}
			h, err := geohash.Offset(origin, -r, col)
			if err != nil {
				return nil, err
			}
			out = append(out, h)
		}
	}
	return out, nil
}

// SeedCells collects the explicit cells and the named pattern of cfg.
func SeedCells(cfg *config.Config) ([]string, error) {
	cells := append([]string(nil), cfg.Seed.Cells...)
	if cfg.Seed.Pattern == "" {
		return cells, nil
	}
	p := config.GetPattern(cfg.Seed.Pattern)
	if p == nil {
		return nil, errors.Errorf("sim: unknown pattern %q", cfg.Seed.Pattern)
	}
	origin, err := cfg.OriginHash()
	if err != nil {
		return nil, err
	}
	placed, err := PlacePattern(origin, p)
	if err != nil {
		return nil, err
	}
	return append(cells, placed...), nil
}

// FromConfig maps the file configuration onto a controller configuration.
func FromConfig(cfg *config.Config) Config {
	return Config{
		Precision:      cfg.Precision,
		TickRate:       cfg.TickRateHz,
		MaxGenerations: cfg.MaxGenerations,
		CycleWindow:    cfg.CycleWindow,
	}
}
