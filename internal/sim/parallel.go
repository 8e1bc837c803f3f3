package sim

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Soup describes the random starting block of an ensemble run.
type Soup struct {
	Origin  string
	Width   int
	Height  int
	Density float64
}

// Ensemble runs independent random soups side by side, one goroutine per
// run. Every run is an ordinary single threaded controller.
type Ensemble struct {
	cfg       Config
	soup      Soup
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(cfg Config, soup Soup, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, soup: soup, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory for the metrics attached to every run.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.cfg.MaxGenerations <= 0 {
		return nil, errors.New("sim: ensemble runs need a generation limit")
	}
	if e.numRuns <= 0 {
		return nil, errors.Errorf("sim: number of runs must be positive, got %d", e.numRuns)
	}

	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < e.numRuns; i++ {
		seed := e.seedStart + int64(i)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			cells, err := RandomSoup(e.soup.Origin, e.soup.Width, e.soup.Height, e.soup.Density, rng)
			if err != nil {
				return err
			}

			ctrl, err := New(e.cfg)
			if err != nil {
				return err
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					ctrl.AddMetric(m)
				}
			}
			if err := ctrl.Seed(cells); err != nil {
				return errors.Wrapf(err, "seed %d", seed)
			}

			res, err := ctrl.Advance(ctx)
			if err != nil {
				return errors.Wrapf(err, "seed %d", seed)
			}
			res.Seed = seed
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
