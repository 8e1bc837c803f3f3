package sim

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/san-kum/geolife/internal/config"
	"github.com/san-kum/geolife/internal/geohash"
	"github.com/san-kum/geolife/internal/life"
)

type Config struct {
	Precision int
	// TickRate is the number of generations per second in Run.
	TickRate       float64
	MaxGenerations int
	// CycleWindow is how many past generations a new one is compared
	// against. 1 detects still lifes only.
	CycleWindow int
}

func (c Config) interval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// Controller owns the live set of one simulation and drives it through
// Idle, Editing, Running and Converged. It is not safe for concurrent use.
type Controller struct {
	cfg        Config
	live       life.LiveSet
	generation int
	state      State
	period     int
	history    *history
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
}

func New(cfg Config) (*Controller, error) {
	if cfg.Precision <= 0 || cfg.Precision > geohash.MaxPrecision {
		return nil, errors.Wrapf(geohash.ErrInvalidPrecision, "precision %d", cfg.Precision)
	}
	if err := config.CheckTickRate(cfg.TickRate); err != nil {
		return nil, err
	}
	if cfg.MaxGenerations < 0 {
		return nil, errors.Errorf("max generations must not be negative, got %d", cfg.MaxGenerations)
	}
	if cfg.CycleWindow <= 0 {
		cfg.CycleWindow = 1
	}
	return &Controller{
		cfg:     cfg,
		live:    life.NewLiveSet(),
		state:   Idle,
		history: newHistory(cfg.CycleWindow),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

func (c *Controller) SetLogger(l *slog.Logger) { c.logger = l }
func (c *Controller) AddMetric(m Metric)       { c.metrics = append(c.metrics, m) }
func (c *Controller) AddObserver(o Observer)   { c.observers = append(c.observers, o) }

func (c *Controller) State() State    { return c.state }
func (c *Controller) Generation() int { return c.generation }
func (c *Controller) Precision() int  { return c.cfg.Precision }
func (c *Controller) Config() Config  { return c.cfg }
func (c *Controller) Population() int { return c.live.Len() }

// Alive reports whether hash is in the live set.
func (c *Controller) Alive(hash string) bool { return c.live.Contains(hash) }

// Period is the cycle length found on convergence, 1 for a still life.
func (c *Controller) Period() int { return c.period }

// Live returns a copy of the current live set.
func (c *Controller) Live() life.LiveSet { return c.live.Clone() }

func (c *Controller) fire(ev Event) error {
	next, ok := transitions[c.state][ev]
	if !ok {
		return errors.Wrapf(ErrTransition, "%s in state %s", ev, c.state)
	}
	if next != c.state {
		c.logger.Debug("state change", "from", c.state, "to", next, "event", ev, "generation", c.generation)
	}
	c.state = next
	return nil
}

func (c *Controller) checkCell(hash string) error {
	p, err := geohash.Precision(hash)
	if err != nil {
		return err
	}
	if p != c.cfg.Precision {
		return errors.Wrapf(ErrPrecisionMismatch, "%q has precision %d, run uses %d", hash, p, c.cfg.Precision)
	}
	return nil
}

// Toggle adds hash to the live set if absent and removes it otherwise.
// It reports whether the cell is alive afterwards.
func (c *Controller) Toggle(hash string) (bool, error) {
	if !c.state.Editable() {
		return false, errors.Wrapf(ErrTransition, "toggle in state %s", c.state)
	}
	if err := c.checkCell(hash); err != nil {
		return false, err
	}
	alive := c.live.Toggle(hash)
	return alive, c.fire(EventToggle)
}

// ToggleAt toggles the cell containing (lat, lng) at the run precision.
func (c *Controller) ToggleAt(lat, lng float64) (string, bool, error) {
	if !c.state.Editable() {
		return "", false, errors.Wrapf(ErrTransition, "toggle in state %s", c.state)
	}
	hash, err := geohash.Encode(lat, lng, c.cfg.Precision)
	if err != nil {
		return "", false, err
	}
	alive, err := c.Toggle(hash)
	return hash, alive, err
}

// Seed marks every hash alive. Nothing is added unless all are valid.
func (c *Controller) Seed(hashes []string) error {
	if !c.state.Editable() {
		return errors.Wrapf(ErrTransition, "seed in state %s", c.state)
	}
	for _, h := range hashes {
		if err := c.checkCell(h); err != nil {
			return err
		}
	}
	for _, h := range hashes {
		c.live.Add(h)
	}
	return c.fire(EventToggle)
}

func (c *Controller) Start() error {
	if err := c.fire(EventStart); err != nil {
		return err
	}
	c.period = 0
	c.history.reset()
	c.history.push(c.live.Clone())
	for _, m := range c.metrics {
		m.Reset()
		m.Observe(c.generation, c.live, 0, 0)
	}
	return nil
}

// Stop pauses a running simulation. Cells are kept, the generation
// counter starts over.
func (c *Controller) Stop() error {
	if err := c.fire(EventStop); err != nil {
		return err
	}
	c.generation = 0
	return nil
}

// Reset clears every cell and the generation counter from any state.
func (c *Controller) Reset() error {
	if err := c.fire(EventReset); err != nil {
		return err
	}
	c.live = life.NewLiveSet()
	c.generation = 0
	c.period = 0
	c.history.reset()
	for _, m := range c.metrics {
		m.Reset()
	}
	return nil
}

// Tick advances one generation. When the next generation repeats one
// inside the cycle window the controller converges instead and the live
// set and generation counter stay as they are.
func (c *Controller) Tick() (Record, error) {
	if c.state != Running {
		return Record{}, errors.Wrapf(ErrTransition, "tick in state %s", c.state)
	}

	next := life.Step(c.live)
	if period := c.history.match(next); period > 0 {
		c.period = period
		if err := c.fire(EventConverge); err != nil {
			return Record{}, err
		}
		c.logger.Info("converged", "generation", c.generation, "period", period, "population", c.live.Len())
		return Record{
			Generation: c.generation,
			Population: c.live.Len(),
			Converged:  true,
			Period:     period,
		}, nil
	}

	born, died := life.Diff(c.live, next)
	c.live = next
	c.generation++
	c.history.push(next)

	r := Record{
		Generation: c.generation,
		Population: next.Len(),
		Born:       born,
		Died:       died,
	}
	for _, m := range c.metrics {
		m.Observe(c.generation, next, born, died)
	}
	for _, o := range c.observers {
		o.OnGeneration(r, next)
	}
	return r, nil
}

// Run ticks at the configured rate until the simulation converges, reaches
// MaxGenerations or ctx is done. A controller in Editing is started first.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	ticker := time.NewTicker(c.cfg.interval())
	defer ticker.Stop()
	return c.loop(ctx, ticker.C)
}

// Advance is Run without waiting between generations. Without
// MaxGenerations it only returns on convergence or cancellation.
func (c *Controller) Advance(ctx context.Context) (*Result, error) {
	return c.loop(ctx, nil)
}

func (c *Controller) loop(ctx context.Context, tick <-chan time.Time) (*Result, error) {
	if c.state != Running {
		if err := c.Start(); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Initial: c.live.Sorted(),
		History: []Record{{Generation: c.generation, Population: c.live.Len()}},
		Metrics: make(map[string]float64),
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return c.halt(res, OutcomeCanceled), ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return c.halt(res, OutcomeCanceled), ctx.Err()
			default:
			}
		}

		r, err := c.Tick()
		if err != nil {
			return res, err
		}
		if r.Converged {
			c.finish(res, OutcomeConverged)
			return res, nil
		}
		res.History = append(res.History, r)

		if c.cfg.MaxGenerations > 0 && c.generation >= c.cfg.MaxGenerations {
			return c.halt(res, OutcomeLimit), nil
		}
	}
}

func (c *Controller) finish(res *Result, outcome Outcome) {
	res.Outcome = outcome
	res.Generations = c.generation
	res.Period = c.period
	res.Final = c.live.Sorted()
	for _, m := range c.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

// halt records the result and pauses the controller.
func (c *Controller) halt(res *Result, outcome Outcome) *Result {
	c.finish(res, outcome)
	if err := c.Stop(); err != nil {
		c.logger.Warn("stop failed", "err", err)
	}
	c.logger.Info("halted", "outcome", outcome, "generations", res.Generations)
	return res
}
