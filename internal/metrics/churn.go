package metrics

import "github.com/san-kum/geolife/internal/life"

// Churn is the mean number of births plus deaths per observed generation,
// the starting generation included.
type Churn struct {
	name    string
	changes int
	samples int
}

func NewChurn() *Churn {
	return &Churn{name: "churn"}
}

func (c *Churn) Name() string { return c.name }

func (c *Churn) Observe(gen int, live life.LiveSet, born, died int) {
	c.samples++
	c.changes += born + died
}

func (c *Churn) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.changes) / float64(c.samples)
}

func (c *Churn) Reset() {
	c.changes = 0
	c.samples = 0
}
