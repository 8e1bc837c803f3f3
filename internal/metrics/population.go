package metrics

import "github.com/san-kum/geolife/internal/life"

// Population reports the number of live cells in the latest generation.
type Population struct {
	name  string
	count int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(gen int, live life.LiveSet, born, died int) {
	p.count = live.Len()
}

func (p *Population) Value() float64 { return float64(p.count) }

func (p *Population) Reset() { p.count = 0 }

// Peak reports the largest population seen.
type Peak struct {
	name string
	peak int
}

func NewPeak() *Peak {
	return &Peak{name: "peak_population"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(gen int, live life.LiveSet, born, died int) {
	if n := live.Len(); n > p.peak {
		p.peak = n
	}
}

func (p *Peak) Value() float64 { return float64(p.peak) }

func (p *Peak) Reset() { p.peak = 0 }
