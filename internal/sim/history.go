package sim

import "github.com/san-kum/geolife/internal/life"

// history keeps the most recent generations for repeat detection.
type history struct {
	window int
	sets   []life.LiveSet
}

func newHistory(window int) *history {
	return &history{window: window, sets: make([]life.LiveSet, 0, window)}
}

func (h *history) push(s life.LiveSet) {
	h.sets = append(h.sets, s)
	if len(h.sets) > h.window {
		h.sets = h.sets[1:]
	}
}

// match returns how many generations back s last occurred, or 0.
func (h *history) match(s life.LiveSet) int {
	for i := len(h.sets) - 1; i >= 0; i-- {
		if h.sets[i].Equal(s) {
			return len(h.sets) - i
		}
	}
	return 0
}

func (h *history) reset() {
	h.sets = h.sets[:0]
}
