package sim

import (
	"github.com/pkg/errors"

	"github.com/san-kum/geolife/internal/life"
)

var (
	// ErrTransition indicates an operation the current state does not accept.
	ErrTransition = errors.New("sim: operation not allowed in current state")

	// ErrPrecisionMismatch indicates a cell whose precision differs from the run's.
	ErrPrecisionMismatch = errors.New("sim: cell precision does not match run precision")
)

// State is the controller's position in its lifecycle.
type State int

const (
	Idle State = iota
	Editing
	Running
	Converged
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Running:
		return "running"
	case Converged:
		return "converged"
	}
	return "unknown"
}

// Editable reports whether cells may be toggled in this state.
func (s State) Editable() bool { return s == Idle || s == Editing }

type Event int

const (
	EventToggle Event = iota
	EventStart
	EventStop
	EventConverge
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventToggle:
		return "toggle"
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventConverge:
		return "converge"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// transitions is the complete state machine; a missing entry is rejected.
var transitions = map[State]map[Event]State{
	Idle: {
		EventToggle: Editing,
		EventReset:  Editing,
	},
	Editing: {
		EventToggle: Editing,
		EventStart:  Running,
		EventReset:  Editing,
	},
	Running: {
		EventStop:     Editing,
		EventConverge: Converged,
		EventReset:    Editing,
	},
	Converged: {
		EventReset: Editing,
	},
}

// Record summarises one generation.
type Record struct {
	Generation int
	Population int
	Born       int
	Died       int
	Converged  bool
	Period     int
}

type Metric interface {
	Name() string
	Observe(gen int, live life.LiveSet, born, died int)
	Value() float64
	Reset()
}

type Observer interface {
	OnGeneration(r Record, live life.LiveSet)
}

// Outcome says why a run loop returned.
type Outcome string

const (
	OutcomeConverged Outcome = "converged"
	OutcomeLimit     Outcome = "max_generations"
	OutcomeCanceled  Outcome = "canceled"
)

type Result struct {
	Outcome     Outcome
	Generations int
	Period      int
	Seed        int64
	Initial     []string
	Final       []string
	History     []Record
	Metrics     map[string]float64
}
