// Package watch triggers the pipeline from filesystem changes in the results
// folder, gated by a change debounce and a run cooldown.
package watch

import (
	"sync"
	"time"
)

// State of the gate.
type State int

const (
	StateIdle State = iota
	StateChangeObserved
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateChangeObserved:
		return "change_observed"
	case StateRunning:
		return "running"
	default:
		return "idle"
	}
}

// Decision is the outcome of observing one event.
type Decision string

const (
	// DecisionRun means the caller must run the pipeline and then call Done.
	DecisionRun Decision = "run"
	// DecisionDebounced drops an event inside the change delay.
	DecisionDebounced Decision = "debounced"
	// DecisionCooldown drops a counted change inside the cooldown period.
	DecisionCooldown Decision = "cooldown"
	// DecisionBusy drops an event observed while a run is in progress.
	DecisionBusy Decision = "busy"
)

// Gate coalesces change events. An event counts only when the change delay
// has elapsed since the last counted change, and a counted change runs the
// pipeline only when the cooldown has elapsed since the last run started.
// Dropped events leave no trace beyond the counted-change timestamp.
type Gate struct {
	mu          sync.Mutex
	changeDelay time.Duration
	cooldown    time.Duration
	lastChange  time.Time
	lastRun     time.Time
	state       State
}

// NewGate creates an idle gate that has never seen a change or a run.
func NewGate(changeDelay, cooldown time.Duration) *Gate {
	return &Gate{changeDelay: changeDelay, cooldown: cooldown}
}

// Observe feeds one file event seen at now.
func (g *Gate) Observe(now time.Time) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateRunning {
		return DecisionBusy
	}
	if !g.lastChange.IsZero() && now.Sub(g.lastChange) < g.changeDelay {
		return DecisionDebounced
	}
	g.lastChange = now
	g.state = StateChangeObserved

	if !g.lastRun.IsZero() && now.Sub(g.lastRun) < g.cooldown {
		g.state = StateIdle
		return DecisionCooldown
	}
	g.lastRun = now
	g.state = StateRunning
	return DecisionRun
}

// Done returns the gate to idle after a run, whatever its outcome. The
// cooldown counts from the start of the run.
func (g *Gate) Done() {
	g.mu.Lock()
	g.state = StateIdle
	g.mu.Unlock()
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SetTimings replaces the change delay and cooldown. Timestamps are kept.
func (g *Gate) SetTimings(changeDelay, cooldown time.Duration) {
	g.mu.Lock()
	g.changeDelay = changeDelay
	g.cooldown = cooldown
	g.mu.Unlock()
}

// Timings returns the change delay and cooldown in use.
func (g *Gate) Timings() (changeDelay, cooldown time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.changeDelay, g.cooldown
}

//Personal.AI order the ending
