package regmock

import (
	"fmt"
	"sync"
)

// A Participant names one goroutine of execution that touches mocked
// registers, such as "test" or "dut".
type Participant string

// Registry binds participants to the State they operate on.
//
// Each participant installs exactly once. Installing without a State gives
// the participant a private one; passing the same State to several
// participants makes them share the mocked hardware.
type Registry struct {
	mu     sync.Mutex
	states map[Participant]*State
}

// NewRegistry creates an empty Registry. Tests that run in parallel should
// each use their own.
func NewRegistry() *Registry {
	return &Registry{states: map[Participant]*State{}}
}

// Install makes state the active State of p and returns it. A nil state is
// replaced by NewState(). Installing twice for the same participant panics
// with ErrAlreadyInstalled.
func (r *Registry) Install(p Participant, state *State) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.states[p]; ok {
		panic(fmt.Errorf("%w: participant %q already uses %s (%s)",
			ErrAlreadyInstalled, p, existing.Name(), existing.ID()))
	}

	if state == nil {
		state = NewState()
	}

	r.states[p] = state

	return state
}

// Active returns the State installed for p. It panics with ErrNotInstalled if
// p has not installed one.
func (r *Registry) Active(p Participant) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.states[p]
	if !ok {
		panic(fmt.Errorf("%w: participant %q", ErrNotInstalled, p))
	}

	return state
}

// Installed reports whether p has installed a State.
func (r *Registry) Installed(p Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.states[p]

	return ok
}

var defaultRegistry = NewRegistry()

// Install installs state for p in the process wide registry.
func Install(p Participant, state *State) *State {
	return defaultRegistry.Install(p, state)
}

// Active returns the State of p in the process wide registry.
func Active(p Participant) *State {
	return defaultRegistry.Active(p)
}
