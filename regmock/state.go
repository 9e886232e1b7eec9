// Package regmock mocks and records the register accesses of driver code.
//
// Driver code under test talks to a Bus. In tests, the Bus is a State, which
// keeps the value of every register, lets tests attach behaviors that model
// peripherals, and logs every access for the matchers package to check.
package regmock

import (
	"fmt"
	"maps"
	"sync"

	"github.com/rs/xid"

	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/hooking"
)

// State is a mocked register file together with the log of its accesses.
//
// All operations on a State are serialized by one lock that is held for the
// duration of a single operation, so a State can be shared between the
// goroutine running the driver and the goroutine running the test.
type State struct {
	mu       sync.Mutex
	poisoned bool

	id       string
	name     string
	resolver access.Resolver

	registers      RegisterMap
	readBehaviors  map[access.Addr]ReadBehavior
	writeBehaviors map[access.Addr]WriteBehavior
	log            access.Log
	hooks          hooking.HookableBase

	capture   bool
	callbacks bool
}

// NewState creates a State with no behaviors, capture and callbacks enabled.
func NewState() *State {
	return Builder{}.Build("RegMock")
}

// Builder configures a State.
type Builder struct {
	resolver          access.Resolver
	registers         RegisterMap
	readBehaviors     map[access.Addr]ReadBehavior
	writeBehaviors    map[access.Addr]WriteBehavior
	hooks             []hooking.Hook
	captureDisabled   bool
	callbacksDisabled bool
}

// WithResolver sets the function that names registers in diagnostics.
func (b Builder) WithResolver(resolver access.Resolver) Builder {
	b.resolver = resolver
	return b
}

// WithRegister presets the value of a register. The preset is not logged.
func (b Builder) WithRegister(addr access.Addr, value uint64) Builder {
	b.registers = maps.Clone(b.registers)
	if b.registers == nil {
		b.registers = RegisterMap{}
	}

	b.registers[addr] = value

	return b
}

// WithReadBehavior attaches a behavior to reads of addr.
func (b Builder) WithReadBehavior(addr access.Addr, behavior ReadBehavior) Builder {
	b.readBehaviors = maps.Clone(b.readBehaviors)
	if b.readBehaviors == nil {
		b.readBehaviors = map[access.Addr]ReadBehavior{}
	}

	b.readBehaviors[addr] = behavior

	return b
}

// WithWriteBehavior attaches a behavior to writes of addr.
func (b Builder) WithWriteBehavior(addr access.Addr, behavior WriteBehavior) Builder {
	b.writeBehaviors = maps.Clone(b.writeBehaviors)
	if b.writeBehaviors == nil {
		b.writeBehaviors = map[access.Addr]WriteBehavior{}
	}

	b.writeBehaviors[addr] = behavior

	return b
}

// WithHook registers a hook that observes every recorded access.
func (b Builder) WithHook(hook hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// WithCapture sets whether accesses are logged initially.
func (b Builder) WithCapture(enabled bool) Builder {
	b.captureDisabled = !enabled
	return b
}

// WithCallbacks sets whether behaviors run initially.
func (b Builder) WithCallbacks(enabled bool) Builder {
	b.callbacksDisabled = !enabled
	return b
}

// Build creates the State.
func (b Builder) Build(name string) *State {
	s := &State{
		id:             xid.New().String(),
		name:           name,
		resolver:       b.resolver,
		registers:      RegisterMap{},
		readBehaviors:  map[access.Addr]ReadBehavior{},
		writeBehaviors: map[access.Addr]WriteBehavior{},
		capture:        !b.captureDisabled,
		callbacks:      !b.callbacksDisabled,
	}

	maps.Copy(s.registers, b.registers)
	maps.Copy(s.readBehaviors, b.readBehaviors)
	maps.Copy(s.writeBehaviors, b.writeBehaviors)

	for _, h := range b.hooks {
		s.hooks.AcceptHook(h)
	}

	return s
}

// ID returns the unique session ID of the State.
func (s *State) ID() string {
	return s.id
}

// Name returns the name given at build time.
func (s *State) Name() string {
	return s.name
}

// Resolver returns the register name resolver, which may be nil. The resolver
// is fixed at build time, so it can be used from hooks.
func (s *State) Resolver() access.Resolver {
	return s.resolver
}

// RegisterName names addr with the resolver, falling back to its hex form.
func (s *State) RegisterName(addr access.Addr) string {
	return s.resolver.Name(addr)
}

// do runs f under the lock. A panic inside f poisons the State, because the
// register store may have been left half updated.
func (s *State) do(f func()) {
	s.mu.Lock()

	if s.poisoned {
		s.mu.Unlock()
		panic(fmt.Errorf("%w: %s (%s)", ErrPoisoned, s.name, s.id))
	}

	completed := false

	defer func() {
		if !completed {
			s.poisoned = true
		}

		s.mu.Unlock()
	}()

	f()

	completed = true
}

// SetReadBehavior attaches a behavior to reads of addr, replacing any
// previous one.
func (s *State) SetReadBehavior(addr access.Addr, behavior ReadBehavior) {
	s.do(func() { s.readBehaviors[addr] = behavior })
}

// RemoveReadBehavior detaches the read behavior of addr.
func (s *State) RemoveReadBehavior(addr access.Addr) {
	s.do(func() { delete(s.readBehaviors, addr) })
}

// SetWriteBehavior attaches a behavior to writes of addr, replacing any
// previous one.
func (s *State) SetWriteBehavior(addr access.Addr, behavior WriteBehavior) {
	s.do(func() { s.writeBehaviors[addr] = behavior })
}

// RemoveWriteBehavior detaches the write behavior of addr.
func (s *State) RemoveWriteBehavior(addr access.Addr) {
	s.do(func() { delete(s.writeBehaviors, addr) })
}

// SetRegister stores value without logging or running behaviors. It is meant
// for preparing register contents in tests.
func (s *State) SetRegister(addr access.Addr, value uint64) {
	s.do(func() { s.registers[addr] = value })
}

// Register returns the stored value of addr, and false if it was never
// touched. It is not logged.
func (s *State) Register(addr access.Addr) (value uint64, ok bool) {
	s.do(func() { value, ok = s.registers[addr] })
	return value, ok
}

// Registers returns a copy of the register store.
func (s *State) Registers() RegisterMap {
	var out RegisterMap

	s.do(func() { out = maps.Clone(s.registers) })

	return out
}

// Log returns a copy of the access log.
func (s *State) Log() access.Log {
	var out access.Log

	s.do(func() { out = s.log.Clone() })

	return out
}

// ClearLog drops every recorded access. Register values are kept.
func (s *State) ClearLog() {
	s.do(func() { s.log.Reset() })
}

// IsBeingPolled reports whether the last recorded access is a read of addr
// repeated more than threshold times.
func (s *State) IsBeingPolled(addr access.Addr, threshold int) bool {
	var polled bool

	s.do(func() { polled = s.log.IsBeingPolled(addr, threshold) })

	return polled
}

// AcceptHook registers a hook that observes every recorded access. Hooks run
// while the State lock is held and must not call back into the State, except
// for ID, Name, Resolver and RegisterName.
//
// Registering the same hook twice panics. That panic leaves the State usable.
func (s *State) AcceptHook(hook hooking.Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		panic(fmt.Errorf("%w: %s (%s)", ErrPoisoned, s.name, s.id))
	}

	s.hooks.AcceptHook(hook)
}

// NumHooks returns the number of registered hooks.
func (s *State) NumHooks() int {
	var n int

	s.do(func() { n = s.hooks.NumHooks() })

	return n
}

// Hooks returns the registered hooks.
func (s *State) Hooks() []hooking.Hook {
	var hooks []hooking.Hook

	s.do(func() { hooks = s.hooks.Hooks() })

	return hooks
}
