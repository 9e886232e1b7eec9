// Package luabehavior scripts register behaviors in Lua.
//
// A script defines the global functions on_read(value) and/or
// on_write(before, value), each returning the resulting register value. The
// global table regs gives access to the register store of the State running
// the behavior:
//
//	count = 0
//	function on_read(value)
//	  count = count + 1
//	  if count > 3 then
//	    regs.set(0x8420, 1)
//	    return value + 4
//	  end
//	  return value
//	end
//
// Lua numbers are floating point, so register values above 2^53 lose
// precision. An error raised by the script panics inside the State and
// poisons it.
package luabehavior

import (
	"errors"
	"fmt"
	"math"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/regmock"
)

const (
	readFuncName  = "on_read"
	writeFuncName = "on_write"
)

// ErrMissingFunction is returned when a script lacks the function a
// behavior needs.
var ErrMissingFunction = errors.New("lua function not defined")

// A Script is a loaded Lua program. It keeps its globals between calls, so a
// script can carry peripheral state from one access to the next.
//
// One Script may back behaviors of several registers and States. Calls into
// the interpreter are serialized by the Script.
type Script struct {
	mu   sync.Mutex
	name string
	l    *lua.LState
	regs regmock.RegisterMap
}

// Load compiles and runs source. name appears in error messages.
func Load(name, source string) (*Script, error) {
	s := &Script{
		name: name,
		l:    lua.NewState(),
	}

	s.l.SetGlobal("regs", s.regsTable())

	if err := s.l.DoString(source); err != nil {
		s.l.Close()
		return nil, fmt.Errorf("loading lua behavior %s: %w", name, err)
	}

	return s, nil
}

// MustLoad is Load for scripts embedded in tests. It panics on error.
func MustLoad(name, source string) *Script {
	s, err := Load(name, source)
	if err != nil {
		panic(err)
	}

	return s
}

// Close releases the interpreter. Behaviors of a closed Script must not be
// run.
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.l.Close()
}

// Name returns the name given to Load.
func (s *Script) Name() string {
	return s.name
}

// ReadBehavior returns a behavior that calls on_read.
func (s *Script) ReadBehavior() (regmock.ReadBehavior, error) {
	if err := s.require(readFuncName); err != nil {
		return nil, err
	}

	return regmock.ReadFunc(func(regs regmock.RegisterMap, value uint64) uint64 {
		return s.call(readFuncName, regs, value)
	}), nil
}

// WriteBehavior returns a behavior that calls on_write.
func (s *Script) WriteBehavior() (regmock.WriteBehavior, error) {
	if err := s.require(writeFuncName); err != nil {
		return nil, err
	}

	return regmock.WriteFunc(func(regs regmock.RegisterMap, before, value uint64) uint64 {
		return s.call(writeFuncName, regs, before, value)
	}), nil
}

// Global returns a global number of the script, such as a counter it keeps.
func (s *Script) Global(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.l.GetGlobal(name).(lua.LNumber)

	return float64(n), ok
}

func (s *Script) require(fn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.l.GetGlobal(fn).(*lua.LFunction); !ok {
		return fmt.Errorf("%w: %s in %s", ErrMissingFunction, fn, s.name)
	}

	return nil
}

func (s *Script) call(fn string, regs regmock.RegisterMap, args ...uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.regs = regs
	defer func() { s.regs = nil }()

	params := make([]lua.LValue, len(args))
	for i, a := range args {
		params[i] = lua.LNumber(a)
	}

	err := s.l.CallByParam(lua.P{
		Fn:      s.l.GetGlobal(fn),
		NRet:    1,
		Protect: true,
	}, params...)
	if err != nil {
		panic(fmt.Errorf("lua behavior %s: %w", s.name, err))
	}

	ret := s.l.Get(-1)
	s.l.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		panic(fmt.Errorf("lua behavior %s: %s returned %s, not a number",
			s.name, fn, ret.Type()))
	}

	value, ok := registerValue(n)
	if !ok {
		panic(fmt.Errorf("lua behavior %s: %s returned %v, not a register value",
			s.name, fn, n))
	}

	return value
}

// registerValue converts a Lua number to a register value. Negative,
// fractional and out of range numbers are rejected.
func registerValue(n lua.LNumber) (uint64, bool) {
	f := float64(n)
	if f < 0 || f >= 1<<64 || f != math.Trunc(f) {
		return 0, false
	}

	return uint64(f), true
}

func (s *Script) regsTable() *lua.LTable {
	t := s.l.NewTable()

	s.l.SetField(t, "get", s.l.NewFunction(func(l *lua.LState) int {
		s.checkInCall(l)

		addr := access.Addr(l.CheckNumber(1))
		l.Push(lua.LNumber(s.regs[addr]))

		return 1
	}))

	s.l.SetField(t, "set", s.l.NewFunction(func(l *lua.LState) int {
		s.checkInCall(l)

		addr := access.Addr(l.CheckNumber(1))

		value, ok := registerValue(l.CheckNumber(2))
		if !ok {
			l.ArgError(2, "not a register value")
		}

		s.regs[addr] = value

		return 0
	}))

	return t
}

func (s *Script) checkInCall(l *lua.LState) {
	if s.regs == nil {
		l.RaiseError("regs can only be used inside %s and %s",
			readFuncName, writeFuncName)
	}
}
