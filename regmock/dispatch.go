package regmock

import (
	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/hooking"
)

// Bus is what a register accessor layer needs to reach hardware. Drivers
// under test are given a State in place of the real bus.
type Bus interface {
	Read(addr access.Addr, length uint) uint64
	Write(addr access.Addr, length uint, value uint64)
}

// CombinedBus is a Bus of an architecture with an atomic read-modify-write
// instruction.
type CombinedBus interface {
	Bus
	LoadModifyStore(addr access.Addr, length uint, value uint64)
}

// Hook positions at which a State invokes its hooks.
var (
	HookPosRead            = &hooking.HookPos{Name: "Read"}
	HookPosWrite           = &hooking.HookPos{Name: "Write"}
	HookPosLoadModifyStore = &hooking.HookPos{Name: "LoadModifyStore"}
)

var _ CombinedBus = (*State)(nil)

// Read returns the value the DUT observes when reading length bytes at addr.
//
// A register that was never touched holds 0. If a read behavior is attached
// and callbacks are enabled, the behavior decides the returned value;
// otherwise the stored value is returned. The returned value is not written
// back. When capture is enabled the read is logged with the stored value as
// before and the returned value as after.
func (s *State) Read(addr access.Addr, length uint) uint64 {
	var apparent uint64

	s.do(func() {
		stored := s.touch(addr)
		apparent = stored

		if behavior, ok := s.readBehaviors[addr]; ok && s.callbacks {
			apparent = behavior.OnRead(s.registers, stored)
		}

		if s.capture {
			s.record(HookPosRead,
				access.New(access.KindRead, addr, length, stored, apparent),
				apparent)
		}
	})

	return apparent
}

// Write stores value, or what the attached write behavior makes of it, into
// the register at addr. The value is stored even if capture is disabled.
func (s *State) Write(addr access.Addr, length uint, value uint64) {
	s.do(func() { s.write(HookPosWrite, addr, length, value) })
}

// LoadModifyStore performs an atomic read-modify-write. It follows the same
// pipeline as Write and is logged as a write.
func (s *State) LoadModifyStore(addr access.Addr, length uint, value uint64) {
	s.do(func() { s.write(HookPosLoadModifyStore, addr, length, value) })
}

func (s *State) write(
	pos *hooking.HookPos,
	addr access.Addr,
	length uint,
	value uint64,
) {
	prior := s.touch(addr)
	committed := value

	if behavior, ok := s.writeBehaviors[addr]; ok && s.callbacks {
		committed = behavior.OnWrite(s.registers, prior, value)
	}

	s.registers[addr] = committed

	if s.capture {
		s.record(pos,
			access.New(access.KindWrite, addr, length, prior, committed),
			value)
	}
}

// touch returns the stored value of addr, creating the register with value 0
// on first use.
func (s *State) touch(addr access.Addr) uint64 {
	value, ok := s.registers[addr]
	if !ok {
		s.registers[addr] = 0
	}

	return value
}

func (s *State) record(
	pos *hooking.HookPos,
	record access.Record,
	requested uint64,
) {
	s.log.Push(record)

	if s.hooks.NumHooks() > 0 {
		s.hooks.InvokeHook(hooking.HookCtx{
			Domain:    s,
			Pos:       pos,
			Record:    record.Clone(),
			Requested: requested,
		})
	}
}
