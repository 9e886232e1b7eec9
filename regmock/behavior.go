package regmock

import "github.com/sarchlab/regmock/access"

// RegisterMap holds the value of every mocked register that has been touched.
type RegisterMap map[access.Addr]uint64

// A ReadBehavior decides what a read of one register returns.
//
// OnRead receives the register store, which it may modify, and the stored
// value of the register. The result is the value the DUT observes. It is not
// written back to the store.
//
// Behaviors run while the State lock is held and must not call back into the
// State.
type ReadBehavior interface {
	OnRead(regs RegisterMap, value uint64) uint64
}

// A WriteBehavior decides what a write to one register stores.
//
// OnWrite receives the register store, which it may modify, the value before
// the write and the value the DUT wrote. The result is committed to the
// register.
//
// Behaviors run while the State lock is held and must not call back into the
// State.
type WriteBehavior interface {
	OnWrite(regs RegisterMap, before, value uint64) uint64
}

// ReadFunc adapts a function to ReadBehavior.
type ReadFunc func(regs RegisterMap, value uint64) uint64

// OnRead calls f.
func (f ReadFunc) OnRead(regs RegisterMap, value uint64) uint64 {
	return f(regs, value)
}

// WriteFunc adapts a function to WriteBehavior.
type WriteFunc func(regs RegisterMap, before, value uint64) uint64

// OnWrite calls f.
func (f WriteFunc) OnWrite(regs RegisterMap, before, value uint64) uint64 {
	return f(regs, before, value)
}
