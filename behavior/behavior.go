// Package behavior provides ready-made register behaviors for regmock.
//
// Each behavior models one common peripheral idiom, such as a FIFO that
// yields a fixed sequence, a status bit that becomes ready after some polls,
// or a write-one-to-clear flag register. They are plain regmock.ReadBehavior
// and regmock.WriteBehavior values and can be attached with
// State.SetReadBehavior, State.SetWriteBehavior or the Builder.
package behavior

import (
	"sync"

	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/regmock"
)

// Constant makes every read return value, whatever is stored.
func Constant(value uint64) regmock.ReadBehavior {
	return regmock.ReadFunc(func(regmock.RegisterMap, uint64) uint64 {
		return value
	})
}

// SequenceBehavior returns queued values on consecutive reads.
type SequenceBehavior struct {
	mu     sync.Mutex
	values []uint64
	next   int
}

// Sequence creates a SequenceBehavior that returns values in order. Once the
// values are used up, reads return the stored value again.
func Sequence(values ...uint64) *SequenceBehavior {
	return &SequenceBehavior{values: append([]uint64(nil), values...)}
}

// OnRead returns the next queued value.
func (b *SequenceBehavior) OnRead(_ regmock.RegisterMap, value uint64) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.next >= len(b.values) {
		return value
	}

	v := b.values[b.next]
	b.next++

	return v
}

// Push queues more values.
func (b *SequenceBehavior) Push(values ...uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values = append(b.values, values...)
}

// Remaining returns how many queued values have not been read yet.
func (b *SequenceBehavior) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.values) - b.next
}

// ReadyAfterBehavior sets bits of a register once it has been read a number
// of times, like a status flag that a peripheral raises after some delay.
type ReadyAfterBehavior struct {
	mu    sync.Mutex
	reads int
	after int
	mask  uint64
}

// SetAfterReads creates a behavior whose reads return the stored value with
// the bits in mask set, starting with read number n+1. The first n reads
// return the stored value with those bits cleared.
func SetAfterReads(n int, mask uint64) *ReadyAfterBehavior {
	return &ReadyAfterBehavior{after: n, mask: mask}
}

// OnRead counts the read and returns the modeled value.
func (b *ReadyAfterBehavior) OnRead(_ regmock.RegisterMap, value uint64) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reads++
	if b.reads > b.after {
		return value | b.mask
	}

	return value &^ b.mask
}

// Reads returns the number of reads seen so far.
func (b *ReadyAfterBehavior) Reads() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.reads
}

// Reset restarts the countdown.
func (b *ReadyAfterBehavior) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reads = 0
}

// Mirror copies every committed write into the register dst as well, like an
// output latch that is visible through an input register.
func Mirror(dst access.Addr) regmock.WriteBehavior {
	return regmock.WriteFunc(func(regs regmock.RegisterMap, _, value uint64) uint64 {
		regs[dst] = value
		return value
	})
}

// WriteOneToClear models a register in which writing 1 to a bit in mask
// clears that bit and writing 0 leaves it alone. Bits outside mask take the
// written value.
func WriteOneToClear(mask uint64) regmock.WriteBehavior {
	return regmock.WriteFunc(func(_ regmock.RegisterMap, before, value uint64) uint64 {
		return (before & mask &^ value) | (value &^ mask)
	})
}

// Masked lets writes change only the bits in mask. Masked(0) models a
// read-only register.
func Masked(mask uint64) regmock.WriteBehavior {
	return regmock.WriteFunc(func(_ regmock.RegisterMap, before, value uint64) uint64 {
		return (before &^ mask) | (value & mask)
	})
}

// Chain runs write behaviors in order, feeding each one the value committed by
// the previous one.
func Chain(behaviors ...regmock.WriteBehavior) regmock.WriteBehavior {
	return regmock.WriteFunc(func(regs regmock.RegisterMap, before, value uint64) uint64 {
		for _, b := range behaviors {
			value = b.OnWrite(regs, before, value)
		}

		return value
	})
}
