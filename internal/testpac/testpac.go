// Package testpac is a small register accessor layer for an imaginary chip
// with a GPIO port, an SPI slave and a two-channel timer. It exists to drive
// regmock from realistic driver code in tests.
//
// Every register is 32 bits wide and reached through a regmock.Bus, so a
// driver can be run against a *regmock.State.
package testpac

import (
	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/regmock"
)

// Peripheral base addresses.
const (
	TimerBase access.Addr = 0x8000
	SPIBase   access.Addr = 0x8200
	GPIOBase  access.Addr = 0x8400
)

const regLen = 4

// Register is one 32-bit register.
type Register struct {
	bus  regmock.Bus
	addr access.Addr
}

// Addr returns the address of the register.
func (r Register) Addr() access.Addr {
	return r.addr
}

// Read reads the register.
func (r Register) Read() uint32 {
	return uint32(r.bus.Read(r.addr, regLen))
}

// Write writes the register.
func (r Register) Write(value uint32) {
	r.bus.Write(r.addr, regLen, uint64(value))
}

// Init writes the reset value as modified by f.
func (r Register) Init(f func(uint32) uint32) {
	r.Write(f(0))
}

// Modify reads the register, passes the value through f and writes the
// result back.
func (r Register) Modify(f func(uint32) uint32) {
	r.Write(f(r.Read()))
}

// StoreAtomic writes value with the load-modify-store instruction when the
// bus has one, and with a plain write otherwise.
func (r Register) StoreAtomic(value uint32) {
	if combined, ok := r.bus.(regmock.CombinedBus); ok {
		combined.LoadModifyStore(r.addr, regLen, uint64(value))
		return
	}

	r.Write(value)
}

// Chip bundles the peripherals on one bus.
type Chip struct {
	GPIO  GPIO
	SPI   SPI
	Timer Timer
}

// New connects the peripherals to bus.
func New(bus regmock.Bus) Chip {
	return Chip{
		GPIO:  GPIO{bus: bus, base: GPIOBase},
		SPI:   SPI{bus: bus, base: SPIBase},
		Timer: Timer{bus: bus, base: TimerBase},
	}
}

func field(value uint32, offset, mask uint32) uint32 {
	return (value >> offset) & mask
}

func setField(value uint32, offset, mask, field uint32) uint32 {
	return value&^(mask<<offset) | (field&mask)<<offset
}
