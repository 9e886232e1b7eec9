package testpac

import (
	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/regmock"
)

// GPIO is a 32-pin general purpose I/O port.
type GPIO struct {
	bus  regmock.Bus
	base access.Addr
}

// In holds the input level of each pin. It is read-only.
func (g GPIO) In() Register { return Register{g.bus, g.base + 0x20} }

// We enables the output driver of each pin.
func (g GPIO) We() Register { return Register{g.bus, g.base + 0x24} }

// Out holds the output level of each pin.
func (g GPIO) Out() Register { return Register{g.bus, g.base + 0x2C} }

// Pin returns the mask of pin n.
func Pin(n uint) uint32 {
	return 1 << n
}
