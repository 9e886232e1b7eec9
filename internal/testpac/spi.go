package testpac

import (
	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/regmock"
)

// SPI is an SPI slave with 8-bit receive and transmit FIFOs.
type SPI struct {
	bus  regmock.Bus
	base access.Addr
}

// Status is the status register.
func (s SPI) Status() Register { return Register{s.bus, s.base + 0x0} }

// Ctrl is the control register.
func (s SPI) Ctrl() Register { return Register{s.bus, s.base + 0x4} }

// Tx is the transmit FIFO.
func (s SPI) Tx() Register { return Register{s.bus, s.base + 0x8} }

// Rx is the receive FIFO.
func (s SPI) Rx() Register { return Register{s.bus, s.base + 0xC} }

// Ctrl bits.
const (
	CtrlEn   uint32 = 1 << 0
	CtrlCpha uint32 = 1 << 1
	CtrlCpol uint32 = 1 << 2
)

// Status bits.
const (
	StatusBusy     uint32 = 1 << 0
	StatusCS       uint32 = 1 << 1
	StatusRxe      uint32 = 1 << 2
	StatusRxnf     uint32 = 1 << 3
	StatusRxovfl   uint32 = 1 << 4
	StatusTxf      uint32 = 1 << 5
	StatusTxne     uint32 = 1 << 6
	StatusClrOvfl  uint32 = 1 << 30
	StatusFlush    uint32 = 1 << 31
	statusRxFill          = 16
	statusTxFill          = 24
	statusFillMask uint32 = 0xF
)

// RxValid is set in Rx when a byte was available at the time of the read.
const RxValid uint32 = 1 << 31

// RxFill returns the number of bytes waiting in the receive FIFO.
func RxFill(status uint32) uint32 {
	return field(status, statusRxFill, statusFillMask)
}

// WithRxFill sets the receive FIFO fill level in a status value.
func WithRxFill(status, n uint32) uint32 {
	return setField(status, statusRxFill, statusFillMask, n)
}

// TxFill returns the number of bytes waiting in the transmit FIFO.
func TxFill(status uint32) uint32 {
	return field(status, statusTxFill, statusFillMask)
}

// Data extracts the data byte of an Rx or Tx value.
func Data(value uint32) uint8 {
	return uint8(value)
}
