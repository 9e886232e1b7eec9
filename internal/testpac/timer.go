package testpac

import (
	"github.com/sarchlab/regmock/access"
	"github.com/sarchlab/regmock/regmock"
)

// NumTimerChannels is the number of channels of the timer.
const NumTimerChannels = 2

const timerChannelStride = 0xC

// Timer is a down counter with NumTimerChannels independent channels.
type Timer struct {
	bus  regmock.Bus
	base access.Addr
}

// Channel returns channel i. It panics if i is out of range.
func (t Timer) Channel(i int) TimerChannel {
	if i < 0 || i >= NumTimerChannels {
		panic("timer channel out of range")
	}

	return TimerChannel{
		bus:  t.bus,
		base: t.base + access.Addr(i*timerChannelStride),
	}
}

// TimerChannel is one channel of the Timer.
type TimerChannel struct {
	bus  regmock.Bus
	base access.Addr
}

// CtrlStat is the control and status register.
func (c TimerChannel) CtrlStat() Register { return Register{c.bus, c.base + 0x0} }

// Count holds the current counter value.
func (c TimerChannel) Count() Register { return Register{c.bus, c.base + 0x4} }

// Max is copied into Count when the counter is reset.
func (c TimerChannel) Max() Register { return Register{c.bus, c.base + 0x8} }

// CtrlStat fields.
const (
	TimerEn   uint32 = 1 << 0
	TimerUrie uint32 = 1 << 7

	timerSyncOffset   = 1
	timerExtclkOffset = 4
	timerSelMask      = 0x7
)

// WithSync sets the synchronizer stage count in a CtrlStat value.
func WithSync(ctrlstat, stages uint32) uint32 {
	return setField(ctrlstat, timerSyncOffset, timerSelMask, stages)
}

// WithExtclk selects the external clock source in a CtrlStat value.
func WithExtclk(ctrlstat, source uint32) uint32 {
	return setField(ctrlstat, timerExtclkOffset, timerSelMask, source)
}

// Extclk returns the selected external clock source.
func Extclk(ctrlstat uint32) uint32 {
	return field(ctrlstat, timerExtclkOffset, timerSelMask)
}
