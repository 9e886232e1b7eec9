package testpac

import (
	"fmt"

	"github.com/sarchlab/regmock/access"
)

// Names maps every register address of the chip to its name.
var Names = buildNames()

func buildNames() map[access.Addr]string {
	names := map[access.Addr]string{}
	chip := New(nil)

	names[chip.GPIO.In().Addr()] = "GPIO.IN"
	names[chip.GPIO.We().Addr()] = "GPIO.WE"
	names[chip.GPIO.Out().Addr()] = "GPIO.OUT"

	names[chip.SPI.Status().Addr()] = "SPI.STATUS"
	names[chip.SPI.Ctrl().Addr()] = "SPI.CTRL"
	names[chip.SPI.Tx().Addr()] = "SPI.TX"
	names[chip.SPI.Rx().Addr()] = "SPI.RX"

	for i := range NumTimerChannels {
		ch := chip.Timer.Channel(i)
		names[ch.CtrlStat().Addr()] = fmt.Sprintf("TIMER.CH[%d].CTRLSTAT", i)
		names[ch.Count().Addr()] = fmt.Sprintf("TIMER.CH[%d].COUNT", i)
		names[ch.Max().Addr()] = fmt.Sprintf("TIMER.CH[%d].MAX", i)
	}

	return names
}

// Resolver names the registers of the chip.
func Resolver() access.Resolver {
	return access.MapResolver(Names)
}
