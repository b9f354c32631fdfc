//go:build tinygo

// This example maps a 16 bit wide asynchronous SRAM with a multiplexed
// address latch on bank 0 and checks its wiring. EBI and GPIO clocks and the
// EBI pins must already be set up by the board startup code.
package main

import (
	"time"

	ebi "github.com/tinygo-org/ebi/efm32-ebi"
	"github.com/tinygo-org/ebi/efm32-ebi/ebilib"
)

const sramSize = 256 * 1024

func main() {
	// Sleep to catch prints.
	time.Sleep(2 * time.Second)

	cfg := ebi.DefaultConfig()
	cfg.Mode = ebi.ModeD16A16ALE
	cfg.Banks = ebi.Bank0
	cfg.ChipSelects = ebi.CS0
	cfg.ReadTiming = ebi.Timing{Setup: 2, Strobe: 4, Hold: 1}
	cfg.WriteTiming = ebi.Timing{Setup: 2, Strobe: 4, Hold: 1}
	cfg.AddressTiming = ebi.AddressTiming{Setup: 1, Hold: 1}
	ebi.EBI0.Init(cfg)
	println("SRAM mapped at", ebi.EBI0.BankAddress(ebi.Bank0))

	mem := ebilib.NewMemory(ebilib.MapBank(ebi.EBI0, ebi.Bank0, 0, sramSize))
	if err := ebilib.Probe(mem, mem.Size()); err != nil {
		panic(err.Error())
	}
	println("bus probe ok")

	msg := []byte("hello from external memory")
	if _, err := mem.WriteAt(msg, 0x100); err != nil {
		panic(err.Error())
	}
	got := make([]byte, len(msg))
	if _, err := mem.ReadAt(got, 0x100); err != nil {
		panic(err.Error())
	}
	println("read back:", string(got))

	for {
		time.Sleep(time.Second)
	}
}
