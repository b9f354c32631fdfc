//go:build tinygo && !efm32g

// This example drives a 320x240 RGB panel straight from a double buffered
// frame buffer in external SRAM on bank 2, the way the DK3850 kit wires it.
package main

import (
	"image/color"
	"strconv"
	"time"

	"tinygo.org/x/tinyfont"

	ebi "github.com/tinygo-org/ebi/efm32-ebi"
	"github.com/tinygo-org/ebi/efm32-ebi/ebilib"
)

const (
	width  = 320
	height = 240
)

func main() {
	time.Sleep(2 * time.Second)
	println("Initializing EBI")

	cfg := ebi.DefaultConfig()
	cfg.Mode = ebi.ModeD16
	cfg.Banks = ebi.Bank2
	cfg.ChipSelects = ebi.CS2
	cfg.ReadTiming = ebi.Timing{Setup: 0, Strobe: 3, Hold: 0}
	cfg.WriteTiming = ebi.Timing{Setup: 0, Strobe: 2, Hold: 0}
	cfg.AddressTiming = ebi.AddressTiming{}
	cfg.ReadPageMode = true
	cfg.ReadPrefetch = true
	cfg.LowAddressPins = 0
	cfg.HighAddressPins = 20
	ebi.EBI0.Init(cfg)

	tcfg := ebi.DefaultTFTConfig()
	tcfg.Bank = ebi.Bank2
	tcfg.HSize = width
	tcfg.VSize = height
	tcfg.DClkPolarity = ebi.ActiveHigh
	const frameBytes = width * height * 2
	front := ebilib.MapFrameBuffer(ebi.EBI0, ebi.Bank2, 0, width, height)
	back := ebilib.MapFrameBuffer(ebi.EBI0, ebi.Bank2, frameBytes, width, height)

	println("Starting TFT direct drive")
	display, err := ebilib.NewTFTDisplay(ebi.EBI0.TFT(), tcfg, front, back)
	if err != nil {
		panic(err.Error())
	}

	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	navy := color.RGBA{0, 0, 128, 255}

	status := ebilib.NewStatusLine(display, &tinyfont.TomThumb, height-8, white, black)
	for frame := 0; ; frame++ {
		display.Buffer().FillScreen(navy)
		x := int16(frame % (width - 40))
		display.FillRectangle(x, 100, 40, 40, white)
		status.Print("frame " + strconv.Itoa(frame))
		display.Display()
		time.Sleep(20 * time.Millisecond)
	}
}
