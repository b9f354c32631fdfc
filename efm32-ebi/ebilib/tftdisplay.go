//go:build !efm32g

package ebilib

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"

	ebi "github.com/tinygo-org/ebi/efm32-ebi"
)

var (
	errBufferCount = errors.New("ebilib:need one or two frame buffers")
	errPixelWidth  = errors.New("ebilib:TFT must use half word pixels")
)

// TFTController is the part of ebi.TFT used by TFTDisplay.
type TFTController interface {
	Init(cfg ebi.TFTConfig)
	SetFrameBase(offset uint32)
}

var _ TFTController = ebi.TFT{}

// TFTDisplay draws on a panel scanned out by the EBI TFT engine. With two
// frame buffers drawing goes to the back buffer and Display flips them.
type TFTDisplay struct {
	tft     TFTController
	buffers [2]*FrameBuffer
	offsets [2]uint32
	// draw is the index of the buffer being drawn on.
	draw   int
	double bool
}

var _ drivers.Displayer = (*TFTDisplay)(nil)

// NewTFTDisplay starts tft with cfg and returns a display drawing on buffers.
// buffers[0] must be the memory at cfg.AddressOffset inside cfg.Bank and
// buffers[1], if given, the frame that directly follows it.
func NewTFTDisplay(tft TFTController, cfg ebi.TFTConfig, buffers ...[]uint16) (*TFTDisplay, error) {
	if len(buffers) == 0 || len(buffers) > 2 {
		return nil, errBufferCount
	}
	if cfg.Width != ebi.TFTWidthHalfWord {
		return nil, errPixelWidth
	}
	d := &TFTDisplay{tft: tft, double: len(buffers) == 2}
	frameBytes := uint32(cfg.HSize) * uint32(cfg.VSize) * 2
	for i, buf := range buffers {
		fb, err := NewFrameBuffer(buf, int16(cfg.HSize), int16(cfg.VSize))
		if err != nil {
			return nil, err
		}
		d.buffers[i] = fb
		d.offsets[i] = cfg.AddressOffset + uint32(i)*frameBytes
	}
	tft.Init(cfg)
	if d.double {
		d.draw = 1
	}
	return d, nil
}

// Buffer returns the frame buffer currently drawn on.
func (d *TFTDisplay) Buffer() *FrameBuffer { return d.buffers[d.draw] }

// Size returns the current size of the display.
func (d *TFTDisplay) Size() (x, y int16) { return d.Buffer().Size() }

// SetPixel sets the pixel at x, y in the drawing buffer.
func (d *TFTDisplay) SetPixel(x, y int16, c color.RGBA) { d.Buffer().SetPixel(x, y, c) }

// FillRectangle fills a rectangle of the drawing buffer.
func (d *TFTDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	return d.Buffer().FillRectangle(x, y, width, height, c)
}

// Display shows the drawing buffer. With a single buffer drawing is always
// visible and Display does nothing.
func (d *TFTDisplay) Display() error {
	if !d.double {
		return nil
	}
	d.tft.SetFrameBase(d.offsets[d.draw])
	d.draw ^= 1
	return nil
}

// SetRotation sets the rotation of all buffers.
func (d *TFTDisplay) SetRotation(rotation drivers.Rotation) error {
	for _, fb := range d.buffers {
		if fb == nil {
			continue
		}
		if err := fb.SetRotation(rotation); err != nil {
			return err
		}
	}
	return nil
}
