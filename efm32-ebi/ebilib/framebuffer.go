package ebilib

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// FrameBuffer is an RGB565 pixel buffer laid out row by row, as scanned out
// by the EBI TFT engine in half word mode. It implements drivers.Displayer so
// it can be drawn on by tinyfont and tinydraw.
type FrameBuffer struct {
	buf      []uint16
	width    int16
	height   int16
	rotation drivers.Rotation
}

var _ drivers.Displayer = (*FrameBuffer)(nil)

// NewFrameBuffer returns a width by height frame buffer backed by buf, usually
// obtained with MapFrameBuffer.
func NewFrameBuffer(buf []uint16, width, height int16) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 || len(buf) < int(width)*int(height) {
		return nil, errBufferSize
	}
	return &FrameBuffer{buf: buf[:int(width)*int(height)], width: width, height: height}, nil
}

// RGBATo565 converts c to the RGB565 pixel format.
func RGBATo565(c color.RGBA) uint16 {
	return uint16(c.R&0xf8)<<8 | uint16(c.G&0xfc)<<3 | uint16(c.B)>>3
}

// Size returns the current size of the display, taking rotation into account.
func (fb *FrameBuffer) Size() (x, y int16) {
	if fb.rotation == drivers.Rotation90 || fb.rotation == drivers.Rotation270 {
		return fb.height, fb.width
	}
	return fb.width, fb.height
}

// SetPixel sets the pixel at x, y. Pixels outside the display are ignored.
func (fb *FrameBuffer) SetPixel(x, y int16, c color.RGBA) {
	i, ok := fb.index(x, y)
	if ok {
		fb.buf[i] = RGBATo565(c)
	}
}

// RawPixel returns the RGB565 value at x, y, or 0 outside the display.
func (fb *FrameBuffer) RawPixel(x, y int16) uint16 {
	i, ok := fb.index(x, y)
	if !ok {
		return 0
	}
	return fb.buf[i]
}

// Display is a no-op: the TFT engine scans the buffer out continuously.
func (fb *FrameBuffer) Display() error { return nil }

// FillRectangle fills a width by height rectangle at x, y with c.
func (fb *FrameBuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	w, h := fb.Size()
	// Compare in int so x+width cannot wrap.
	if x < 0 || y < 0 || width <= 0 || height <= 0 ||
		int(x)+int(width) > int(w) || int(y)+int(height) > int(h) {
		return errOutOfBounds
	}
	px := RGBATo565(c)
	if fb.rotation == drivers.Rotation0 {
		for row := y; row < y+height; row++ {
			line := fb.buf[int(row)*int(fb.width)+int(x):][:width]
			for i := range line {
				line[i] = px
			}
		}
		return nil
	}
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			i, _ := fb.index(col, row)
			fb.buf[i] = px
		}
	}
	return nil
}

// FillScreen fills the whole display with c.
func (fb *FrameBuffer) FillScreen(c color.RGBA) {
	px := RGBATo565(c)
	for i := range fb.buf {
		fb.buf[i] = px
	}
}

// Rotation returns the current rotation.
func (fb *FrameBuffer) Rotation() drivers.Rotation { return fb.rotation }

// SetRotation changes the mapping from display to buffer coordinates. The
// buffer content is not moved.
func (fb *FrameBuffer) SetRotation(rotation drivers.Rotation) error {
	if rotation > drivers.Rotation270 {
		return errBadRotation
	}
	fb.rotation = rotation
	return nil
}

// index maps display coordinates to a buffer index.
func (fb *FrameBuffer) index(x, y int16) (int, bool) {
	w, h := fb.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, false
	}
	switch fb.rotation {
	case drivers.Rotation90:
		x, y = fb.width-1-y, x
	case drivers.Rotation180:
		x, y = fb.width-1-x, fb.height-1-y
	case drivers.Rotation270:
		x, y = y, fb.height-1-x
	}
	return int(y)*int(fb.width) + int(x), true
}
