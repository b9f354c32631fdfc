package ebilib

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Filler is a display that can fill rectangles, such as FrameBuffer and
// TFTDisplay.
type Filler interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// StatusLine is a single line of text drawn across the full width of a
// display, cleared to a background color on every update.
type StatusLine struct {
	d      Filler
	font   tinyfont.Fonter
	top    int16
	height int16
	fg, bg color.RGBA
}

// NewStatusLine returns a status line whose top row is at y. The line is as
// tall as the font's vertical advance.
func NewStatusLine(d Filler, font tinyfont.Fonter, y int16, fg, bg color.RGBA) *StatusLine {
	return &StatusLine{
		d:      d,
		font:   font,
		top:    y,
		height: int16(font.GetYAdvance()),
		fg:     fg,
		bg:     bg,
	}
}

// Height returns the height of the line in pixels.
func (s *StatusLine) Height() int16 { return s.height }

// Print replaces the line's text with str. Text that does not fit the
// display width is cut at the last rune that fits. The caller presents the
// result with Display.
func (s *StatusLine) Print(str string) error {
	w, _ := s.d.Size()
	if err := s.d.FillRectangle(0, s.top, w, s.height, s.bg); err != nil {
		return err
	}
	if str = s.fit(str, uint32(w)); str != "" {
		// WriteLine positions text by its baseline.
		tinyfont.WriteLine(s.d, s.font, 0, s.top+s.height-1, str, s.fg)
	}
	return nil
}

func (s *StatusLine) fit(str string, width uint32) string {
	runes := []rune(str)
	for len(runes) > 0 {
		if _, outbox := tinyfont.LineWidth(s.font, string(runes)); outbox <= width {
			break
		}
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
