// Package ebilib provides device level helpers on top of the EBI driver:
// byte access to external memory, RGB565 frame buffers and text rendering
// for TFT panels driven by the EBI.
package ebilib

import (
	"errors"
)

var (
	errOutOfRange  = errors.New("ebilib:offset out of range")
	errBufferSize  = errors.New("ebilib:buffer too small")
	errBadRotation = errors.New("ebilib:invalid rotation")
	errOutOfBounds = errors.New("ebilib:rectangle out of bounds")

	// ErrDataBus is returned by Probe when a data line is stuck or shorted.
	ErrDataBus = errors.New("ebilib:data bus fault")
	// ErrAddressBus is returned by Probe when an address line is stuck or shorted.
	ErrAddressBus = errors.New("ebilib:address bus fault")
)
