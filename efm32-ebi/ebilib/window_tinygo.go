//go:build tinygo

package ebilib

import (
	"unsafe"

	ebi "github.com/tinygo-org/ebi/efm32-ebi"
)

// MapBank returns the size bytes starting offset bytes into bank's window.
// The bank must be configured and enabled before the slice is accessed.
func MapBank(e *ebi.EBI, bank ebi.BankMask, offset, size uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(e.BankAddress(bank)+offset)), size)
}

// MapFrameBuffer returns a width by height RGB565 buffer starting offset bytes
// into bank's window.
func MapFrameBuffer(e *ebi.EBI, bank ebi.BankMask, offset uintptr, width, height int16) []uint16 {
	return unsafe.Slice((*uint16)(unsafe.Pointer(e.BankAddress(bank)+offset)), int(width)*int(height))
}
