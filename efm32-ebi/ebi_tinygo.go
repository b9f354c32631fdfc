//go:build tinygo

package ebi

import "unsafe"

// EBI0 is the External Bus Interface peripheral.
var EBI0 = &EBI{
	hw: (*Registers)(unsafe.Pointer(uintptr(baseAddress))),
}
