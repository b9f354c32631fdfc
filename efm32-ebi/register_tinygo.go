//go:build tinygo

package ebi

import (
	"runtime/volatile"
	"unsafe"
)

type register32 = volatile.Register32

// Cortex-M3/M4 peripheral bit-band region.
const (
	periphBase     = 0x4000_0000
	periphBitBand  = 0x4200_0000
	periphBandSize = 0x0010_0000
)

// bitWrite sets or clears a single bit of reg through its bit-band alias.
// The store is a single bus write so it does not race with interrupt
// handlers modifying other bits of the same register.
func bitWrite(reg *register32, bit uint8, val bool) {
	if bit > 31 {
		panic(badBit)
	}
	addr := uintptr(unsafe.Pointer(reg))
	if addr < periphBase || addr >= periphBase+periphBandSize {
		// Not bit-band addressable; fall back to read-modify-write.
		reg.ReplaceBits(boolToBit(val), 1, bit)
		return
	}
	alias := periphBitBand + (addr-periphBase)*32 + uintptr(bit)*4
	volatile.StoreUint32((*uint32)(unsafe.Pointer(alias)), boolToBit(val))
}
