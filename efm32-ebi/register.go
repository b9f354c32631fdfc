//go:build !tinygo

package ebi

// register32 is a plain 32-bit register cell used when building for a host.
// It mirrors the method set of runtime/volatile.Register32 so the driver is
// exercised unchanged against an in-memory register file.
type register32 struct {
	Reg uint32
}

func (r *register32) Get() uint32 { return r.Reg }

func (r *register32) Set(value uint32) { r.Reg = value }

func (r *register32) SetBits(value uint32) { r.Reg |= value }

func (r *register32) ClearBits(value uint32) { r.Reg &^= value }

func (r *register32) HasBits(value uint32) bool { return r.Reg&value > 0 }

func (r *register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Reg = r.Reg&^(mask<<pos) | value<<pos
}

// bitWrite sets or clears a single bit of reg.
func bitWrite(reg *register32, bit uint8, val bool) {
	if bit > 31 {
		panic(badBit)
	}
	if val {
		reg.SetBits(1 << bit)
	} else {
		reg.ClearBits(1 << bit)
	}
}
