package ebi

import (
	"testing"
)

func TestReadTimingRoundTrip(t *testing.T) {
	for setup := 0; setup <= readSetupMax; setup++ {
		for strobe := 0; strobe <= readStrobeMax; strobe++ {
			for hold := 0; hold <= readHoldMax; hold++ {
				want := Timing{Setup: uint8(setup), Strobe: uint8(strobe), Hold: uint8(hold)}
				if got := DecodeReadTiming(EncodeReadTiming(want)); got != want {
					t.Fatalf("read timing %+v decoded as %+v", want, got)
				}
			}
		}
	}
}

func TestWriteTimingRoundTrip(t *testing.T) {
	for setup := 0; setup <= writeSetupMax; setup++ {
		for strobe := 0; strobe <= writeStrobeMax; strobe++ {
			for hold := 0; hold <= writeHoldMax; hold++ {
				want := Timing{Setup: uint8(setup), Strobe: uint8(strobe), Hold: uint8(hold)}
				if got := DecodeWriteTiming(EncodeWriteTiming(want)); got != want {
					t.Fatalf("write timing %+v decoded as %+v", want, got)
				}
			}
		}
	}
}

func TestAddressTimingRoundTrip(t *testing.T) {
	for setup := 0; setup <= addrSetupMax; setup++ {
		for hold := 0; hold <= addrHoldMax; hold++ {
			want := AddressTiming{Setup: uint8(setup), Hold: uint8(hold)}
			if got := DecodeAddressTiming(EncodeAddressTiming(want)); got != want {
				t.Fatalf("address timing %+v decoded as %+v", want, got)
			}
		}
	}
}

func TestTimingOutOfRange(t *testing.T) {
	for _, tm := range []Timing{
		{Setup: readSetupMax + 1},
		{Strobe: readStrobeMax + 1},
		{Hold: readHoldMax + 1},
		{Setup: 0xff, Strobe: 0xff, Hold: 0xff},
	} {
		expectPanic(t, badTiming, func() { EncodeReadTiming(tm) })
	}
	for _, tm := range []Timing{
		{Setup: writeSetupMax + 1},
		{Strobe: writeStrobeMax + 1},
		{Hold: writeHoldMax + 1},
	} {
		expectPanic(t, badTiming, func() { EncodeWriteTiming(tm) })
	}
	for _, tm := range []AddressTiming{
		{Setup: addrSetupMax + 1},
		{Hold: addrHoldMax + 1},
	} {
		expectPanic(t, badTiming, func() { EncodeAddressTiming(tm) })
	}
}

func TestTimingFieldPositions(t *testing.T) {
	if got := EncodeReadTiming(Timing{Setup: 2, Strobe: 4, Hold: 1}); got != 0x0001_0402 {
		t.Errorf("read (2,4,1) = %#x, want 0x10402", got)
	}
	if got := EncodeAddressTiming(AddressTiming{Setup: 1, Hold: 1}); got != 0x0101 {
		t.Errorf("address (1,1) = %#x, want 0x101", got)
	}
	// Zero strobe is legal; the hardware stretches it to one cycle.
	if got := EncodeWriteTiming(Timing{Setup: 1}); got != 1 {
		t.Errorf("write (1,0,0) = %#x, want 1", got)
	}
}

func TestMergeKeepsFlags(t *testing.T) {
	const flags = 0xf000_0000
	got := mergeReadTiming(flags|readTimingMsk, Timing{Setup: 1, Strobe: 2, Hold: 3})
	if got&flags != flags {
		t.Errorf("read merge lost flags: %#x", got)
	}
	if tm := DecodeReadTiming(got); tm != (Timing{1, 2, 3}) {
		t.Errorf("read merge stored %+v", tm)
	}
	got = mergeWriteTiming(flags, Timing{Strobe: 5})
	if got != flags|5<<timingSTRB_Pos {
		t.Errorf("write merge = %#x", got)
	}
	got = mergeAddressTiming(flags|addressTimingMsk, AddressTiming{})
	if got != flags {
		t.Errorf("address merge = %#x, want %#x", got, flags)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Banks != Bank0 || cfg.ChipSelects != CS0 || !cfg.Enable || cfg.Mode != ModeD8A8 {
		t.Errorf("unexpected default config %+v", cfg)
	}
	// Must be accepted as is.
	cfg.validate()
}
