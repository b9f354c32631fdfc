package ebi

import (
	"testing"
)

func newTestEBI() *EBI {
	return &EBI{hw: &Registers{}}
}

func expectPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic %q", want)
		}
		if r != want {
			t.Errorf("got panic %v, want %q", r, want)
		}
	}()
	fn()
}

func sramConfig() Config {
	cfg := DefaultConfig()
	cfg.Banks = Bank0
	cfg.ChipSelects = CS0
	cfg.Mode = ModeD16A16ALE
	cfg.ReadTiming = Timing{Setup: 2, Strobe: 4, Hold: 1}
	cfg.WriteTiming = Timing{Setup: 2, Strobe: 4, Hold: 1}
	cfg.AddressTiming = AddressTiming{Setup: 1, Hold: 1}
	return cfg
}

func TestInitSRAMBank0(t *testing.T) {
	e := newTestEBI()
	e.Init(sramConfig())
	hw := e.hw

	ctrl := hw.CTRL.Get()
	if mode := Mode(ctrl & ctrlMODE_Msk); mode != ModeD16A16ALE {
		t.Errorf("CTRL.MODE = %d, want %d", mode, ModeD16A16ALE)
	}
	if !e.BankEnabled(Bank0) {
		t.Error("bank 0 not enabled")
	}
	for _, b := range []BankMask{Bank1, Bank2, Bank3} {
		if e.BankEnabled(b) {
			t.Errorf("bank %#x enabled", b)
		}
	}
	if got, want := DecodeReadTiming(hw.BANK0.RDTIMING.Get()), (Timing{2, 4, 1}); got != want {
		t.Errorf("read timing %+v, want %+v", got, want)
	}
	if got, want := DecodeWriteTiming(hw.BANK0.WRTIMING.Get()), (Timing{2, 4, 1}); got != want {
		t.Errorf("write timing %+v, want %+v", got, want)
	}
	if got, want := DecodeAddressTiming(hw.BANK0.ADDRTIMING.Get()), (AddressTiming{1, 1}); got != want {
		t.Errorf("address timing %+v, want %+v", got, want)
	}

	route := e.route().Get()
	if route&(1<<routeALEPEN_Pos) == 0 {
		t.Error("ALE pin not routed")
	}
	if route&(1<<routeEBIPEN_Pos) == 0 {
		t.Error("WE/RE pins not routed")
	}
	if cs := route >> routeCS0PEN_Pos & 0xf; cs != uint32(CS0) {
		t.Errorf("chip select pins %#x, want %#x", cs, CS0)
	}
	// All lines active low.
	if pol := hw.BANK0.POLARITY.Get(); pol != 0 {
		t.Errorf("POLARITY = %#x, want 0", pol)
	}
}

func TestInitNoBanksIsNoop(t *testing.T) {
	e := newTestEBI()
	e.hw.CTRL.Set(0x1234)
	before := *e.hw
	cfg := sramConfig()
	cfg.Banks = 0
	e.Init(cfg)
	if *e.hw != before {
		t.Errorf("registers changed by empty init:\n got %+v\nwant %+v", *e.hw, before)
	}
}

func TestInitAddressLatchPin(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		ale  bool
	}{
		{ModeD8A8, false},
		{ModeD16A16ALE, true},
		{ModeD8A24ALE, true},
	} {
		e := newTestEBI()
		// Start with the pin routed to verify it gets cleared.
		e.route().Set(1 << routeALEPEN_Pos)
		cfg := sramConfig()
		cfg.Mode = tc.mode
		e.Init(cfg)
		got := e.route().HasBits(1 << routeALEPEN_Pos)
		if got != tc.ale {
			t.Errorf("mode %d: ALE routed = %v, want %v", tc.mode, got, tc.ale)
		}
	}
}

func TestInitChipSelectPins(t *testing.T) {
	for cs := CSMask(0); cs <= AllChipSelects; cs++ {
		e := newTestEBI()
		cfg := sramConfig()
		cfg.ChipSelects = cs
		e.Init(cfg)
		if got := CSMask(e.route().Get() >> routeCS0PEN_Pos & 0xf); got != cs {
			t.Errorf("chip select pins %#x, want %#x", got, cs)
		}
	}
}

func TestInitBadConfigLeavesRegisters(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"timing":  func(c *Config) { c.ReadTiming.Strobe = readStrobeMax + 1 },
		"address": func(c *Config) { c.AddressTiming.Hold = addrHoldMax + 1 },
		"mode":    func(c *Config) { c.Mode = modeMax + 1 },
	} {
		e := newTestEBI()
		cfg := sramConfig()
		mutate(&cfg)
		func() {
			defer func() { recover() }()
			e.Init(cfg)
			t.Errorf("%s: init did not panic", name)
		}()
		if *e.hw != (Registers{}) {
			t.Errorf("%s: registers written before panic", name)
		}
	}
}

func TestInitBadMasks(t *testing.T) {
	e := newTestEBI()
	cfg := sramConfig()
	cfg.Banks = 0x10
	expectPanic(t, badBankMask, func() { e.Init(cfg) })
	cfg = sramConfig()
	cfg.ChipSelects = 0x30
	expectPanic(t, badChipSelects, func() { e.Init(cfg) })
}

func TestDisable(t *testing.T) {
	e := newTestEBI()
	e.Init(sramConfig())
	rdtiming := e.hw.BANK0.RDTIMING.Get()
	e.Disable()
	if got := e.route().Get(); got != routeRESETVALUE {
		t.Errorf("route = %#x, want reset value", got)
	}
	if got := e.hw.CTRL.Get(); got != ctrlRESETVALUE {
		t.Errorf("CTRL = %#x, want reset value", got)
	}
	if got := e.hw.BANK0.RDTIMING.Get(); got != rdtiming {
		t.Errorf("RDTIMING = %#x, want %#x preserved", got, rdtiming)
	}
}

func TestEnableBanks(t *testing.T) {
	for banks := BankMask(0); banks <= AllBanks; banks++ {
		e := newTestEBI()
		e.hw.CTRL.Set(0xffff_ffff)
		e.EnableBanks(banks, false)
		want := uint32(0xffff_ffff) &^ (uint32(banks) << ctrlBANK0EN_Pos)
		if got := e.hw.CTRL.Get(); got != want {
			t.Errorf("disable %#x: CTRL = %#x, want %#x", banks, got, want)
		}
		e.EnableBanks(banks, true)
		if got := e.hw.CTRL.Get(); got != 0xffff_ffff {
			t.Errorf("enable %#x: CTRL = %#x, want all set", banks, got)
		}
	}
	expectPanic(t, badBankMask, func() { newTestEBI().EnableBanks(0x20, true) })
}

func TestBankAddress(t *testing.T) {
	e := newTestEBI()
	base := e.BankAddress(Bank0)
	if base != MemoryBase {
		t.Fatalf("bank 0 at %#x, want %#x", base, MemoryBase)
	}
	for i, b := range []BankMask{Bank0, Bank1, Bank2, Bank3} {
		if got, want := e.BankAddress(b)-base, uintptr(i)*0x0400_0000; got != want {
			t.Errorf("bank %d offset %#x, want %#x", i, got, want)
		}
	}
	if got := e.BankAddress(Bank3); got != 0x8C00_0000 {
		t.Errorf("bank 3 at %#x, want 0x8C000000", got)
	}
	for _, bad := range []BankMask{0, Bank0 | Bank1, 0x10} {
		expectPanic(t, badBank, func() { e.BankAddress(bad) })
	}
}

func TestSetPolarity(t *testing.T) {
	e := newTestEBI()
	e.SetPolarity(LineRE, ActiveHigh)
	e.SetPolarity(LineARDY, ActiveHigh)
	want := uint32(1<<polarityREPOL_Pos | 1<<polarityARDYPOL_Pos)
	if got := e.hw.BANK0.POLARITY.Get(); got != want {
		t.Errorf("POLARITY = %#x, want %#x", got, want)
	}
	e.SetPolarity(LineRE, ActiveLow)
	if got := e.hw.BANK0.POLARITY.Get(); got != 1<<polarityARDYPOL_Pos {
		t.Errorf("POLARITY = %#x after clearing RE", got)
	}
	expectPanic(t, badLine, func() { e.SetPolarity(Line(len(lineFields)), ActiveLow) })
}

func TestPinRouting(t *testing.T) {
	e := newTestEBI()
	e.EnableARDYPin(true)
	e.EnableControllerPins(true)
	e.EnableChipSelect(CS1|CS3, true)
	want := uint32(1<<routeARDYPEN_Pos | 1<<routeEBIPEN_Pos | 1<<(routeCS0PEN_Pos+1) | 1<<(routeCS0PEN_Pos+3))
	if got := e.route().Get(); got != want {
		t.Errorf("route = %#x, want %#x", got, want)
	}
	e.EnableChipSelect(CS3, false)
	e.EnableARDYPin(false)
	want &^= 1<<routeARDYPEN_Pos | 1<<(routeCS0PEN_Pos+3)
	if got := e.route().Get(); got != want {
		t.Errorf("route = %#x, want %#x", got, want)
	}
}

func TestHW(t *testing.T) {
	e := newTestEBI()
	if e.HW() != e.hw {
		t.Fatal("HW does not return the register block")
	}
	e.HW().CTRL.Set(1 << ctrlBANK0EN_Pos)
	if !e.BankEnabled(Bank0) {
		t.Error("write through HW not visible")
	}
}

func TestBitWrite(t *testing.T) {
	var r register32
	r.Set(0x00f0)
	bitWrite(&r, 0, true)
	bitWrite(&r, 31, true)
	bitWrite(&r, 4, false)
	if got := r.Get(); got != 0x8000_00e1 {
		t.Errorf("got %#x, want 0x800000e1", got)
	}
	expectPanic(t, badBit, func() { bitWrite(&r, 32, true) })
}

func TestMaskedWrite(t *testing.T) {
	var r register32
	r.Set(0xaaaa_aaaa)
	maskedWrite(&r, 0x0000_ff00, 0xffff_5555)
	if got := r.Get(); got != 0xaaaa_55aa {
		t.Errorf("got %#x, want 0xaaaa55aa", got)
	}
}
