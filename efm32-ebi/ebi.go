// Package ebi drives the External Bus Interface of EFM32 microcontrollers.
//
// The EBI maps external parallel devices (SRAM, NOR and NAND flash, TFT
// controllers) into the CPU address space. Build with the efm32g tag for the
// original Gecko peripheral, which shares one set of timing registers between
// all banks; otherwise the per-bank timing peripheral found on Giant Gecko
// Series 1 parts is assumed.
//
// The caller must enable the EBI and GPIO clocks and configure every EBI pin
// as push-pull before calling Init. The peripheral is a singleton and the
// driver does not serialize callers.
package ebi

import (
	"math/bits"
)

// MemoryBase is the CPU address of the start of the EBI memory window.
const MemoryBase = 0x8000_0000

const (
	// bankSize is the distance between bank windows with the default map.
	bankSize = 0x0400_0000
	// altMapBankSize is the distance between bank windows with the alternate map.
	altMapBankSize = 0x1000_0000
)

const (
	badBankMask    = "ebi: invalid bank mask"
	badBank        = "ebi: invalid bank"
	badChipSelects = "ebi: invalid chip select mask"
	badLine        = "ebi: invalid line"
	badMode        = "ebi: invalid mode"
	badTiming      = "ebi: timing out of range"
	badBit         = "ebi: invalid bit"
	badLocation    = "ebi: invalid route location"
	badAddressPins = "ebi: invalid address pin range"
)

// EBI represents the External Bus Interface peripheral.
type EBI struct {
	// hw points to the EBI hardware registers.
	hw *Registers
	nc noCopy
}

// HW returns a pointer to the EBI's hardware registers.
func (e *EBI) HW() *Registers { return e.hw }

// BankMask selects one or more of the four EBI banks.
type BankMask uint8

const (
	Bank0 BankMask = 1 << iota
	Bank1
	Bank2
	Bank3

	AllBanks = Bank0 | Bank1 | Bank2 | Bank3
)

// CSMask selects one or more of the four chip select lines.
type CSMask uint8

const (
	CS0 CSMask = 1 << iota
	CS1
	CS2
	CS3

	AllChipSelects = CS0 | CS1 | CS2 | CS3
)

// Polarity of an EBI line.
type Polarity uint8

const (
	ActiveLow Polarity = iota
	ActiveHigh
)

// Line identifies an EBI signal whose polarity can be configured.
type Line uint8

const (
	LineARDY Line = iota
	LineALE
	LineWE
	LineRE
	LineCS
)

// Mode is the data and address multiplexing scheme of a bank.
type Mode uint8

const (
	// ModeD8A8 uses 8 data bits and 8 address bits, no address latch.
	ModeD8A8 Mode = iota
	// ModeD16A16ALE uses 16 data bits and 16 address bits with address latch.
	ModeD16A16ALE
	// ModeD8A24ALE uses 8 data bits and 24 address bits with address latch.
	ModeD8A24ALE
)

// hasALE reports whether the mode shares pins between data and address and
// therefore needs the address latch enable pin.
func (m Mode) hasALE() bool {
	return m == ModeD16A16ALE || m == ModeD8A24ALE
}

// Routing register bits shared by ROUTE and ROUTEPEN.
const (
	routeEBIPEN_Pos  = 0
	routeCS0PEN_Pos  = 1
	routeALEPEN_Pos  = 5
	routeARDYPEN_Pos = 6

	routeRESETVALUE = 0
)

// Control register bits shared by all revisions.
const (
	ctrlMODE_Msk      = 0x3
	ctrlBANK0EN_Pos   = 8
	ctrlARDYEN_Pos    = 16
	ctrlARDYTODIS_Pos = 17

	ctrlRESETVALUE = 0
)

// Polarity register bits.
const (
	polarityCSPOL_Pos   = 0
	polarityREPOL_Pos   = 1
	polarityWEPOL_Pos   = 2
	polarityALEPOL_Pos  = 3
	polarityARDYPOL_Pos = 4
)

// lineField locates the polarity bit of a line.
type lineField struct {
	// tft is set for lines whose polarity lives in TFTPOLARITY.
	tft bool
	pos uint8
}

func lookupLine(line Line) lineField {
	if int(line) >= len(lineFields) {
		panic(badLine)
	}
	return lineFields[line]
}

// Init configures the banks named in cfg and enables the bus.
//
// Timing and mode are programmed before the banks are enabled, pin routing
// before the controller drives the pins, and chip selects last. A config
// naming no banks is a no-op.
func (e *EBI) Init(cfg Config) {
	checkBanks(cfg.Banks)
	checkChipSelects(cfg.ChipSelects)
	cfg.validate()
	if cfg.Banks == 0 {
		return
	}
	ctrl := e.hw.CTRL.Get()

	e.initPolarity(cfg)
	ctrl = e.composeControl(ctrl, cfg)
	e.initTiming(cfg)

	// Activate the new configuration.
	e.hw.CTRL.Set(ctrl)

	e.EnableAddressLatchPin(cfg.Mode.hasALE())
	e.initRouting(cfg, ctrl)
	e.EnableControllerPins(true)
	e.EnableChipSelect(cfg.ChipSelects, true)
}

// Disable returns the pin routing and control registers to their reset
// values. Timing and polarity registers keep their contents.
func (e *EBI) Disable() {
	e.route().Set(routeRESETVALUE)
	e.hw.CTRL.Set(ctrlRESETVALUE)
}

// EnableBanks sets or clears the enable bit of every bank in banks.
func (e *EBI) EnableBanks(banks BankMask, enable bool) {
	checkBanks(banks)
	for m := banks; m != 0; m &= m - 1 {
		bitWrite(&e.hw.CTRL, ctrlBANK0EN_Pos+lowestBank(m), enable)
	}
}

// BankEnabled reports whether bank is enabled.
func (e *EBI) BankEnabled(bank BankMask) bool {
	return e.hw.CTRL.HasBits(1 << (ctrlBANK0EN_Pos + bankIndex(bank)))
}

// BankAddress returns the CPU address of the start of a bank's window.
func (e *EBI) BankAddress(bank BankMask) uintptr {
	idx := uintptr(bankIndex(bank))
	if e.altMapEnabled() {
		return MemoryBase + idx*altMapBankSize
	}
	return MemoryBase + idx*bankSize
}

// SetPolarity sets the polarity of a line in the global polarity register.
// On per-bank revisions the global register is the one belonging to bank 0.
func (e *EBI) SetPolarity(line Line, polarity Polarity) {
	f := lookupLine(line)
	bitWrite(e.polarityRegister(f, 0), f.pos, polarity != ActiveLow)
}

// EnableChipSelect routes or unroutes the chip select pins in cs.
func (e *EBI) EnableChipSelect(cs CSMask, enable bool) {
	checkChipSelects(cs)
	for m := cs; m != 0; m &= m - 1 {
		bitWrite(e.route(), routeCS0PEN_Pos+uint8(bits.TrailingZeros8(uint8(m))), enable)
	}
}

// EnableAddressLatchPin routes or unroutes the ALE pin.
func (e *EBI) EnableAddressLatchPin(on bool) {
	bitWrite(e.route(), routeALEPEN_Pos, on)
}

// EnableARDYPin routes or unroutes the ARDY input pin.
func (e *EBI) EnableARDYPin(on bool) {
	bitWrite(e.route(), routeARDYPEN_Pos, on)
}

// EnableControllerPins routes the WE and RE strobes, making the controller
// drive the bus.
func (e *EBI) EnableControllerPins(on bool) {
	bitWrite(e.route(), routeEBIPEN_Pos, on)
}

// maskedWrite clears mask in reg and sets value in its place.
// It is not atomic with respect to interrupts.
func maskedWrite(reg *register32, mask, value uint32) {
	reg.Set(reg.Get()&^mask | value&mask)
}

func checkBanks(banks BankMask) {
	if banks&^AllBanks != 0 {
		panic(badBankMask)
	}
}

func checkChipSelects(cs CSMask) {
	if cs&^AllChipSelects != 0 {
		panic(badChipSelects)
	}
}

// bankIndex returns the index of a mask naming exactly one bank.
func bankIndex(bank BankMask) uint8 {
	if bank == 0 || bank&^AllBanks != 0 || bank&(bank-1) != 0 {
		panic(badBank)
	}
	return lowestBank(bank)
}

func lowestBank(m BankMask) uint8 {
	return uint8(bits.TrailingZeros8(uint8(m)))
}

func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// noCopy may be embedded into structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
