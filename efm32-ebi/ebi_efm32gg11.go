//go:build !efm32g

package ebi

import "math/bits"

// Registers is the per-bank timing EBI block with a split pin enable
// register, NAND and TFT support.
type Registers struct {
	CTRL           register32       // 0x000
	BANK0          BankRegisters    // 0x004..0x010
	_              register32       // 0x014
	BANKN          [3]BankRegisters // 0x018..0x044
	PAGECTRL       register32       // 0x048
	NANDCTRL       register32       // 0x04C
	CMD            register32       // 0x050
	STATUS         register32       // 0x054
	ECCPARITY      register32       // 0x058
	TFTCTRL        register32       // 0x05C
	TFTSTATUS      register32       // 0x060
	TFTCOLORFORMAT register32       // 0x064
	TFTFRAMEBASE   register32       // 0x068
	TFTSTRIDE      register32       // 0x06C
	TFTSIZE        register32       // 0x070
	TFTHPORCH      register32       // 0x074
	TFTVPORCH      register32       // 0x078
	TFTTIMING      register32       // 0x07C
	TFTPOLARITY    register32       // 0x080
	TFTDD          register32       // 0x084
	TFTALPHA       register32       // 0x088
	TFTPIXEL0      register32       // 0x08C
	TFTPIXEL1      register32       // 0x090
	TFTPIXEL       register32       // 0x094
	TFTMASK        register32       // 0x098
	IF             register32       // 0x09C
	IFS            register32       // 0x0A0
	IFC            register32       // 0x0A4
	IEN            register32       // 0x0A8
	ROUTEPEN       register32       // 0x0AC
	ROUTELOC0      register32       // 0x0B0
	ROUTELOC1      register32       // 0x0B4
}

// BankRegisters is the timing and polarity register group of one bank.
// Bank 0's group sits at 0x004, banks 1..3 follow at 0x018 in 16 byte strides.
type BankRegisters struct {
	ADDRTIMING register32
	RDTIMING   register32
	WRTIMING   register32
	POLARITY   register32
}

func (hw *Registers) bank(index uint8) *BankRegisters {
	switch {
	case index == 0:
		return &hw.BANK0
	case index <= 3:
		return &hw.BANKN[index-1]
	}
	panic(badBank)
}

// baseAddress is the address of the EBI register block on Giant Gecko
// Series 1 parts.
const baseAddress = 0x4000_B000

// ModeD16 uses 16 data bits and no address bits.
const ModeD16 Mode = 3

// Lines only present on the per-bank revision.
const (
	LineBL Line = iota + LineCS + 1
	LineTFTVSync
	LineTFTHSync
	LineTFTDataEn
	LineTFTDClk
	LineTFTCS
)

const (
	modeMax = ModeD16

	readSetupMax   = 0xf
	readStrobeMax  = 0x3f
	readHoldMax    = 0x7
	writeSetupMax  = 0xf
	writeStrobeMax = 0x3f
	writeHoldMax   = 0x7
	addrSetupMax   = 0x7
	addrHoldMax    = 0x7
)

// CTRL. Per-bank fields are at the bank 0 position plus the bank index
// (times two for MODE and the ARDY pair).
const (
	ctrlNOIDLE_Pos = 12
	ctrlBL_Pos     = 24
	ctrlITS_Pos    = 30
	ctrlALTMAP_Pos = 31

	ctrlBLALL_Msk = 0xf << ctrlBL_Pos
)

// RDTIMING, WRTIMING and ADDRTIMING flags.
const (
	rdtimingHALFRE_Pos   = 28
	rdtimingPREFETCH_Pos = 29
	rdtimingPAGEMODE_Pos = 30

	wrtimingHALFWE_Pos  = 28
	wrtimingWBUFDIS_Pos = 29

	addrtimingHALFALE_Pos = 28
)

const polarityBLPOL_Pos = 5

const (
	tftpolarityCSPOL_Pos     = 0
	tftpolarityDCLKPOL_Pos   = 1
	tftpolarityDATAENPOL_Pos = 2
	tftpolarityHSYNCPOL_Pos  = 3
	tftpolarityVSYNCPOL_Pos  = 4
)

// ROUTEPEN.
const (
	routeBLPEN_Pos   = 7
	routeNANDPEN_Pos = 12
	routeALB_Pos     = 16
	routeALB_Msk     = 0x3 << routeALB_Pos
	routeAPEN_Pos    = 18
	routeAPEN_Msk    = 0x1f << routeAPEN_Pos
	routeTFTPEN_Pos  = 24
)

const (
	nandctrlEN_Pos      = 0
	nandctrlBANKSEL_Pos = 4
	nandctrlBANKSEL_Msk = 0x3 << nandctrlBANKSEL_Pos
)

const (
	cmdECCSTART = 1 << 0
	cmdECCSTOP  = 1 << 1
	cmdECCCLEAR = 1 << 2
)

const (
	statusAHBACT = 1 << 0
	statusECCACT = 1 << 4
)

var lineFields = [...]lineField{
	LineARDY:      {pos: polarityARDYPOL_Pos},
	LineALE:       {pos: polarityALEPOL_Pos},
	LineWE:        {pos: polarityWEPOL_Pos},
	LineRE:        {pos: polarityREPOL_Pos},
	LineCS:        {pos: polarityCSPOL_Pos},
	LineBL:        {pos: polarityBLPOL_Pos},
	LineTFTVSync:  {tft: true, pos: tftpolarityVSYNCPOL_Pos},
	LineTFTHSync:  {tft: true, pos: tftpolarityHSYNCPOL_Pos},
	LineTFTDataEn: {tft: true, pos: tftpolarityDATAENPOL_Pos},
	LineTFTDClk:   {tft: true, pos: tftpolarityDCLKPOL_Pos},
	LineTFTCS:     {tft: true, pos: tftpolarityCSPOL_Pos},
}

type revisionConfig struct {
	BLPolarity Polarity
	// ByteLane enables byte lane support on the configured banks.
	ByteLane bool
	// NoIdle disables idle state insertion between transfers.
	NoIdle bool

	ReadPageMode       bool
	ReadPrefetch       bool
	ReadHalfRE         bool
	WriteBufferDisable bool
	WriteHalfWE        bool
	AddressHalfALE     bool

	// LowAddressPins is the lowest routed address line: 0, 8, 16 or 24.
	LowAddressPins uint8
	// HighAddressPins routes address lines below it: 0 for none, or 5..28.
	HighAddressPins uint8
}

func defaultRevisionConfig() revisionConfig { return revisionConfig{} }

func (rc *revisionConfig) validate() {
	encodeLowAddressPins(rc.LowAddressPins)
	encodeHighAddressPins(rc.HighAddressPins)
}

func (e *EBI) route() *register32 { return &e.hw.ROUTEPEN }

func (e *EBI) altMapEnabled() bool {
	return e.hw.CTRL.HasBits(1 << ctrlALTMAP_Pos)
}

func (e *EBI) polarityRegister(f lineField, bank uint8) *register32 {
	if f.tft {
		return &e.hw.TFTPOLARITY
	}
	return &e.hw.bank(bank).POLARITY
}

func (e *EBI) initPolarity(cfg Config) {
	e.SetBankPolarity(cfg.Banks, LineARDY, cfg.ARDYPolarity)
	e.SetBankPolarity(cfg.Banks, LineALE, cfg.ALEPolarity)
	e.SetBankPolarity(cfg.Banks, LineWE, cfg.WEPolarity)
	e.SetBankPolarity(cfg.Banks, LineRE, cfg.REPolarity)
	e.SetBankPolarity(cfg.Banks, LineCS, cfg.CSPolarity)
	e.SetBankPolarity(cfg.Banks, LineBL, cfg.BLPolarity)
}

// ctrlBankMask returns the CTRL bits owned by bank index.
func ctrlBankMask(index uint8) uint32 {
	return uint32(ctrlMODE_Msk)<<(2*index) |
		uint32(1)<<(ctrlBANK0EN_Pos+index) |
		uint32(1)<<(ctrlNOIDLE_Pos+index) |
		uint32(1)<<(ctrlARDYEN_Pos+2*index) |
		uint32(1)<<(ctrlARDYTODIS_Pos+2*index) |
		uint32(1)<<(ctrlBL_Pos+index)
}

func (e *EBI) composeControl(ctrl uint32, cfg Config) uint32 {
	ctrl |= 1 << ctrlITS_Pos
	for m := cfg.Banks; m != 0; m &= m - 1 {
		i := lowestBank(m)
		ctrl &^= ctrlBankMask(i)
		ctrl |= uint32(cfg.Mode) << (2 * i)
		ctrl |= boolToBit(cfg.ARDYEnable) << (ctrlARDYEN_Pos + 2*i)
		ctrl |= boolToBit(cfg.ARDYDisableTimeout) << (ctrlARDYTODIS_Pos + 2*i)
		ctrl |= boolToBit(cfg.ByteLane) << (ctrlBL_Pos + i)
		ctrl |= boolToBit(cfg.NoIdle) << (ctrlNOIDLE_Pos + i)
		ctrl |= boolToBit(cfg.Enable) << (ctrlBANK0EN_Pos + i)
	}
	return ctrl
}

func (e *EBI) initTiming(cfg Config) {
	e.SetBankReadTiming(cfg.Banks, cfg.ReadTiming)
	e.ConfigureBankRead(cfg.Banks, cfg.ReadPageMode, cfg.ReadPrefetch, cfg.ReadHalfRE)
	e.SetBankWriteTiming(cfg.Banks, cfg.WriteTiming)
	e.ConfigureBankWrite(cfg.Banks, cfg.WriteBufferDisable, cfg.WriteHalfWE)
	e.SetBankAddressTiming(cfg.Banks, cfg.AddressTiming)
	e.ConfigureBankAddress(cfg.Banks, cfg.AddressHalfALE)
}

func (e *EBI) initRouting(cfg Config, ctrl uint32) {
	e.SetLowAddressPins(cfg.LowAddressPins)
	e.SetHighAddressPins(cfg.HighAddressPins)
	// The byte lane pins stay routed while any bank uses them.
	if ctrl&ctrlBLALL_Msk != 0 {
		e.EnableByteLanePin(true)
	}
}

// SetBankPolarity sets the polarity of line on every bank in banks. TFT lines
// have a single polarity register shared by all banks.
func (e *EBI) SetBankPolarity(banks BankMask, line Line, polarity Polarity) {
	checkBanks(banks)
	f := lookupLine(line)
	for banks != 0 {
		i := lowestBank(banks)
		bitWrite(e.polarityRegister(f, i), f.pos, polarity != ActiveLow)
		banks &^= 1 << i
	}
}

// SetBankReadTiming sets the read timing of every bank in banks, keeping the
// page mode, prefetch and half-cycle flags.
func (e *EBI) SetBankReadTiming(banks BankMask, t Timing) {
	checkBanks(banks)
	EncodeReadTiming(t)
	for m := banks; m != 0; m &= m - 1 {
		reg := &e.hw.bank(lowestBank(m)).RDTIMING
		reg.Set(mergeReadTiming(reg.Get(), t))
	}
}

// SetBankWriteTiming sets the write timing of every bank in banks, keeping the
// write buffer and half-cycle flags.
func (e *EBI) SetBankWriteTiming(banks BankMask, t Timing) {
	checkBanks(banks)
	EncodeWriteTiming(t)
	for m := banks; m != 0; m &= m - 1 {
		reg := &e.hw.bank(lowestBank(m)).WRTIMING
		reg.Set(mergeWriteTiming(reg.Get(), t))
	}
}

// SetBankAddressTiming sets the address latch timing of every bank in banks,
// keeping the half-cycle ALE flag.
func (e *EBI) SetBankAddressTiming(banks BankMask, t AddressTiming) {
	checkBanks(banks)
	EncodeAddressTiming(t)
	for m := banks; m != 0; m &= m - 1 {
		reg := &e.hw.bank(lowestBank(m)).ADDRTIMING
		reg.Set(mergeAddressTiming(reg.Get(), t))
	}
}

// ConfigureBankRead sets the read flags of every bank in banks.
//   - pageMode enables page mode reads.
//   - prefetch enables prefetching of the next sequential address.
//   - halfRE makes the read strobe active for half a cycle.
func (e *EBI) ConfigureBankRead(banks BankMask, pageMode, prefetch, halfRE bool) {
	checkBanks(banks)
	for m := banks; m != 0; m &= m - 1 {
		reg := &e.hw.bank(lowestBank(m)).RDTIMING
		bitWrite(reg, rdtimingPAGEMODE_Pos, pageMode)
		bitWrite(reg, rdtimingPREFETCH_Pos, prefetch)
		bitWrite(reg, rdtimingHALFRE_Pos, halfRE)
	}
}

// ConfigureBankWrite sets the write flags of every bank in banks.
//   - writeBufDisable disables the write buffer.
//   - halfWE makes the write strobe active for half a cycle.
func (e *EBI) ConfigureBankWrite(banks BankMask, writeBufDisable, halfWE bool) {
	checkBanks(banks)
	for m := banks; m != 0; m &= m - 1 {
		reg := &e.hw.bank(lowestBank(m)).WRTIMING
		bitWrite(reg, wrtimingWBUFDIS_Pos, writeBufDisable)
		bitWrite(reg, wrtimingHALFWE_Pos, halfWE)
	}
}

// ConfigureBankAddress sets the half-cycle ALE flag of every bank in banks.
func (e *EBI) ConfigureBankAddress(banks BankMask, halfALE bool) {
	checkBanks(banks)
	for m := banks; m != 0; m &= m - 1 {
		bitWrite(&e.hw.bank(lowestBank(m)).ADDRTIMING, addrtimingHALFALE_Pos, halfALE)
	}
}

// EnableByteLane enables or disables byte lane support on every bank in banks.
func (e *EBI) EnableByteLane(banks BankMask, enable bool) {
	checkBanks(banks)
	for m := banks; m != 0; m &= m - 1 {
		bitWrite(&e.hw.CTRL, ctrlBL_Pos+lowestBank(m), enable)
	}
}

// EnableNAND selects the bank the NAND flash controller operates on and
// enables or disables it. Only one bank can be selected; if banks names
// several, the highest one wins.
func (e *EBI) EnableNAND(banks BankMask, enable bool) {
	checkBanks(banks)
	if banks != 0 {
		sel := uint32(bits.Len8(uint8(banks)) - 1)
		maskedWrite(&e.hw.NANDCTRL, nandctrlBANKSEL_Msk, sel<<nandctrlBANKSEL_Pos)
	}
	bitWrite(&e.hw.NANDCTRL, nandctrlEN_Pos, enable)
}

// StartNANDECC clears the ECC parity and starts ECC generation for the
// following NAND page access.
func (e *EBI) StartNANDECC() {
	e.hw.CMD.Set(cmdECCCLEAR | cmdECCSTART)
}

// StopNANDECC stops ECC generation and returns the resulting parity.
func (e *EBI) StopNANDECC() uint32 {
	e.hw.CMD.Set(cmdECCSTOP)
	return e.hw.ECCPARITY.Get()
}

// NANDECCParity returns the current ECC parity.
func (e *EBI) NANDECCParity() uint32 { return e.hw.ECCPARITY.Get() }

// ECCActive reports whether ECC generation is running.
func (e *EBI) ECCActive() bool { return e.hw.STATUS.HasBits(statusECCACT) }

// Busy reports whether an AHB transaction to the EBI is in progress.
func (e *EBI) Busy() bool { return e.hw.STATUS.HasBits(statusAHBACT) }

// SetAltMap enables the alternate address map, which gives each bank a
// 256 MiB window instead of 64 MiB.
func (e *EBI) SetAltMap(enable bool) {
	bitWrite(&e.hw.CTRL, ctrlALTMAP_Pos, enable)
}

// EnableByteLanePin routes or unroutes the byte lane pins.
func (e *EBI) EnableByteLanePin(on bool) {
	bitWrite(&e.hw.ROUTEPEN, routeBLPEN_Pos, on)
}

// EnableNANDPin routes or unroutes the NAND write and read enable pins.
func (e *EBI) EnableNANDPin(on bool) {
	bitWrite(&e.hw.ROUTEPEN, routeNANDPEN_Pos, on)
}

// EnableTFTPins routes or unroutes the TFT pin group.
func (e *EBI) EnableTFTPins(on bool) {
	bitWrite(&e.hw.ROUTEPEN, routeTFTPEN_Pos, on)
}

// SetLowAddressPins sets the lowest routed address line, one of 0, 8, 16 or 24.
func (e *EBI) SetLowAddressPins(bound uint8) {
	maskedWrite(&e.hw.ROUTEPEN, routeALB_Msk, encodeLowAddressPins(bound)<<routeALB_Pos)
}

// SetHighAddressPins routes the address lines below limit, which is 0 to
// route none or 5..28.
func (e *EBI) SetHighAddressPins(limit uint8) {
	maskedWrite(&e.hw.ROUTEPEN, routeAPEN_Msk, encodeHighAddressPins(limit)<<routeAPEN_Pos)
}

func encodeLowAddressPins(bound uint8) uint32 {
	if bound%8 != 0 || bound > 24 {
		panic(badAddressPins)
	}
	return uint32(bound / 8)
}

func encodeHighAddressPins(limit uint8) uint32 {
	switch {
	case limit == 0:
		return 0
	case limit >= 5 && limit <= 28:
		return uint32(limit - 4)
	}
	panic(badAddressPins)
}

// Interrupt flags of the TFT direct drive engine.
type Interrupt uint32

const (
	IntVSync Interrupt = 1 << iota
	IntHSync
	IntVBackPorch
	IntVFrontPorch
	IntDDEmpty
	IntDDJitter
	IntPixelFull
	IntPixelOverflow

	intAll = IntVSync | IntHSync | IntVBackPorch | IntVFrontPorch |
		IntDDEmpty | IntDDJitter | IntPixelFull | IntPixelOverflow
)

// EnableInterrupts enables the interrupt sources in flags.
func (e *EBI) EnableInterrupts(flags Interrupt) {
	e.hw.IEN.SetBits(uint32(flags & intAll))
}

// DisableInterrupts disables the interrupt sources in flags.
func (e *EBI) DisableInterrupts(flags Interrupt) {
	e.hw.IEN.ClearBits(uint32(flags & intAll))
}

// EnabledInterrupts returns the enabled interrupt sources.
func (e *EBI) EnabledInterrupts() Interrupt { return Interrupt(e.hw.IEN.Get()) & intAll }

// SetInterrupts sets pending interrupt flags from software.
func (e *EBI) SetInterrupts(flags Interrupt) { e.hw.IFS.Set(uint32(flags & intAll)) }

// ClearInterrupts clears pending interrupt flags.
func (e *EBI) ClearInterrupts(flags Interrupt) { e.hw.IFC.Set(uint32(flags & intAll)) }

// Interrupts returns the pending interrupt flags.
func (e *EBI) Interrupts() Interrupt { return Interrupt(e.hw.IF.Get()) & intAll }
