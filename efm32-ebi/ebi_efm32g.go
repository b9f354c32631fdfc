//go:build efm32g

package ebi

// Registers is the Gecko EBI block: a single set of timing and polarity
// registers shared by all banks and a combined pin enable and location
// register.
type Registers struct {
	CTRL  register32    // 0x00
	BANK0 BankRegisters // 0x04..0x10
	ROUTE register32    // 0x14
}

// BankRegisters is the shared timing and polarity register group.
type BankRegisters struct {
	ADDRTIMING register32 // 0x04
	RDTIMING   register32 // 0x08
	WRTIMING   register32 // 0x0C
	POLARITY   register32 // 0x10
}

// baseAddress is the address of the EBI register block on Gecko and Giant
// Gecko Series 0 parts.
const baseAddress = 0x4000_8000

const (
	modeMax = ModeD8A24ALE

	readSetupMax   = 0x3
	readStrobeMax  = 0x1f
	readHoldMax    = 0x3
	writeSetupMax  = 0x3
	writeStrobeMax = 0x1f
	writeHoldMax   = 0x3
	addrSetupMax   = 0x3
	addrHoldMax    = 0x3
)

const (
	routeLOCATION_Pos = 28
	routeLOCATION_Msk = 0x7 << routeLOCATION_Pos

	locationMax = Location2
)

var lineFields = [...]lineField{
	LineARDY: {pos: polarityARDYPOL_Pos},
	LineALE:  {pos: polarityALEPOL_Pos},
	LineWE:   {pos: polarityWEPOL_Pos},
	LineRE:   {pos: polarityREPOL_Pos},
	LineCS:   {pos: polarityCSPOL_Pos},
}

// Location selects one of the predefined EBI pin-out locations.
type Location uint8

const (
	Location0 Location = iota
	Location1
	Location2
)

type revisionConfig struct {
	// Location of the EBI pins.
	Location Location
}

func defaultRevisionConfig() revisionConfig { return revisionConfig{} }

func (rc *revisionConfig) validate() {
	if rc.Location > locationMax {
		panic(badLocation)
	}
}

func (e *EBI) route() *register32 { return &e.hw.ROUTE }

func (e *EBI) altMapEnabled() bool { return false }

func (e *EBI) polarityRegister(f lineField, bank uint8) *register32 {
	return &e.hw.BANK0.POLARITY
}

func (e *EBI) initPolarity(cfg Config) {
	e.SetPolarity(LineARDY, cfg.ARDYPolarity)
	e.SetPolarity(LineALE, cfg.ALEPolarity)
	e.SetPolarity(LineWE, cfg.WEPolarity)
	e.SetPolarity(LineRE, cfg.REPolarity)
	e.SetPolarity(LineCS, cfg.CSPolarity)
}

// composeControl applies cfg to the global control slice shared by all
// banks. Only the enable bits of banks in cfg.Banks are changed.
func (e *EBI) composeControl(ctrl uint32, cfg Config) uint32 {
	ctrl &^= ctrlMODE_Msk |
		1<<ctrlARDYEN_Pos |
		1<<ctrlARDYTODIS_Pos |
		uint32(cfg.Banks)<<ctrlBANK0EN_Pos
	if cfg.Enable {
		ctrl |= uint32(cfg.Banks) << ctrlBANK0EN_Pos
	}
	ctrl |= uint32(cfg.Mode)
	ctrl |= boolToBit(cfg.ARDYEnable) << ctrlARDYEN_Pos
	ctrl |= boolToBit(cfg.ARDYDisableTimeout) << ctrlARDYTODIS_Pos
	return ctrl
}

func (e *EBI) initTiming(cfg Config) {
	e.SetReadTiming(cfg.ReadTiming)
	e.SetWriteTiming(cfg.WriteTiming)
	e.SetAddressTiming(cfg.AddressTiming)
}

func (e *EBI) initRouting(cfg Config, ctrl uint32) {
	e.SetRouteLocation(cfg.Location)
}

// SetReadTiming sets the read timing used by all banks.
func (e *EBI) SetReadTiming(t Timing) {
	e.hw.BANK0.RDTIMING.Set(mergeReadTiming(e.hw.BANK0.RDTIMING.Get(), t))
}

// SetWriteTiming sets the write timing used by all banks.
func (e *EBI) SetWriteTiming(t Timing) {
	e.hw.BANK0.WRTIMING.Set(mergeWriteTiming(e.hw.BANK0.WRTIMING.Get(), t))
}

// SetAddressTiming sets the address latch timing used by all banks.
func (e *EBI) SetAddressTiming(t AddressTiming) {
	e.hw.BANK0.ADDRTIMING.Set(mergeAddressTiming(e.hw.BANK0.ADDRTIMING.Get(), t))
}

// SetRouteLocation selects the EBI pin-out location.
func (e *EBI) SetRouteLocation(loc Location) {
	if loc > locationMax {
		panic(badLocation)
	}
	maskedWrite(&e.hw.ROUTE, routeLOCATION_Msk, uint32(loc)<<routeLOCATION_Pos)
}
