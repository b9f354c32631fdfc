package ebi

// Config holds the configuration applied by Init.
//
// Fields specific to a hardware revision are promoted from an embedded
// struct and are only present on revisions that have the hardware; start from
// DefaultConfig and assign them individually.
type Config struct {
	// Banks to configure.
	Banks BankMask
	// ChipSelects to route once the banks are configured.
	ChipSelects CSMask
	// Enable the banks in Banks.
	Enable bool
	// Mode is the data/address multiplexing scheme.
	Mode Mode

	ARDYEnable         bool
	ARDYDisableTimeout bool

	ARDYPolarity Polarity
	ALEPolarity  Polarity
	WEPolarity   Polarity
	REPolarity   Polarity
	CSPolarity   Polarity

	ReadTiming    Timing
	WriteTiming   Timing
	AddressTiming AddressTiming

	revisionConfig
}

// DefaultConfig returns a configuration for a single 8-bit device on bank 0
// selected by CS0, with all lines active low.
func DefaultConfig() Config {
	return Config{
		Banks:         Bank0,
		ChipSelects:   CS0,
		Enable:        true,
		Mode:          ModeD8A8,
		ReadTiming:    Timing{Setup: 2, Strobe: 2, Hold: 1},
		WriteTiming:   Timing{Setup: 2, Strobe: 2, Hold: 1},
		AddressTiming: AddressTiming{Setup: 0, Hold: 0},

		revisionConfig: defaultRevisionConfig(),
	}
}

// validate panics on any field the hardware cannot represent.
func (cfg *Config) validate() {
	if cfg.Mode > modeMax {
		panic(badMode)
	}
	EncodeReadTiming(cfg.ReadTiming)
	EncodeWriteTiming(cfg.WriteTiming)
	EncodeAddressTiming(cfg.AddressTiming)
	cfg.revisionConfig.validate()
}

// Timing holds the setup, strobe and hold durations of a bus access in
// internal clock cycles.
type Timing struct {
	Setup  uint8
	Strobe uint8
	Hold   uint8
}

// AddressTiming holds the address latch setup and hold durations in internal
// clock cycles.
type AddressTiming struct {
	Setup uint8
	Hold  uint8
}

// Timing register field positions.
const (
	timingSETUP_Pos = 0
	timingSTRB_Pos  = 8
	timingHOLD_Pos  = 16

	addrtimingSETUP_Pos = 0
	addrtimingHOLD_Pos  = 8
)

const (
	readTimingMsk = readSetupMax<<timingSETUP_Pos |
		readStrobeMax<<timingSTRB_Pos |
		readHoldMax<<timingHOLD_Pos
	writeTimingMsk = writeSetupMax<<timingSETUP_Pos |
		writeStrobeMax<<timingSTRB_Pos |
		writeHoldMax<<timingHOLD_Pos
	addressTimingMsk = addrSetupMax<<addrtimingSETUP_Pos |
		addrHoldMax<<addrtimingHOLD_Pos
)

// EncodeReadTiming packs t into the RDTIMING timing fields. A strobe of zero
// is accepted; the hardware then uses a single cycle strobe.
func EncodeReadTiming(t Timing) uint32 {
	if t.Setup > readSetupMax || t.Strobe > readStrobeMax || t.Hold > readHoldMax {
		panic(badTiming)
	}
	return uint32(t.Setup)<<timingSETUP_Pos |
		uint32(t.Strobe)<<timingSTRB_Pos |
		uint32(t.Hold)<<timingHOLD_Pos
}

// DecodeReadTiming extracts the timing fields of a RDTIMING value.
func DecodeReadTiming(word uint32) Timing {
	return Timing{
		Setup:  uint8(word >> timingSETUP_Pos & readSetupMax),
		Strobe: uint8(word >> timingSTRB_Pos & readStrobeMax),
		Hold:   uint8(word >> timingHOLD_Pos & readHoldMax),
	}
}

// EncodeWriteTiming packs t into the WRTIMING timing fields. A strobe of
// zero is accepted; the hardware then uses a single cycle strobe.
func EncodeWriteTiming(t Timing) uint32 {
	if t.Setup > writeSetupMax || t.Strobe > writeStrobeMax || t.Hold > writeHoldMax {
		panic(badTiming)
	}
	return uint32(t.Setup)<<timingSETUP_Pos |
		uint32(t.Strobe)<<timingSTRB_Pos |
		uint32(t.Hold)<<timingHOLD_Pos
}

// DecodeWriteTiming extracts the timing fields of a WRTIMING value.
func DecodeWriteTiming(word uint32) Timing {
	return Timing{
		Setup:  uint8(word >> timingSETUP_Pos & writeSetupMax),
		Strobe: uint8(word >> timingSTRB_Pos & writeStrobeMax),
		Hold:   uint8(word >> timingHOLD_Pos & writeHoldMax),
	}
}

// EncodeAddressTiming packs t into the ADDRTIMING timing fields.
func EncodeAddressTiming(t AddressTiming) uint32 {
	if t.Setup > addrSetupMax || t.Hold > addrHoldMax {
		panic(badTiming)
	}
	return uint32(t.Setup)<<addrtimingSETUP_Pos |
		uint32(t.Hold)<<addrtimingHOLD_Pos
}

// DecodeAddressTiming extracts the timing fields of an ADDRTIMING value.
func DecodeAddressTiming(word uint32) AddressTiming {
	return AddressTiming{
		Setup: uint8(word >> addrtimingSETUP_Pos & addrSetupMax),
		Hold:  uint8(word >> addrtimingHOLD_Pos & addrHoldMax),
	}
}

// The merge helpers replace the timing fields of a register value and keep
// every other bit, which holds the page mode, prefetch, write buffer and
// half-cycle flags on revisions that have them.

func mergeReadTiming(old uint32, t Timing) uint32 {
	return old&^readTimingMsk | EncodeReadTiming(t)
}

func mergeWriteTiming(old uint32, t Timing) uint32 {
	return old&^writeTimingMsk | EncodeWriteTiming(t)
}

func mergeAddressTiming(old uint32, t AddressTiming) uint32 {
	return old&^addressTimingMsk | EncodeAddressTiming(t)
}
