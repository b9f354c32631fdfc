//go:build !efm32g

package ebi

const (
	badTFTSize  = "ebi: tft size out of range"
	badTFTPorch = "ebi: tft porch out of range"
	badTFTField = "ebi: tft value out of range"
)

// TFTCTRL.
const (
	tftctrlDD_Pos          = 0
	tftctrlDD_Msk          = 0x3 << tftctrlDD_Pos
	tftctrlMASKBLEND_Pos   = 2
	tftctrlMASKBLEND_Msk   = 0xf << tftctrlMASKBLEND_Pos
	tftctrlSHIFTDCLKEN_Pos = 8
	tftctrlFBCTRIG_Pos     = 9
	tftctrlINTERLEAVE_Pos  = 10
	tftctrlCOLOR1SRC_Pos   = 12
	tftctrlWIDTH_Pos       = 16
	tftctrlBANKSEL_Pos     = 20
)

const (
	tftsizeHSZ_Pos = 0
	tftsizeVSZ_Pos = 16
	tftsizeSZ_Max  = 0x3ff

	tftporchSYNC_Pos  = 0
	tftporchSYNC_Max  = 0x7f
	tftporchFRONT_Pos = 8
	tftporchBACK_Pos  = 18
	tftporch_Max      = 0xff

	tfttimingDCLKPERIOD_Pos = 0
	tfttimingDCLKPERIOD_Max = 0x7ff
	tfttimingSTART_Pos      = 12
	tfttimingSTART_Max      = 0x7ff
	tfttimingSETUP_Pos      = 24
	tfttimingSETUP_Max      = 0x3
	tfttimingHOLD_Pos       = 28
	tfttimingHOLD_Max       = 0x3

	tftframebase_Msk = 0x0fff_ffff
	tftstride_Msk    = 0xfff
	tftalpha_Max     = 0x100
	tftpixel_Msk     = 0xff_ffff

	tftstatusHCNT_Pos = 0
	tftstatusVCNT_Pos = 16
	tftstatusCNT_Msk  = 0x3ff
)

// TFTDriveMode selects where the direct drive engine fetches pixels from.
type TFTDriveMode uint8

const (
	// TFTDriveDisabled turns direct drive off.
	TFTDriveDisabled TFTDriveMode = iota
	// TFTDriveInternal drives pixels written to the TFTPIXEL register.
	TFTDriveInternal
	// TFTDriveExternal drives pixels from the frame buffer in an EBI bank.
	TFTDriveExternal
	// TFTDriveMasked drives the frame buffer through the mask and blend unit.
	TFTDriveMasked
)

// TFTMaskBlend selects masking and alpha blending of the driven pixels. I
// modes use the internal pixel registers, EFB modes the external frame buffer.
type TFTMaskBlend uint8

const (
	TFTMaskBlendDisabled      TFTMaskBlend = 0x0
	TFTMaskBlendIMask         TFTMaskBlend = 0x1
	TFTMaskBlendIAlpha        TFTMaskBlend = 0x2
	TFTMaskBlendIMaskAlpha    TFTMaskBlend = 0x3
	TFTMaskBlendEFBMask       TFTMaskBlend = 0x5
	TFTMaskBlendEFBAlpha      TFTMaskBlend = 0x6
	TFTMaskBlendEFBMaskAlpha  TFTMaskBlend = 0x7
	TFTMaskBlendEFBIMask      TFTMaskBlend = 0x9
	TFTMaskBlendEFBIAlpha     TFTMaskBlend = 0xa
	TFTMaskBlendEFBIMaskAlpha TFTMaskBlend = 0xb
)

// TFTWidth is the width of one frame buffer access.
type TFTWidth uint8

const (
	TFTWidthByte TFTWidth = iota
	TFTWidthHalfWord
)

// TFTColorSource selects the source of color 1 when blending.
type TFTColorSource uint8

const (
	TFTColorSourceMem TFTColorSource = iota
	TFTColorSourcePixel1
)

// TFTInterleave controls when EBI bus accesses may be interleaved with
// direct drive accesses.
type TFTInterleave uint8

const (
	TFTInterleaveUnlimited TFTInterleave = iota
	TFTInterleaveOnePerDClk
	TFTInterleavePorch
)

// TFTFrameBufferTrigger selects the event that latches a new frame base.
type TFTFrameBufferTrigger uint8

const (
	TFTFrameBufferTriggerVSync TFTFrameBufferTrigger = iota
	TFTFrameBufferTriggerHSync
)

// TFTConfig holds the configuration applied by TFT.Init.
type TFTConfig struct {
	// Bank holding the frame buffer. Must name exactly one bank.
	Bank               BankMask
	Width              TFTWidth
	ColorSource        TFTColorSource
	Interleave         TFTInterleave
	FrameBufferTrigger TFTFrameBufferTrigger
	// ShiftDClk shifts DCLK half a cycle.
	ShiftDClk bool
	MaskBlend TFTMaskBlend
	DriveMode TFTDriveMode

	CSPolarity     Polarity
	DClkPolarity   Polarity
	DataEnPolarity Polarity
	HSyncPolarity  Polarity
	VSyncPolarity  Polarity

	// HSize and VSize are the display size in pixels.
	HSize uint16
	VSize uint16

	HPorchFront uint16
	HPorchBack  uint16
	HPulseWidth uint16
	VPorchFront uint16
	VPorchBack  uint16
	VPulseWidth uint16

	// AddressOffset is the frame buffer offset inside Bank.
	AddressOffset uint32

	// DClkPeriod, StartPosition, SetupCycles and HoldCycles are in internal
	// clock cycles.
	DClkPeriod    uint16
	StartPosition uint16
	SetupCycles   uint8
	HoldCycles    uint8
}

// DefaultTFTConfig returns a configuration for a 320x240 panel with the frame
// buffer at the start of bank 0, driven from external memory.
func DefaultTFTConfig() TFTConfig {
	return TFTConfig{
		Bank:        Bank0,
		Width:       TFTWidthHalfWord,
		Interleave:  TFTInterleaveUnlimited,
		DriveMode:   TFTDriveExternal,
		HSize:       320,
		VSize:       240,
		HPorchFront: 1,
		HPorchBack:  29,
		HPulseWidth: 2,
		VPorchFront: 1,
		VPorchBack:  4,
		VPulseWidth: 2,
		DClkPeriod:  8,
		SetupCycles: 0,
		HoldCycles:  0,
	}
}

// TFT is the direct drive engine of the EBI, which continuously scans a
// frame buffer out to an RGB TFT panel.
type TFT struct {
	ebi *EBI
}

// TFT returns the direct drive engine of e.
func (e *EBI) TFT() TFT { return TFT{ebi: e} }

// Init configures the panel geometry, timing and polarities, then starts
// driving in cfg.DriveMode. The TFT pins are routed unless the drive mode is
// disabled.
func (t TFT) Init(cfg TFTConfig) {
	// Encode everything first so a bad config leaves the hardware untouched.
	base := encodeTFTFrameBase(cfg.AddressOffset)
	size := encodeTFTSize(cfg.HSize, cfg.VSize)
	hporch := encodeTFTPorch(cfg.HPorchFront, cfg.HPorchBack, cfg.HPulseWidth)
	vporch := encodeTFTPorch(cfg.VPorchFront, cfg.VPorchBack, cfg.VPulseWidth)
	timing := encodeTFTTiming(cfg.DClkPeriod, cfg.StartPosition, cfg.SetupCycles, cfg.HoldCycles)
	ctrl := encodeTFTCtrl(cfg)

	hw := t.ebi.hw
	hw.TFTFRAMEBASE.Set(base)
	hw.TFTSIZE.Set(size)
	hw.TFTHPORCH.Set(hporch)
	hw.TFTVPORCH.Set(vporch)
	hw.TFTTIMING.Set(timing)

	t.ebi.SetPolarity(LineTFTCS, cfg.CSPolarity)
	t.ebi.SetPolarity(LineTFTDClk, cfg.DClkPolarity)
	t.ebi.SetPolarity(LineTFTDataEn, cfg.DataEnPolarity)
	t.ebi.SetPolarity(LineTFTVSync, cfg.VSyncPolarity)
	t.ebi.SetPolarity(LineTFTHSync, cfg.HSyncPolarity)

	hw.TFTCTRL.Set(ctrl)

	if cfg.DriveMode != TFTDriveDisabled {
		t.ebi.EnableTFTPins(true)
	}
}

func encodeTFTCtrl(cfg TFTConfig) uint32 {
	if cfg.DriveMode > TFTDriveMasked || cfg.Width > TFTWidthHalfWord ||
		cfg.ColorSource > TFTColorSourcePixel1 || cfg.Interleave > TFTInterleavePorch ||
		cfg.FrameBufferTrigger > TFTFrameBufferTriggerHSync {
		panic(badTFTField)
	}
	return uint32(cfg.DriveMode)<<tftctrlDD_Pos |
		encodeTFTMaskBlend(cfg.MaskBlend) |
		boolToBit(cfg.ShiftDClk)<<tftctrlSHIFTDCLKEN_Pos |
		uint32(cfg.FrameBufferTrigger)<<tftctrlFBCTRIG_Pos |
		uint32(cfg.Interleave)<<tftctrlINTERLEAVE_Pos |
		uint32(cfg.ColorSource)<<tftctrlCOLOR1SRC_Pos |
		uint32(cfg.Width)<<tftctrlWIDTH_Pos |
		uint32(bankIndex(cfg.Bank))<<tftctrlBANKSEL_Pos
}

func encodeTFTMaskBlend(mode TFTMaskBlend) uint32 {
	switch mode {
	case TFTMaskBlendDisabled, TFTMaskBlendIMask, TFTMaskBlendIAlpha, TFTMaskBlendIMaskAlpha,
		TFTMaskBlendEFBMask, TFTMaskBlendEFBAlpha, TFTMaskBlendEFBMaskAlpha,
		TFTMaskBlendEFBIMask, TFTMaskBlendEFBIAlpha, TFTMaskBlendEFBIMaskAlpha:
	default:
		panic(badTFTField)
	}
	return uint32(mode) << tftctrlMASKBLEND_Pos
}

// encodeTFTSize stores each dimension as dimension-1.
func encodeTFTSize(horizontal, vertical uint16) uint32 {
	if horizontal == 0 || horizontal-1 > tftsizeSZ_Max ||
		vertical == 0 || vertical-1 > tftsizeSZ_Max {
		panic(badTFTSize)
	}
	return uint32(horizontal-1)<<tftsizeHSZ_Pos | uint32(vertical-1)<<tftsizeVSZ_Pos
}

// encodeTFTPorch stores the sync pulse width as width-1.
func encodeTFTPorch(front, back, pulseWidth uint16) uint32 {
	if front > tftporch_Max || back > tftporch_Max ||
		pulseWidth == 0 || pulseWidth-1 > tftporchSYNC_Max {
		panic(badTFTPorch)
	}
	return uint32(front)<<tftporchFRONT_Pos |
		uint32(back)<<tftporchBACK_Pos |
		uint32(pulseWidth-1)<<tftporchSYNC_Pos
}

func encodeTFTTiming(dclkPeriod, start uint16, setup, hold uint8) uint32 {
	if dclkPeriod > tfttimingDCLKPERIOD_Max || start > tfttimingSTART_Max ||
		setup > tfttimingSETUP_Max || hold > tfttimingHOLD_Max {
		panic(badTiming)
	}
	return uint32(dclkPeriod)<<tfttimingDCLKPERIOD_Pos |
		uint32(start)<<tfttimingSTART_Pos |
		uint32(setup)<<tfttimingSETUP_Pos |
		uint32(hold)<<tfttimingHOLD_Pos
}

func encodeTFTFrameBase(offset uint32) uint32 {
	if offset&^tftframebase_Msk != 0 {
		panic(badTFTField)
	}
	return offset
}

// SetSize sets the display size in pixels.
func (t TFT) SetSize(horizontal, vertical uint16) {
	t.ebi.hw.TFTSIZE.Set(encodeTFTSize(horizontal, vertical))
}

// SetHPorch sets the horizontal front and back porch and the HSYNC pulse
// width, all in pixel clocks.
func (t TFT) SetHPorch(front, back, pulseWidth uint16) {
	t.ebi.hw.TFTHPORCH.Set(encodeTFTPorch(front, back, pulseWidth))
}

// SetVPorch sets the vertical front and back porch and the VSYNC pulse
// width, all in lines.
func (t TFT) SetVPorch(front, back, pulseWidth uint16) {
	t.ebi.hw.TFTVPORCH.Set(encodeTFTPorch(front, back, pulseWidth))
}

// SetTiming sets the DCLK period, the start position of the first pixel and
// the setup and hold cycles of the data lines.
func (t TFT) SetTiming(dclkPeriod, start uint16, setup, hold uint8) {
	t.ebi.hw.TFTTIMING.Set(encodeTFTTiming(dclkPeriod, start, setup, hold))
}

// SetFrameBase sets the frame buffer offset inside the selected bank. The
// new base is latched on the configured frame buffer trigger.
func (t TFT) SetFrameBase(offset uint32) {
	t.ebi.hw.TFTFRAMEBASE.Set(encodeTFTFrameBase(offset))
}

// FrameBase returns the frame buffer offset.
func (t TFT) FrameBase() uint32 { return t.ebi.hw.TFTFRAMEBASE.Get() }

// SetStride sets the number of bytes to skip between the end of one line and
// the start of the next.
func (t TFT) SetStride(stride uint16) {
	if uint32(stride)&^tftstride_Msk != 0 {
		panic(badTFTField)
	}
	t.ebi.hw.TFTSTRIDE.Set(uint32(stride))
}

// SetMaskBlend selects the masking and blending mode.
func (t TFT) SetMaskBlend(mode TFTMaskBlend) {
	maskedWrite(&t.ebi.hw.TFTCTRL, tftctrlMASKBLEND_Msk, encodeTFTMaskBlend(mode))
}

// MaskBlend returns the masking and blending mode.
func (t TFT) MaskBlend() TFTMaskBlend {
	return TFTMaskBlend(t.ebi.hw.TFTCTRL.Get() & tftctrlMASKBLEND_Msk >> tftctrlMASKBLEND_Pos)
}

// SetDriveMode starts or stops direct drive.
func (t TFT) SetDriveMode(mode TFTDriveMode) {
	if mode > TFTDriveMasked {
		panic(badTFTField)
	}
	maskedWrite(&t.ebi.hw.TFTCTRL, tftctrlDD_Msk, uint32(mode)<<tftctrlDD_Pos)
}

// DriveMode returns the current drive mode.
func (t TFT) DriveMode() TFTDriveMode {
	return TFTDriveMode(t.ebi.hw.TFTCTRL.Get() & tftctrlDD_Msk >> tftctrlDD_Pos)
}

// SetAlpha sets the blending factor, 0..256.
func (t TFT) SetAlpha(alpha uint16) {
	if alpha > tftalpha_Max {
		panic(badTFTField)
	}
	t.ebi.hw.TFTALPHA.Set(uint32(alpha))
}

// SetMask sets the color treated as transparent when masking.
func (t TFT) SetMask(color uint32) {
	t.ebi.hw.TFTMASK.Set(color & tftpixel_Msk)
}

// SetPixel0 sets the pixel 0 register used by internal drive and blending.
func (t TFT) SetPixel0(color uint32) { t.ebi.hw.TFTPIXEL0.Set(color & tftpixel_Msk) }

// SetPixel1 sets the pixel 1 register used as color 1 when blending.
func (t TFT) SetPixel1(color uint32) { t.ebi.hw.TFTPIXEL1.Set(color & tftpixel_Msk) }

// PutPixel writes the next pixel in internal drive mode.
func (t TFT) PutPixel(color uint32) { t.ebi.hw.TFTPIXEL.Set(color & tftpixel_Msk) }

// Position returns the horizontal and vertical position of the pixel
// currently being driven.
func (t TFT) Position() (h, v uint16) {
	status := t.ebi.hw.TFTSTATUS.Get()
	return uint16(status >> tftstatusHCNT_Pos & tftstatusCNT_Msk),
		uint16(status >> tftstatusVCNT_Pos & tftstatusCNT_Msk)
}
