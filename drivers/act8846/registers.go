package act8846

// I2C address.
const AddressDefault = 0x5a

// NumOfRegs is the number of regulators (REG1..REG12) the uclass reports.
const NumOfRegs = 12

// Register map (8-bit offsets).
const (
	RegSysVol = 0x00
	RegSysCtl = 0x01

	Reg1Vol  = 0x10
	Reg1Ctl  = 0x12
	Reg2Vol  = 0x20
	Reg2Ctl  = 0x22
	Reg3Vol  = 0x30
	Reg3Ctl  = 0x32
	Reg4Vol  = 0x40
	Reg4Ctl  = 0x42
	Reg5Vol  = 0x50
	Reg5Ctl  = 0x51
	Reg6Vol  = 0x58
	Reg6Ctl  = 0x59
	Reg7Vol  = 0x60
	Reg7Ctl  = 0x61
	Reg8Vol  = 0x68
	Reg8Ctl  = 0x69
	Reg9Vol  = 0x70
	Reg9Ctl  = 0x71
	Reg10Vol = 0x80
	Reg10Ctl = 0x81
	Reg11Vol = 0x90
	Reg11Ctl = 0x91
	Reg12Vol = 0xa0
	Reg12Ctl = 0xa1

	RegGlbOffCtrl = 0xc3
)

// GLB_OFF_CTRL bits.
const (
	OffSysClr byte = 1 << 3
	OffSys    byte = 1 << 4
)

// Regulator field masks.
const (
	VolMask byte = 0x3f
	EnMask  byte = 0x80
)

// RegulatorRegs returns the voltage and control register of regulator n (1..12).
func RegulatorRegs(n int) (vol, ctl byte, ok bool) {
	if n < 1 || n > NumOfRegs {
		return 0, 0, false
	}
	r := regTable[n-1]
	return r[0], r[1], true
}

var regTable = [NumOfRegs][2]byte{
	{Reg1Vol, Reg1Ctl}, {Reg2Vol, Reg2Ctl}, {Reg3Vol, Reg3Ctl}, {Reg4Vol, Reg4Ctl},
	{Reg5Vol, Reg5Ctl}, {Reg6Vol, Reg6Ctl}, {Reg7Vol, Reg7Ctl}, {Reg8Vol, Reg8Ctl},
	{Reg9Vol, Reg9Ctl}, {Reg10Vol, Reg10Ctl}, {Reg11Vol, Reg11Ctl}, {Reg12Vol, Reg12Ctl},
}
