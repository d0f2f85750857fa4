// This file is part of palmcore.
//
// palmcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// palmcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with palmcore.  If not, see <https://www.gnu.org/licenses/>.

// Package regs names the SED1376 register plane's byte offsets. The
// original register spec header is not part of this source tree, so the
// offsets below are this implementation's own assignment rather than a
// transcription of the real part's datasheet; nothing beyond the field
// masks and reset values spelled out in the device documentation is
// behaviourally significant.
package regs

// Size is the byte width of the register plane.
const Size = 0xB4

const (
	RevCode      = 0x00
	DispBuffSize = 0x01
	DispMode     = 0x02
	PanelType    = 0x03
	ModRate      = 0x04
	SpecialEffect = 0x05
	PWMControl   = 0x06
	PwrSaveCfg   = 0x07

	DispAddr0 = 0x08
	DispAddr1 = 0x09
	DispAddr2 = 0x0A

	PipAddr0 = 0x0B
	PipAddr1 = 0x0C
	PipAddr2 = 0x0D

	LineSize0 = 0x0E
	LineSize1 = 0x0F

	PipLineSz0 = 0x10
	PipLineSz1 = 0x11

	PipXStart0 = 0x12
	PipXStart1 = 0x13
	PipXEnd0   = 0x14
	PipXEnd1   = 0x15
	PipYStart0 = 0x16
	PipYStart1 = 0x17
	PipYEnd0   = 0x18
	PipYEnd1   = 0x19

	LutBWrite = 0x1A
	LutGWrite = 0x1B
	LutRWrite = 0x1C
	LutBRead  = 0x1D
	LutGRead  = 0x1E
	LutRRead  = 0x1F
	LutWriteLoc = 0x20
	LutReadLoc  = 0x21

	GPIOConf0 = 0x22
	GPIOCont0 = 0x23
	GPIOConf1 = 0x24
	GPIOCont1 = 0x25

	MemClk   = 0x26
	PixelClk = 0x27

	Scratch0 = 0x28
	Scratch1 = 0x29

	HorizTotal  = 0x2A
	HorizPeriod = 0x2B
	HorizStart0 = 0x2C
	HorizStart1 = 0x2D

	VertTotal0  = 0x2E
	VertTotal1  = 0x2F
	VertPeriod0 = 0x30
	VertPeriod1 = 0x31
	VertStart0  = 0x32
	VertStart1  = 0x33

	FPLineWidth   = 0x34
	FPLineStart0  = 0x35
	FPLineStart1  = 0x36
	FPFrameWidth  = 0x37
	FPFrameStart0 = 0x38
	FPFrameStart1 = 0x39

	DTFDGCPIndex = 0x3A
	DTFDGCPData  = 0x3B

	PWMConfig    = 0x3C
	PWMLength    = 0x3D
	PWMDutyCycle = 0x3E
)

// ResetValue reports the power-on value of a register with a non-zero
// reset, and whether one is defined at all.
func ResetValue(address byte) (value byte, ok bool) {
	switch address {
	case RevCode:
		return 0x28, true
	case DispBuffSize:
		return 0x14, true
	case PwrSaveCfg:
		return 0x80, true
	}
	return 0, false
}
