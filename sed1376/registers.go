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

package sed1376

import (
	"github.com/jetsetilly/palmcore/logger"
	"github.com/jetsetilly/palmcore/sed1376/regs"
)

// ReadRegister returns the value at address. Write-only registers read as
// zero; an unrecognised address is logged and also reads as zero.
func (s *Sed1376) ReadRegister(address byte) byte {
	switch address {
	case regs.LutReadLoc, regs.LutWriteLoc, regs.LutBWrite, regs.LutGWrite, regs.LutRWrite:
		return 0x00

	// only the registers the host driver actually reads back are wired
	// here, matching the original firmware's read switch; every other
	// address (including several that do have a meaningful write side,
	// such as REV_CODE or the PIP geometry registers) falls through to the
	// unknown-address case below.
	case regs.PwrSaveCfg, regs.SpecialEffect, regs.DispMode,
		regs.LineSize0, regs.LineSize1,
		regs.PipAddr0, regs.PipAddr1, regs.PipAddr2,
		regs.Scratch0, regs.Scratch1,
		regs.GPIOConf0, regs.GPIOCont0, regs.GPIOConf1, regs.GPIOCont1,
		regs.MemClk, regs.PixelClk:
		return s.registers[address]

	default:
		logger.Logf(logger.Allow, "SED1376", "unknown register read %#02x", address)
		return 0x00
	}
}

// WriteRegister stores value at address, applying the field's write mask
// and any special behaviour (LUT transfer, GPIO-triggered status update,
// the power-save timing hack) the address carries.
func (s *Sed1376) WriteRegister(address byte, value byte) {
	switch address {
	case regs.PwrSaveCfg:
		s.registers[address] = (value & 0x01) | 0x80

	case regs.DispMode:
		s.registers[address] = value & 0xF7

	case regs.PanelType:
		s.registers[address] = value & 0xFB

	case regs.SpecialEffect:
		s.registers[address] = value & 0xD3

	case regs.ModRate:
		s.registers[address] = value & 0x3F

	case regs.DispAddr2, regs.PipAddr2:
		s.registers[address] = value & 0x01

	case regs.PWMControl:
		s.registers[address] = value & 0x9B

	case regs.LineSize1, regs.PipLineSz1,
		regs.PipXStart1, regs.PipXEnd1, regs.PipYStart1, regs.PipYEnd1,
		regs.HorizStart1, regs.VertTotal1, regs.VertPeriod1, regs.VertStart1,
		regs.FPLineStart1, regs.FPFrameStart1:
		s.registers[address] = value & 0x03

	case regs.LutWriteLoc:
		s.bLut[value] = s.registers[regs.LutBWrite]
		s.gLut[value] = s.registers[regs.LutGWrite]
		s.rLut[value] = s.registers[regs.LutRWrite]
		s.outputLut[value] = encodeRgb565FromSed666(s.rLut[value], s.gLut[value], s.bLut[value])

	case regs.LutReadLoc:
		s.registers[regs.LutBRead] = s.bLut[value]
		s.registers[regs.LutGRead] = s.gLut[value]
		s.registers[regs.LutRRead] = s.rLut[value]

	case regs.GPIOConf0, regs.GPIOCont0:
		s.registers[address] = value & 0x7F
		s.updateLcdStatus()

	case regs.GPIOConf1, regs.GPIOCont1:
		s.registers[address] = value & 0x80

	case regs.MemClk:
		s.registers[address] = value & 0x30

	case regs.PixelClk:
		s.registers[address] = value & 0x73

	case regs.LutBWrite, regs.LutGWrite, regs.LutRWrite:
		s.registers[address] = value & 0xFC

	case regs.HorizTotal, regs.HorizPeriod:
		s.registers[address] = value & 0x7F

	case regs.FPFrameWidth:
		s.registers[address] = value & 0x87

	case regs.DTFDGCPIndex:
		s.registers[address] = value & 0x1F

	case regs.Scratch0, regs.Scratch1,
		regs.DispAddr0, regs.DispAddr1,
		regs.PipAddr0, regs.PipAddr1,
		regs.LineSize0, regs.PipLineSz0,
		regs.PipXStart0, regs.PipXEnd0, regs.PipYStart0, regs.PipYEnd0,
		regs.HorizStart0, regs.VertTotal0, regs.VertPeriod0, regs.VertStart0,
		regs.FPLineWidth, regs.FPLineStart0, regs.FPFrameStart0,
		regs.DTFDGCPData, regs.PWMConfig, regs.PWMLength, regs.PWMDutyCycle:
		s.registers[address] = value

	default:
		logger.Logf(logger.Allow, "SED1376", "unknown register write %#02x := %#02x", address, value)
	}
}

// updateLcdStatus recomputes the panel power and backlight state from the
// GPIO control register. The original firmware delegates this to an
// external board-level observer; here it stays local to the controller
// since nothing outside it needs to own these two bits of state.
func (s *Sed1376) updateLcdStatus() {
	gpio := s.registers[regs.GPIOCont0]
	s.lcdOn = gpio&0x01 != 0
	switch (gpio >> 1) & 0x03 {
	case 0:
		s.backlightLevel = 0
	case 1:
		s.backlightLevel = 1
	default:
		s.backlightLevel = 2
	}
}
