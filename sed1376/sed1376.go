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

// Package sed1376 simulates the SED1376 LCD/PIP controller: its register
// plane, RGB palette, 128KiB graphics RAM and the frame renderer that turns
// all three into a 160x160 RGB565 framebuffer.
package sed1376

import (
	"github.com/jetsetilly/palmcore/sed1376/regs"
)

const (
	lutSize    = 0x100
	ramSize    = 0x20000 // true size is 0x14000; padded to a power of two
	FramebufferWidth  = 160
	FramebufferHeight = 160
)

// PLLSource reports whether the host CPU's PLL is currently running. The
// SED1376 is clocked from the CPU side, so rendering is gated on it.
type PLLSource func() bool

// Sed1376 is the state of one SED1376 controller instance.
type Sed1376 struct {
	registers [regs.Size]byte
	rLut      [lutSize]byte
	gLut      [lutSize]byte
	bLut      [lutSize]byte
	outputLut [lutSize]uint16
	ram       [ramSize]byte

	screenStartAddress uint32
	lineSize           uint16

	lcdOn          bool
	backlightLevel int

	pllOn PLLSource
}

// New returns a Sed1376 at its power-on state. pllOn may be nil, in which
// case the PLL is always considered off and the device never draws.
func New(pllOn PLLSource) *Sed1376 {
	s := &Sed1376{pllOn: pllOn}
	s.Reset()
	return s
}

// Reset restores the controller to its power-on state: registers, LUTs and
// RAM all zeroed except the few registers with a documented non-zero reset
// value.
func (s *Sed1376) Reset() {
	s.registers = [regs.Size]byte{}
	s.rLut = [lutSize]byte{}
	s.gLut = [lutSize]byte{}
	s.bLut = [lutSize]byte{}
	s.outputLut = [lutSize]uint16{}
	s.ram = [ramSize]byte{}

	s.lcdOn = false
	s.backlightLevel = 0
	s.screenStartAddress = 0
	s.lineSize = 0

	s.registers[regs.RevCode] = 0x28
	s.registers[regs.DispBuffSize] = 0x14
	// timing hack: signal a steady-state PLL to the host faster than real
	// hardware would.
	s.registers[regs.PwrSaveCfg] = 0x80
}

// PowerSaveEnabled reports whether the power-save mode bit is set.
func (s *Sed1376) PowerSaveEnabled() bool {
	return s.registers[regs.PwrSaveCfg]&0x01 != 0
}

func (s *Sed1376) addressMask() int {
	return len(s.ram) - 1
}

// PeekRAM and PokeRAM give external tools (debuggers, the multi-block frame
// uploader a host's OS ROM would use, test code) direct access to graphics
// RAM without going through the host's memory-mapped bus.
func (s *Sed1376) PeekRAM(address int) byte {
	return s.ram[address&s.addressMask()]
}

func (s *Sed1376) PokeRAM(address int, value byte) {
	s.ram[address&s.addressMask()] = value
}

// LCDOn and BacklightLevel expose the panel-power state a debug overlay
// wants to show alongside the register dump; both are derived entirely
// from GPIO register writes via updateLcdStatus.
func (s *Sed1376) LCDOn() bool {
	return s.lcdOn
}

func (s *Sed1376) BacklightLevel() int {
	return s.backlightLevel
}

// PaletteEntry returns the raw SED-native channel values and the cached
// RGB565 output for LUT slot i, for a debug palette swatch view.
func (s *Sed1376) PaletteEntry(i int) (r, g, b byte, rgb565 uint16) {
	i &= lutSize - 1
	return s.rLut[i], s.gLut[i], s.bLut[i], s.outputLut[i]
}
