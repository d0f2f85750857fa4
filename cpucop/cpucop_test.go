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

package cpucop_test

import (
	"testing"

	"github.com/jetsetilly/palmcore/cpucop"
	"github.com/jetsetilly/palmcore/test"
)

type fakeCPU struct {
	control                uint32
	ttbr                   uint32
	dacr                   uint32
	dfsr                   uint32
	ifsr                   uint32
	far                    uint32
	regs                   [16]uint32
	cpsrN, cpsrZ, cpsrC, cpsrV bool
	interrupts             uint32
	cycleCountDelta        uint32
	events                 uint32
	flushed                int
}

func (f *fakeCPU) Control() uint32                    { return f.control }
func (f *fakeCPU) SetControl(v uint32)                 { f.control = v }
func (f *fakeCPU) TranslationTableBase() uint32        { return f.ttbr }
func (f *fakeCPU) SetTranslationTableBase(v uint32)    { f.ttbr = v }
func (f *fakeCPU) DomainAccessControl() uint32         { return f.dacr }
func (f *fakeCPU) SetDomainAccessControl(v uint32)     { f.dacr = v }
func (f *fakeCPU) DataFaultStatus() uint32             { return f.dfsr }
func (f *fakeCPU) SetDataFaultStatus(v uint32)         { f.dfsr = v }
func (f *fakeCPU) InstructionFaultStatus() uint32      { return f.ifsr }
func (f *fakeCPU) SetInstructionFaultStatus(v uint32)  { f.ifsr = v }
func (f *fakeCPU) FaultAddress() uint32                { return f.far }
func (f *fakeCPU) SetFaultAddress(v uint32)            { f.far = v }
func (f *fakeCPU) Reg(n int) uint32                    { return f.regs[n] }
func (f *fakeCPU) SetReg(n int, v uint32)              { f.regs[n] = v }
func (f *fakeCPU) SetCPSRFlags(n, z, c, v bool) {
	f.cpsrN, f.cpsrZ, f.cpsrC, f.cpsrV = n, z, c, v
}
func (f *fakeCPU) Interrupts() uint32            { return f.interrupts }
func (f *fakeCPU) SetCycleCountDelta(v uint32)   { f.cycleCountDelta = v }
func (f *fakeCPU) RaiseEvent(bits uint32)        { f.events |= bits }
func (f *fakeCPU) StepPCBack(n uint32)           { f.regs[15] -= n }
func (f *fakeCPU) FlushTLB()                     { f.flushed++ }

// mrc builds an MRC instruction word for a cp15 selector with destination
// register rd, condition AL (0xE).
func mrc(selector uint32, rd uint32) uint32 {
	return 0xE000_0000 | 0x0010_0000 | selector | (rd << 12)
}

// mcr builds an MCR instruction word for a cp15 selector, condition AL.
func mcr(selector uint32) uint32 {
	return 0xE000_0000 | selector
}

func TestIDCode(t *testing.T) {
	cpu := &fakeCPU{}
	cop := cpucop.New(cpu, nil, nil)

	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mrc(0x00_0000, 3)))
	test.ExpectEquality(t, cpu.Reg(3), uint32(0x6905_2D05))
}

func TestControlRegisterFlushesOnMMUToggle(t *testing.T) {
	cpu := &fakeCPU{control: 0}
	cop := cpucop.New(cpu, nil, nil)

	cpu.regs[0] = 1 // enable MMU bit
	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mcr(0x01_0000)))
	test.ExpectEquality(t, cpu.Control(), uint32(1))
	test.ExpectEquality(t, cpu.flushed, 1)

	// writing the same value again should not flush
	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mcr(0x01_0000)))
	test.ExpectEquality(t, cpu.flushed, 1)
}

func TestTTBRClearsBottomBits(t *testing.T) {
	cpu := &fakeCPU{}
	cop := cpucop.New(cpu, nil, nil)

	cpu.regs[0] = 0xFFFF_FFFF
	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mcr(0x02_0000)))
	test.ExpectEquality(t, cpu.TranslationTableBase(), uint32(0xFFFF_C000))
	test.ExpectEquality(t, cpu.flushed, 1)
}

func TestWaitForInterrupt(t *testing.T) {
	cpu := &fakeCPU{interrupts: 0}
	cpu.regs[15] = 0x1000
	cop := cpucop.New(cpu, nil, nil)

	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mcr(0x07_0080)))
	test.ExpectEquality(t, cpu.regs[15], uint32(0x0FFC))
	test.ExpectEquality(t, cpu.events&0x01, uint32(0x01))
	test.ExpectEquality(t, cpu.cycleCountDelta, uint32(0))
}

func TestWaitForInterruptWithPendingInterruptDoesNotRewindPC(t *testing.T) {
	cpu := &fakeCPU{interrupts: 1}
	cpu.regs[15] = 0x1000
	cop := cpucop.New(cpu, nil, nil)

	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mcr(0x07_0080)))
	test.ExpectEquality(t, cpu.regs[15], uint32(0x1000))
	test.ExpectEquality(t, cpu.events, uint32(0))
}

func TestCleanDCacheFamilyNoopByDefault(t *testing.T) {
	cpu := &fakeCPU{}
	cop := cpucop.New(cpu, nil, nil)

	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mcr(0x07_002A)))
	test.ExpectEquality(t, cpu.flushed, 0)
}

func TestCleanDCacheFamilyFlushesWithLinuxSupport(t *testing.T) {
	cpu := &fakeCPU{}
	prefs := cpucop.NewPreferences()
	test.ExpectSuccess(t, prefs.LinuxSupport.Set(true))
	cop := cpucop.New(cpu, nil, prefs)

	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mcr(0x07_002A)))
	test.ExpectEquality(t, cpu.flushed, 1)
}

func TestTestCleanDCacheReadsReportComplete(t *testing.T) {
	cpu := &fakeCPU{}
	cop := cpucop.New(cpu, nil, nil)

	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mrc(0x07_006A, 2)))
	test.ExpectEquality(t, cpu.Reg(2), uint32(1<<30))
}

func TestMRCDestRd15WritesCPSRFlags(t *testing.T) {
	cpu := &fakeCPU{}
	cop := cpucop.New(cpu, nil, nil)

	// ID code 0x6905_2D05 has its top nibble 0110 -> N=0 Z=1 C=1 V=0
	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mrc(0x00_0000, 15)))
	test.ExpectEquality(t, cpu.cpsrN, false)
	test.ExpectEquality(t, cpu.cpsrZ, true)
	test.ExpectEquality(t, cpu.cpsrC, true)
	test.ExpectEquality(t, cpu.cpsrV, false)
}

func TestUnknownSelectorWarnsAndReturnsZero(t *testing.T) {
	cpu := &fakeCPU{}
	cop := cpucop.New(cpu, nil, nil)

	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(mrc(0x0D_0000, 4)))
	test.ExpectEquality(t, cpu.Reg(4), uint32(0))
}

func TestUnknownSelectorFaultsWhenConfigured(t *testing.T) {
	cpu := &fakeCPU{}
	prefs := cpucop.NewPreferences()
	test.ExpectSuccess(t, prefs.FaultOnUnknownSelector.Set(true))
	cop := cpucop.New(cpu, nil, prefs)

	test.ExpectFailure(t, cop.ExecuteCoprocInstruction(mrc(0x0D_0000, 4)))
}

func TestCP14Delegation(t *testing.T) {
	cpu := &fakeCPU{}
	called := false
	pwrClk := func(specialInstr, isRead bool, opc1, rd, crn, crm, opc2 uint8) bool {
		called = true
		test.ExpectEquality(t, specialInstr, true)
		return true
	}
	cop := cpucop.New(cpu, pwrClk, nil)

	// condition field 0xF selects cp14
	insn := uint32(0xF000_0000)
	test.ExpectSuccess(t, cop.ExecuteCoprocInstruction(insn))
	test.ExpectEquality(t, called, true)
}

func TestCP14FailureFaults(t *testing.T) {
	cpu := &fakeCPU{}
	pwrClk := func(specialInstr, isRead bool, opc1, rd, crn, crm, opc2 uint8) bool {
		return false
	}
	cop := cpucop.New(cpu, pwrClk, nil)

	insn := uint32(0xF000_0000)
	test.ExpectFailure(t, cop.ExecuteCoprocInstruction(insn))
}
