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

// Package cpucop implements the ARMv5 CP15 (MMU/cache/TLB) and CP14
// (power/clock) coprocessor instruction dispatch used by a PXA26x-class
// core. It is a synchronous register bridge: no internal threads, no
// suspension points, one operation per coprocessor instruction.
package cpucop

import (
	"github.com/jetsetilly/palmcore/errors"
	"github.com/jetsetilly/palmcore/logger"
	"github.com/jetsetilly/palmcore/prefs"
)

// idCode is the CP15 ID Code Register value for a PXA261 core.
const idCode = 0x6905_2D05

// cacheType is the CP15 Cache Type Register value: 16KB 4-way 8-word
// ICache, 8KB 4-way 8-word DCache.
const cacheType = 0x1D11_2152

// testCleanComplete is returned by the test-and-clean-DCache reads so that
// guest polling loops waiting for completion terminate immediately.
const testCleanComplete = 1 << 30

// eventWaiting mirrors the external CPU's cpu_events bit for "core is
// halted in wait-for-interrupt".
const eventWaiting = 0x01

// CPU is the subset of ARM core state CpuCop reads and writes. A concrete
// ARM core implementation is an external collaborator (out of scope); this
// interface is the entire compiled dependency CpuCop has on it, the way the
// teacher's peripherals depend on a narrow memorymodel.Map rather than a
// concrete bus.
type CPU interface {
	Control() uint32
	SetControl(uint32)

	TranslationTableBase() uint32
	SetTranslationTableBase(uint32)

	DomainAccessControl() uint32
	SetDomainAccessControl(uint32)

	DataFaultStatus() uint32
	SetDataFaultStatus(uint32)

	InstructionFaultStatus() uint32
	SetInstructionFaultStatus(uint32)

	FaultAddress() uint32
	SetFaultAddress(uint32)

	Reg(n int) uint32
	SetReg(n int, value uint32)

	SetCPSRFlags(n, z, c, v bool)

	// Interrupts reports the number of interrupts currently pending. Zero
	// means none pending.
	Interrupts() uint32

	// SetCycleCountDelta resets the remaining-cycles counter used by the
	// core's run loop.
	SetCycleCountDelta(uint32)

	// RaiseEvent ORs bits into the core's cpu_events word.
	RaiseEvent(bits uint32)

	// StepPCBack rewinds the program counter by n bytes, so an instruction
	// re-executes the next time the core runs (used by wait-for-interrupt).
	StepPCBack(n uint32)

	// FlushTLB invalidates the address-translation cache. The actual
	// MMU/TLB implementation belongs to the external core.
	FlushTLB()
}

// PwrClkCoprocRegXfer delegates a CP14 (power/clock) coprocessor transfer
// to the external power/clock peripheral. It mirrors
// pxa255pwrClkPrvCoprocRegXferFunc: specialInstr is true for the
// conditional-long-form encoding (cond field == 0xF); isRead distinguishes
// MRC from MCR; the remaining parameters are the raw instruction fields.
// A false return means the transfer does not correspond to a real
// power/clock register and the instruction faults.
type PwrClkCoprocRegXfer func(specialInstr, isRead bool, opc1, Rd, CRn, CRm, opc2 uint8) bool

// Preferences holds the runtime-configurable behaviour of a CpuCop,
// registered with a prefs.Disk by whatever owns the CpuCop instance.
type Preferences struct {
	// LinuxSupport, when true, makes the clean-DCache family of CP15
	// writes flush the address-translation cache, a workaround some guest
	// kernels need to boot correctly. The original source expressed this
	// as a compile-time #ifdef; here it is a runtime toggle.
	LinuxSupport *prefs.Bool

	// FaultOnUnknownSelector, when true, makes an unrecognised CP15
	// selector raise UndefinedInstruction instead of warning and
	// continuing. Off by default, matching the "never fault the CPU on an
	// unknown selector" rule.
	FaultOnUnknownSelector *prefs.Bool
}

// NewPreferences returns Preferences with every toggle at its documented
// default (off).
func NewPreferences() *Preferences {
	return &Preferences{
		LinuxSupport:           prefs.NewBool(false, nil),
		FaultOnUnknownSelector: prefs.NewBool(false, nil),
	}
}

// Add registers every preference cell with disk under the given key prefix.
func (p *Preferences) Add(disk *prefs.Disk, prefix string) error {
	if err := disk.Add(prefix+".linuxSupport", p.LinuxSupport); err != nil {
		return err
	}
	if err := disk.Add(prefix+".faultOnUnknownSelector", p.FaultOnUnknownSelector); err != nil {
		return err
	}
	return nil
}

// CpuCop is the CP15/CP14 coprocessor interface for a single ARM core.
type CpuCop struct {
	cpu     CPU
	pwrClk  PwrClkCoprocRegXfer
	prefs   *Preferences
	cp15    map[uint32]cp15Entry
}

// New constructs a CpuCop bound to the given CPU state and power/clock
// transfer function. p may be nil, in which case default (off) behaviour
// is used for every toggle.
func New(cpu CPU, pwrClk PwrClkCoprocRegXfer, p *Preferences) *CpuCop {
	if p == nil {
		p = NewPreferences()
	}
	c := &CpuCop{
		cpu:   cpu,
		pwrClk: pwrClk,
		prefs: p,
	}
	c.cp15 = newCP15Table()
	return c
}

// ExecuteCoprocInstruction decodes and executes a single coprocessor
// instruction. It never panics. It returns an error when a CP14 transfer is
// refused by the PwrClk hook (or no hook is set), and, only when
// FaultOnUnknownSelector is enabled, for an unrecognised CP15 selector.
func (c *CpuCop) ExecuteCoprocInstruction(insn uint32) error {
	cond := insn >> 28 & 0xF
	if cond == 0xF {
		return c.executeCP14(insn)
	}
	return c.executeCP15(insn)
}

func (c *CpuCop) executeCP15(insn uint32) error {
	isRead := insn&0x0010_0000 != 0
	key := insn & 0x00EF_00EF

	entry, ok := c.cp15[key]
	if !ok {
		logger.Logf(logger.Allow, "CPUCOP", "unknown cp15 selector (insn %#08x, key %#08x)", insn, key)
		if c.prefs.FaultOnUnknownSelector.Get() {
			return errors.Errorf(errors.CoprocUnknownSelector, key)
		}
		if isRead {
			c.mrcDest(insn, 0)
		}
		return nil
	}

	if isRead {
		if entry.read == nil {
			return nil
		}
		c.mrcDest(insn, entry.read(c))
		return nil
	}

	if entry.write == nil {
		return nil
	}
	value := c.cpu.Reg(int(insn >> 12 & 0xF))
	entry.write(c, value)
	return nil
}

// mrcDest routes an MRC result either to the CPSR NZCV flags (Rd==15) or to
// the destination register.
func (c *CpuCop) mrcDest(insn uint32, value uint32) {
	rd := int(insn >> 12 & 0xF)
	if rd == 15 {
		c.cpu.SetCPSRFlags(
			value>>31&1 != 0,
			value>>30&1 != 0,
			value>>29&1 != 0,
			value>>28&1 != 0,
		)
		return
	}
	c.cpu.SetReg(rd, value)
}

func (c *CpuCop) executeCP14(insn uint32) error {
	specialInstr := true
	isRead := insn&0x0010_0000 != 0
	opc1 := uint8(insn >> 21 & 0x07)
	rd := uint8(insn >> 12 & 0x0F)
	crn := uint8(insn >> 16 & 0x0F)
	crm := uint8(insn & 0x0F)
	opc2 := uint8(insn >> 5 & 0x07)

	if c.pwrClk == nil || !c.pwrClk(specialInstr, isRead, opc1, rd, crn, crm, opc2) {
		return errors.Errorf(errors.CoprocPwrClkFailed, insn)
	}
	return nil
}
