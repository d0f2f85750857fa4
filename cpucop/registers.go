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

package cpucop

// cp15Entry is one entry of the CP15 selector dispatch table. Either field
// may be nil: a read-only register has no write, a write-only register has
// no read. The selector key itself is `(CRn<<16) | (opc2<<5) | CRm` masked
// with 0x00EF00EF, exactly as laid out over the switch in the original
// source.
type cp15Entry struct {
	read  func(c *CpuCop) uint32
	write func(c *CpuCop, value uint32)
}

// CP15 selector keys. Names follow the source comments; the numeric value
// is `insn & 0x00EF00EF` for the corresponding MRC/MCR encoding.
const (
	selIDCode           = 0x00_0000 // c0, c0, 0
	selCacheType         = 0x00_0020 // c0, c0, 1
	selTCMStatus         = 0x00_0040 // c0, c0, 2
	selControl           = 0x01_0000 // c1, c0, 0
	selTTBR              = 0x02_0000 // c2, c0, 0
	selDACR              = 0x03_0000 // c3, c0, 0
	selDFSR              = 0x05_0000 // c5, c0, 0
	selIFSR              = 0x05_0020 // c5, c0, 1
	selFAR               = 0x06_0000 // c6, c0, 0
	selInvalidateICache  = 0x07_0005 // c7, c5, 0
	selInvalidateICacheL = 0x07_0025 // c7, c5, 1
	selInvalidateBoth    = 0x07_0007 // c7, c7, 0
	selWaitForInterrupt  = 0x07_0080 // c7, c0, 4
	selCleanDCacheLine   = 0x07_002A // c7, c10, 1
	selDrainWriteBuffer  = 0x07_008A // c7, c10, 4
	selCleanInvDCache    = 0x07_002E // c7, c14, 1
	selTestCleanDCache   = 0x07_006A // c7, c10, 3
	selTestCleanInvDCache = 0x07_006E // c7, c14, 3
	selInvalidateDCacheE = 0x07_0026 // c7, c6, 1
	selInvalidateITLB    = 0x08_0005 // c8, c5, 0
	selInvalidateTLB     = 0x08_0007 // c8, c7, 0
	selInvalidateITLBE   = 0x08_0025 // c8, c5, 1
	selInvalidateTLBE    = 0x08_0027 // c8, c7, 1
	selInvalidateDTLB    = 0x08_0006 // c8, c6, 0
	selInvalidateDTLBE   = 0x08_0026 // c8, c6, 1
	selDebugOverride     = 0x0F_0000 // c15, c0, 0
)

func newCP15Table() map[uint32]cp15Entry {
	t := make(map[uint32]cp15Entry)

	t[selIDCode] = cp15Entry{read: func(c *CpuCop) uint32 { return idCode }}
	t[selCacheType] = cp15Entry{read: func(c *CpuCop) uint32 { return cacheType }}
	t[selTCMStatus] = cp15Entry{read: func(c *CpuCop) uint32 { return 0 }}

	t[selControl] = cp15Entry{
		read: func(c *CpuCop) uint32 { return c.cpu.Control() },
		write: func(c *CpuCop, value uint32) {
			changed := value ^ c.cpu.Control()
			c.cpu.SetControl(value)
			if changed&1 != 0 {
				c.cpu.FlushTLB()
			}
		},
	}

	t[selTTBR] = cp15Entry{
		read: func(c *CpuCop) uint32 { return c.cpu.TranslationTableBase() },
		write: func(c *CpuCop, value uint32) {
			c.cpu.SetTranslationTableBase(value &^ 0x3FFF)
			c.cpu.FlushTLB()
		},
	}

	t[selDACR] = cp15Entry{
		read: func(c *CpuCop) uint32 { return c.cpu.DomainAccessControl() },
		write: func(c *CpuCop, value uint32) {
			c.cpu.SetDomainAccessControl(value)
			c.cpu.FlushTLB()
		},
	}

	t[selDFSR] = cp15Entry{
		read:  func(c *CpuCop) uint32 { return c.cpu.DataFaultStatus() },
		write: func(c *CpuCop, value uint32) { c.cpu.SetDataFaultStatus(value) },
	}

	t[selIFSR] = cp15Entry{
		read:  func(c *CpuCop) uint32 { return c.cpu.InstructionFaultStatus() },
		write: func(c *CpuCop, value uint32) { c.cpu.SetInstructionFaultStatus(value) },
	}

	t[selFAR] = cp15Entry{
		read:  func(c *CpuCop) uint32 { return c.cpu.FaultAddress() },
		write: func(c *CpuCop, value uint32) { c.cpu.SetFaultAddress(value) },
	}

	// unconditional address-translation-cache flush: true invalidations of
	// the ICache, DCache and TLB
	flush := cp15Entry{write: func(c *CpuCop, value uint32) { c.cpu.FlushTLB() }}
	t[selInvalidateICache] = flush
	t[selInvalidateICacheL] = flush
	t[selInvalidateBoth] = flush
	t[selInvalidateITLB] = flush
	t[selInvalidateTLB] = flush
	t[selInvalidateITLBE] = flush
	t[selInvalidateTLBE] = flush
	t[selInvalidateDTLB] = flush
	t[selInvalidateDTLBE] = flush

	// clean-DCache family: no-op unless LinuxSupport is enabled, in which
	// case the guest's assumption that this also invalidates is honoured
	cleanDCache := cp15Entry{write: func(c *CpuCop, value uint32) {
		if c.prefs.LinuxSupport.Get() {
			c.cpu.FlushTLB()
		}
	}}
	t[selInvalidateDCacheE] = cleanDCache
	t[selCleanDCacheLine] = cleanDCache
	t[selDrainWriteBuffer] = cleanDCache
	t[selCleanInvDCache] = cleanDCache
	t[selDebugOverride] = cleanDCache

	t[selWaitForInterrupt] = cp15Entry{write: func(c *CpuCop, value uint32) {
		c.cpu.SetCycleCountDelta(0)
		if c.cpu.Interrupts() == 0 {
			c.cpu.StepPCBack(4)
			c.cpu.RaiseEvent(eventWaiting)
		}
	}}

	t[selTestCleanDCache] = cp15Entry{read: func(c *CpuCop) uint32 { return testCleanComplete }}
	t[selTestCleanInvDCache] = cp15Entry{read: func(c *CpuCop) uint32 { return testCleanComplete }}

	return t
}
