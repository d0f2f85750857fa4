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

package machine_test

import (
	"testing"

	"github.com/jetsetilly/palmcore/machine"
	"github.com/jetsetilly/palmcore/sdcard"
	"github.com/jetsetilly/palmcore/sed1376/regs"
	"github.com/jetsetilly/palmcore/test"
)

type fakeCPU struct {
	control uint32
	regs    [16]uint32
}

func (f *fakeCPU) Control() uint32                   { return f.control }
func (f *fakeCPU) SetControl(v uint32)                { f.control = v }
func (f *fakeCPU) TranslationTableBase() uint32       { return 0 }
func (f *fakeCPU) SetTranslationTableBase(v uint32)   {}
func (f *fakeCPU) DomainAccessControl() uint32        { return 0 }
func (f *fakeCPU) SetDomainAccessControl(v uint32)    {}
func (f *fakeCPU) DataFaultStatus() uint32            { return 0 }
func (f *fakeCPU) SetDataFaultStatus(v uint32)        {}
func (f *fakeCPU) InstructionFaultStatus() uint32     { return 0 }
func (f *fakeCPU) SetInstructionFaultStatus(v uint32) {}
func (f *fakeCPU) FaultAddress() uint32               { return 0 }
func (f *fakeCPU) SetFaultAddress(v uint32)           {}
func (f *fakeCPU) Reg(n int) uint32                   { return f.regs[n] }
func (f *fakeCPU) SetReg(n int, v uint32)             { f.regs[n] = v }
func (f *fakeCPU) SetCPSRFlags(n, z, c, v bool)       {}
func (f *fakeCPU) Interrupts() uint32                 { return 0 }
func (f *fakeCPU) SetCycleCountDelta(v uint32)        {}
func (f *fakeCPU) RaiseEvent(bits uint32)             {}
func (f *fakeCPU) StepPCBack(n uint32)                {}
func (f *fakeCPU) FlushTLB()                          {}

func noPwrClk(specialInstr, isRead bool, opc1, rd, crn, crm, opc2 uint8) bool { return false }

func pllAlwaysOn() bool { return true }

func newMachine(t *testing.T) *machine.Machine {
	t.Helper()
	info := sdcard.CardInfo{ManufacturerID: 0x01, OEMID: 0x4A53, ProductName: [5]byte{'S', 'D', '0', '0', '1'}}
	flash := make([]byte, sdcard.BlockSize*4)
	return machine.New(&fakeCPU{}, noPwrClk, info, flash, pllAlwaysOn, nil)
}

func TestNewAggregatesAllThreeDevices(t *testing.T) {
	m := newMachine(t)
	test.ExpectEquality(t, m.CpuCop != nil, true)
	test.ExpectEquality(t, m.SDCard != nil, true)
	test.ExpectEquality(t, m.Display != nil, true)
}

func TestResetCascadesToDevicesWithState(t *testing.T) {
	m := newMachine(t)
	m.Display.WriteRegister(regs.PwrSaveCfg, 0x01) // set bit 0: power save on
	m.Reset()
	test.ExpectEquality(t, m.Display.PowerSaveEnabled(), false)
}

func TestSaveLoadStateRoundTrip(t *testing.T) {
	m := newMachine(t)
	m.Display.WriteRegister(regs.DispMode, 0x03) // bpp select, arbitrary but stable

	saved := m.SaveState()

	other := newMachine(t)
	err := other.LoadState(saved)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(other.SaveState()), string(saved))
}

func TestLoadStateRejectsTruncatedData(t *testing.T) {
	m := newMachine(t)
	err := m.LoadState([]byte{0, 0, 0})
	test.ExpectFailure(t, err)
}

func TestLoadStateRejectsTrailingData(t *testing.T) {
	m := newMachine(t)
	saved := m.SaveState()
	other := newMachine(t)
	err := other.LoadState(append(saved, 0xFF))
	test.ExpectFailure(t, err)
}

func TestPreferencesDefaultOff(t *testing.T) {
	p := machine.NewPreferences()
	test.ExpectEquality(t, p.StatsServer.Get(), false)
	test.ExpectEquality(t, p.CpuCop.LinuxSupport.Get(), false)
	test.ExpectEquality(t, p.SDCard.AllowInvalidCrcAlways.Get(), false)
}

func TestRenderDisplayWithoutStatsServerIsAPlainPassthrough(t *testing.T) {
	m := newMachine(t)
	fb := make([]uint16, 160*160)
	m.RenderDisplay(fb)
	for _, px := range fb {
		test.ExpectEquality(t, px, uint16(0))
	}
}

func TestExchangeCardBitWithoutStatsServerIsAPlainPassthrough(t *testing.T) {
	m := newMachine(t)
	m.SDCard.SetChipSelect(true) // deselect: every bit exchange returns the pulled-up default.
	test.ExpectEquality(t, m.ExchangeCardBit(false), true)
}
