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

// Package machine aggregates the CpuCop, SDCard and Sed1376 peripherals
// into the single owned record a host emulator wires onto its bus, rather
// than reaching each of them through process-wide globals. It adds no
// emulation behaviour of its own: construction, Reset and the save-state
// container are pure composition over the three devices' own contracts.
package machine

import (
	"time"

	"github.com/jetsetilly/palmcore/cpucop"
	"github.com/jetsetilly/palmcore/internal/statsview"
	"github.com/jetsetilly/palmcore/prefs"
	"github.com/jetsetilly/palmcore/sdcard"
	"github.com/jetsetilly/palmcore/sed1376"
)

// statsAddr is the fixed listen address for the optional statistics
// server; there is currently no preference cell for it since it is a
// developer aid, not a host-configurable feature.
const statsAddr = "localhost:18066"

// Preferences aggregates every device's configurable behaviour under one
// prefs.Disk, plus the machine-level toggles SPEC_FULL adds for the
// developer-facing tools (cmd/palmview, internal/statsview).
type Preferences struct {
	CpuCop *cpucop.Preferences
	SDCard *sdcard.Preferences

	// StatsServer, when true, starts the optional internal/statsview HTTP
	// server alongside the rest of the machine.
	StatsServer *prefs.Bool
}

// NewPreferences returns Preferences with every device's toggles at their
// documented default.
func NewPreferences() *Preferences {
	return &Preferences{
		CpuCop:      cpucop.NewPreferences(),
		SDCard:      sdcard.NewPreferences(),
		StatsServer: prefs.NewBool(false, nil),
	}
}

// Add registers every preference cell with disk under prefix.
func (p *Preferences) Add(disk *prefs.Disk, prefix string) error {
	if err := p.CpuCop.Add(disk, prefix+".cpucop"); err != nil {
		return err
	}
	if err := p.SDCard.Add(disk, prefix+".sdcard"); err != nil {
		return err
	}
	if err := disk.Add(prefix+".statsServer", p.StatsServer); err != nil {
		return err
	}
	return nil
}

// Machine is the owned record a host wires its bus decoder to, in place of
// the process-wide globals original_source/ reaches each peripheral
// through.
type Machine struct {
	CpuCop  *cpucop.CpuCop
	SDCard  *sdcard.SDCard
	Display *sed1376.Sed1376
	Prefs   *Preferences

	// stats is non-nil only when Prefs.StatsServer was true at
	// construction time.
	stats *statsview.Server
}

// New constructs a Machine from its three devices' own constructor
// arguments. p may be nil, in which case every device uses its documented
// default preferences. When p.StatsServer is true, the optional
// internal/statsview HTTP server is started immediately.
func New(cpu cpucop.CPU, pwrClk cpucop.PwrClkCoprocRegXfer, cardInfo sdcard.CardInfo, flash []byte, pllOn sed1376.PLLSource, p *Preferences) *Machine {
	if p == nil {
		p = NewPreferences()
	}
	m := &Machine{
		CpuCop:  cpucop.New(cpu, pwrClk, p.CpuCop),
		SDCard:  sdcard.New(cardInfo, flash, p.SDCard),
		Display: sed1376.New(pllOn),
		Prefs:   p,
	}
	if p.StatsServer.Get() {
		m.stats = statsview.New(statsAddr)
		m.stats.Start()
	}
	return m
}

// RenderDisplay renders one frame into fb, the same as calling
// m.Display.Render(fb) directly, but also times the call for the
// statistics server when one is running.
func (m *Machine) RenderDisplay(fb []uint16) {
	if m.stats == nil {
		m.Display.Render(fb)
		return
	}
	start := time.Now()
	m.Display.Render(fb)
	m.stats.Counters.RecordRender(time.Since(start).Nanoseconds())
}

// ExchangeCardBit is the bit-serial SD card entry point, instrumented the
// same way RenderDisplay instruments the display: a thin pass-through
// when no statistics server is running.
func (m *Machine) ExchangeCardBit(bit bool) bool {
	out := m.SDCard.ExchangeBit(bit)
	if m.stats != nil {
		m.stats.Counters.RecordCommand()
	}
	return out
}

// Reset restores every device to its power-on state. CpuCop carries no
// state of its own beyond the static CP15 selector table built at
// construction (every register it exposes lives on the injected CPU), so
// there is nothing on it to reset.
func (m *Machine) Reset() {
	m.SDCard.Reset()
	m.Display.Reset()
}
