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
	"github.com/jetsetilly/palmcore/errors"
	"github.com/jetsetilly/palmcore/sed1376/regs"
)

// StateSize is the fixed byte length SaveState returns and LoadState
// requires: registers, then the three raw channel LUTs, then RAM, with no
// header. outputLut is never serialised; it is rebuilt from the channel
// LUTs on load.
const StateSize = regs.Size + lutSize*3 + ramSize

// SaveState serialises the controller's persistent state.
func (s *Sed1376) SaveState() []byte {
	buf := make([]byte, StateSize)
	o := 0
	copy(buf[o:], s.registers[:])
	o += len(s.registers)
	copy(buf[o:], s.rLut[:])
	o += len(s.rLut)
	copy(buf[o:], s.gLut[:])
	o += len(s.gLut)
	copy(buf[o:], s.bLut[:])
	o += len(s.bLut)
	copy(buf[o:], s.ram[:])
	return buf
}

// LoadState restores state previously returned by SaveState and rebuilds
// the derived RGB565 palette cache.
func (s *Sed1376) LoadState(data []byte) error {
	if len(data) != StateSize {
		return errors.Errorf(errors.Sed1376SaveStateSize, len(data), StateSize)
	}

	o := 0
	copy(s.registers[:], data[o:])
	o += len(s.registers)
	copy(s.rLut[:], data[o:])
	o += len(s.rLut)
	copy(s.gLut[:], data[o:])
	o += len(s.gLut)
	copy(s.bLut[:], data[o:])
	o += len(s.bLut)
	copy(s.ram[:], data[o:])

	s.refreshOutputLut()

	return nil
}
