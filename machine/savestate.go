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

package machine

import (
	"encoding/binary"

	"github.com/jetsetilly/palmcore/errors"
)

// SaveState concatenates the SDCard and Sed1376 save blobs, each prefixed
// with its own big-endian uint32 length, so LoadState can split them back
// apart without assuming either device's blob size is fixed across
// versions. CpuCop contributes nothing: it holds no state beyond the CPU
// and power/clock collaborators a host save-state container already owns
// directly.
func (m *Machine) SaveState() []byte {
	sd := m.SDCard.SaveState()
	disp := m.Display.SaveState()

	buf := make([]byte, 0, 4+len(sd)+4+len(disp))
	buf = appendChunk(buf, sd)
	buf = appendChunk(buf, disp)
	return buf
}

func appendChunk(buf []byte, chunk []byte) []byte {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(chunk)))
	buf = append(buf, length[:]...)
	buf = append(buf, chunk...)
	return buf
}

// LoadState restores state previously returned by SaveState.
func (m *Machine) LoadState(data []byte) error {
	sd, rest, err := readChunk(data)
	if err != nil {
		return errors.Errorf(errors.MachineLoadStateError, err)
	}
	disp, rest, err := readChunk(rest)
	if err != nil {
		return errors.Errorf(errors.MachineLoadStateError, err)
	}
	if len(rest) != 0 {
		return errors.Errorf(errors.MachineLoadStateError, "trailing data after display state")
	}

	if err := m.SDCard.LoadState(sd); err != nil {
		return errors.Errorf(errors.MachineLoadStateError, err)
	}
	if err := m.Display.LoadState(disp); err != nil {
		return errors.Errorf(errors.MachineLoadStateError, err)
	}
	return nil
}

func readChunk(data []byte) (chunk []byte, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, errors.Errorf(errors.MachineLoadStateError, "truncated chunk length")
	}
	n := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	if uint32(len(data)) < n {
		return nil, nil, errors.Errorf(errors.MachineLoadStateError, "truncated chunk body")
	}
	return data[:n], data[n:], nil
}
