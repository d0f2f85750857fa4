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

package sdcard

import (
	"encoding/binary"

	"github.com/jetsetilly/palmcore/errors"
)

// saveStateSize is fixed: command (8) + commandBitsRemaining (4) +
// receivingCommand (1) + runningCommand (1) + runningCommandVars (12) +
// runningCommandPacket (blockDataPacketSize) + commandIsAcmd (1) +
// allowInvalidCrc (1) + inIdleState (1) + chipSelect (1).
const saveStateSize = 8 + 4 + 1 + 1 + 12 + blockDataPacketSize + 1 + 1 + 1 + 1

// SaveState serialises every part of the card's protocol state that isn't
// derivable from CardInfo or the flash contents: command framing progress,
// the in-flight multi-block transfer, and session flags. The response FIFO
// is not preserved; it always sits empty at a command boundary, the only
// point a host is expected to save state at.
func (c *SDCard) SaveState() []byte {
	buf := make([]byte, saveStateSize)
	o := 0

	binary.BigEndian.PutUint64(buf[o:], c.command)
	o += 8
	binary.BigEndian.PutUint32(buf[o:], uint32(c.commandBitsRemaining))
	o += 4
	buf[o] = boolByte(c.receivingCommand)
	o++
	buf[o] = c.runningCommand
	o++
	for i := 0; i < 3; i++ {
		binary.BigEndian.PutUint32(buf[o:], c.runningCommandVars[i])
		o += 4
	}
	copy(buf[o:], c.runningCommandPacket[:])
	o += blockDataPacketSize
	buf[o] = boolByte(c.commandIsAcmd)
	o++
	buf[o] = boolByte(c.allowInvalidCrc)
	o++
	buf[o] = boolByte(c.inIdleState)
	o++
	buf[o] = boolByte(c.chipSelect)

	return buf
}

// LoadState restores state previously returned by SaveState.
func (c *SDCard) LoadState(data []byte) error {
	if len(data) != saveStateSize {
		return errors.Errorf(errors.SDCardSaveStateSize, len(data), saveStateSize)
	}

	o := 0
	c.command = binary.BigEndian.Uint64(data[o:])
	o += 8
	c.commandBitsRemaining = int(binary.BigEndian.Uint32(data[o:]))
	o += 4
	c.receivingCommand = data[o] != 0
	o++
	c.runningCommand = data[o]
	o++
	for i := 0; i < 3; i++ {
		c.runningCommandVars[i] = binary.BigEndian.Uint32(data[o:])
		o += 4
	}
	copy(c.runningCommandPacket[:], data[o:o+blockDataPacketSize])
	o += blockDataPacketSize
	c.commandIsAcmd = data[o] != 0
	o++
	c.allowInvalidCrc = data[o] != 0
	o++
	c.inIdleState = data[o] != 0
	o++
	c.chipSelect = data[o] != 0

	c.responseFifo.Flush()

	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
