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

import "github.com/jetsetilly/palmcore/sdcard/crc16"

// checkWriteCRC verifies the CRC16 trailer of the packet currently in
// runningCommandPacket against the payload it covers.
func (c *SDCard) checkWriteCRC() bool {
	want := uint16(c.runningCommandPacket[blockDataPacketSize-2])<<8 | uint16(c.runningCommandPacket[blockDataPacketSize-1])
	got := crc16.Compute(c.runningCommandPacket[1 : 1+BlockSize])
	return got == want
}

// allOnes returns a size-bit mask of 1s.
func allOnes(size uint8) uint32 {
	if size >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<size - 1
}

// ExchangeXBits clocks size bits (MSB first, 1 <= size <= 32) onto the card
// in one call and returns the size bits the card clocks back.
//
// Whenever it is safe to do so this takes a byte-aligned fast path instead
// of falling through bit by bit, exercising the exact same state
// transitions ExchangeBit would one bit at a time; ExchangeBit remains the
// reference implementation that this path must always agree with.
func (c *SDCard) ExchangeXBits(bits uint32, size uint8) uint32 {
	bits &= allOnes(size)

	if c.flash == nil || c.chipSelect {
		return allOnes(size)
	}

	mask := allOnes(size)
	ignoreCmdBits := c.commandBitsRemaining == 48 && (bits == mask || (bits == 0 && size%2 == 0))

	safeToOptimize := !c.receivingCommand ||
		ignoreCmdBits ||
		(c.commandBitsRemaining > 47 && int(c.commandBitsRemaining)-int(size) < 1)

	if !safeToOptimize {
		return c.exchangeUnoptimized(bits, size)
	}

	switch {
	case c.runningCommand == 0 || c.runningCommand == cmdReadMultipleBlock:
		return c.exchangeReadPath(bits, size, ignoreCmdBits)

	case c.runningCommand == cmdWriteSingleBlock || c.runningCommand == cmdWriteMultipleBlock:
		if out, ok := c.exchangeWritePassthrough(bits, size); ok {
			return out
		}
		return c.exchangeUnoptimized(bits, size)

	default:
		return c.exchangeUnoptimized(bits, size)
	}
}

func (c *SDCard) exchangeUnoptimized(bits uint32, size uint8) uint32 {
	var out uint32
	for i := int(size) - 1; i >= 0; i-- {
		in := bits>>uint(i)&1 != 0
		o := c.ExchangeBit(in)
		out = out<<1 | b2u32(o)
	}
	return out
}

// exchangeReadPath handles the idle and read-data states in bulk. While a
// command frame is being received it falls back to the bit-by-bit path
// unless ignoreCmdBits holds, in which case the bits are dropped without
// touching the command register. It drains the response FIFO a byte at a
// time when size is a multiple of 8 and the FIFO cursor is byte aligned.
func (c *SDCard) exchangeReadPath(bits uint32, size uint8, ignoreCmdBits bool) uint32 {
	if !ignoreCmdBits && c.receivingCommand {
		return c.exchangeUnoptimized(bits, size)
	}
	if !c.responseFifo.ByteAligned() {
		return c.exchangeUnoptimized(bits, size)
	}

	if c.runningCommand == cmdReadMultipleBlock {
		c.topOffReadBuffer()
	}

	switch size {
	case 32, 24, 16, 8:
		var out uint32
		for n := 0; n < int(size); n += 8 {
			out = out<<8 | uint32(c.responseFifo.ReadByteAligned())
		}
		return out
	default:
		return c.exchangeUnoptimized(bits, size)
	}
}

// exchangeWritePassthrough copies size/8 whole bytes directly into the
// packet buffer and drains as many whole bytes from the response FIFO when
// the transfer is already mid-payload and byte aligned on both ends; it
// reports ok=false whenever any of those conditions don't hold, so the
// caller can fall back to the bit-by-bit path.
func (c *SDCard) exchangeWritePassthrough(bits uint32, size uint8) (out uint32, ok bool) {
	if size%8 != 0 || !c.responseFifo.ByteAligned() {
		return 0, false
	}
	if c.runningCommandVars[2]%8 != 0 {
		return 0, false
	}

	currentByte := c.runningCommandVars[2] / 8
	if currentByte == 0 {
		return 0, false
	}
	if int(currentByte)+int(size)/8 >= blockDataPacketSize-1 {
		return 0, false
	}

	nbytes := int(size) / 8
	for n := 0; n < nbytes; n++ {
		shift := uint(nbytes-1-n) * 8
		b := byte(bits >> shift)
		idx := c.runningCommandVars[2] / 8
		c.runningCommandPacket[idx] = b
		c.runningCommandVars[2] += 8
		out = out<<8 | uint32(c.responseFifo.ReadByteAligned())
	}

	return out, true
}
