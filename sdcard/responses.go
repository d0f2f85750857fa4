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

// idleBit returns r1InIdleState when the card is in the idle state and 0
// otherwise. Every response token that starts with an R1 byte folds this
// bit in directly rather than tracking it separately.
func (c *SDCard) idleBit() byte {
	if c.inIdleState {
		return r1InIdleState
	}
	return 0
}

func (c *SDCard) respondR1(status byte) {
	c.responseFifo.WriteByte(status)
}

// respondR2 queues the two byte R2 response SEND_STATUS uses. The second
// byte folds in the physical write protect switch at the bit SD reserves
// for WP_ERASE_SKIP; there is no erase-sequence state in this model so the
// bit is otherwise unused.
func (c *SDCard) respondR2(status byte, writeProtectSwitch bool) {
	c.responseFifo.WriteByte(status)
	var b2 byte
	if writeProtectSwitch {
		b2 = 0x20
	}
	c.responseFifo.WriteByte(b2)
}

func (c *SDCard) respondR3R7(status byte, ocr uint32) {
	c.responseFifo.WriteByte(status)
	c.responseFifo.WriteByte(byte(ocr >> 24))
	c.responseFifo.WriteByte(byte(ocr >> 16))
	c.responseFifo.WriteByte(byte(ocr >> 8))
	c.responseFifo.WriteByte(byte(ocr))
}

// respondDelay queues n filler bytes at the SPI idle level, simulating the
// card's processing latency before a response is ready.
func (c *SDCard) respondDelay(n int) {
	for i := 0; i < n; i++ {
		c.responseFifo.WriteByte(0xFF)
	}
}

// respondBusy queues n zero bytes, the SPI-mode busy signal a host polls
// for after a multi-block transfer stops.
func (c *SDCard) respondBusy(n int) {
	for i := 0; i < n; i++ {
		c.responseFifo.WriteByte(0x00)
	}
}

func (c *SDCard) respondDataPacket(token byte, data []byte) {
	c.responseFifo.WriteByte(token)
	c.responseFifo.WriteBytes(data)
	crc := crc16.Compute(data)
	c.responseFifo.WriteByte(byte(crc >> 8))
	c.responseFifo.WriteByte(byte(crc))
}

func (c *SDCard) respondErrorToken(bits byte) {
	c.responseFifo.WriteByte(bits)
}

// respondDataResponse queues the single byte a host reads immediately after
// it finishes clocking a write data block in. The low bit is always set;
// status occupies bits 1-3.
func (c *SDCard) respondDataResponse(status byte) {
	c.responseFifo.WriteByte(0x01 | status<<1)
}
