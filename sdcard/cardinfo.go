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

import "github.com/jetsetilly/palmcore/sdcard/crc7"

// CardInfo holds the physical, unchanging properties of the card that sit
// outside the SPI state machine: identification fields baked into the CID
// and the write protect switch position. Reset never touches it.
type CardInfo struct {
	ManufacturerID byte
	OEMID          uint16
	ProductName    [5]byte

	// WriteProtectSwitch reflects a mechanical switch on a physical card; it
	// is read by SEND_STATUS and checked before every write block is
	// committed to flash.
	WriteProtectSwitch bool
}

// ocr reports power-up complete with the full 2.7-3.6V operating window
// accepted, the only OCR value a Palm host ever needs to see.
func (c *SDCard) ocr() uint32 {
	return 0x80FF8000
}

// csd returns a minimal, internally consistent CSD register image. The
// fields a Palm host actually inspects are READ_BL_LEN (fixed at 512 bytes,
// matching BlockSize) and the capacity fields; the rest are filled with
// benign placeholder values.
func (c *SDCard) csd() []byte {
	csd := make([]byte, 16)
	csd[0] = 0x00 // CSD_STRUCTURE v1.0
	csd[1] = 0x26 // TAAC
	csd[2] = 0x00 // NSAC
	csd[3] = 0x32 // TRAN_SPEED: 25MHz
	csd[4] = 0x5F // CCC high byte
	csd[5] = 0x59 // CCC low nibble / READ_BL_LEN = 9 (512 bytes)
	csd[6] = 0x00
	csd[7] = 0x00
	csd[8] = 0x00
	csd[9] = 0x00
	csd[10] = 0x7F
	csd[11] = 0x80
	csd[12] = 0x0A
	csd[13] = 0x40
	csd[14] = 0x00
	csd[15] = 0x00
	return csd
}

// cid returns the card identification register. When CRC checking is
// active the caller overwrites the trailing byte with the CRC7 of the
// first 15 bytes, per the SD specification.
func (c *SDCard) cid() []byte {
	cid := make([]byte, 16)
	cid[0] = c.info.ManufacturerID
	cid[1] = byte(c.info.OEMID >> 8)
	cid[2] = byte(c.info.OEMID)
	copy(cid[3:8], c.info.ProductName[:])
	cid[8] = 0x10 // product revision 1.0
	cid[9] = 0x00
	cid[10] = 0x00
	cid[11] = 0x00
	cid[12] = 0x01 // serial number
	cid[13] = 0x01 // manufacturing date
	cid[14] = 0x00
	cid[15] = 0x00
	return cid
}

// signCID recomputes the CRC7 trailer byte of a CID image produced by cid().
func signCID(cid []byte) {
	cid[15] = crc7.Compute(cid[:15])
}

// scr returns the SD configuration register: SCR structure version 1.0,
// SD physical layer spec version 2.00, no erase-reserved support.
func (c *SDCard) scr() []byte {
	return []byte{0x02, 0x35, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00}
}
