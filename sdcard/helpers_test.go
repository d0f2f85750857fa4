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

package sdcard_test

import (
	"github.com/jetsetilly/palmcore/sdcard/crc7"
	"github.com/jetsetilly/palmcore/sdcard/crc16"
)

func sdcardCRC7(cmd byte, arg uint32) byte {
	return crc7.Command(cmd, arg)
}

func sdcardCRC16(data []byte) uint16 {
	return crc16.Compute(data)
}
