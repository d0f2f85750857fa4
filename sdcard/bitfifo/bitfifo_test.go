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

package bitfifo_test

import (
	"testing"

	"github.com/jetsetilly/palmcore/sdcard/bitfifo"
	"github.com/jetsetilly/palmcore/test"
)

func TestEmptyReadsIdleHigh(t *testing.T) {
	f := bitfifo.New(8)
	test.ExpectEquality(t, f.ReadBit(), true)
	test.ExpectEquality(t, f.ReadByteAligned(), byte(0xFF))
}

func TestByteWriteBitReadMSBFirst(t *testing.T) {
	f := bitfifo.New(8)
	f.WriteByte(0b1010_0000)

	test.ExpectEquality(t, f.ReadBit(), true)
	test.ExpectEquality(t, f.ReadBit(), false)
	test.ExpectEquality(t, f.ReadBit(), true)
	test.ExpectEquality(t, f.ReadBit(), false)
	for i := 0; i < 4; i++ {
		test.ExpectEquality(t, f.ReadBit(), false)
	}

	// fifo should now be empty again
	test.ExpectEquality(t, f.ByteEntries(), 0)
}

func TestReadByteAlignedRoundTrip(t *testing.T) {
	f := bitfifo.New(8)
	f.WriteBytes([]byte{0xAB, 0xCD})

	test.ExpectEquality(t, f.ByteAligned(), true)
	test.ExpectEquality(t, f.ReadByteAligned(), byte(0xAB))
	test.ExpectEquality(t, f.ReadByteAligned(), byte(0xCD))
	test.ExpectEquality(t, f.ByteEntries(), 0)
}

func TestFlush(t *testing.T) {
	f := bitfifo.New(8)
	f.WriteBytes([]byte{1, 2, 3})
	f.Flush()
	test.ExpectEquality(t, f.ByteEntries(), 0)
	test.ExpectEquality(t, f.ReadBit(), true)
}

func TestFreeBytes(t *testing.T) {
	f := bitfifo.New(4)
	test.ExpectEquality(t, f.FreeBytes(), 4)
	f.WriteByte(1)
	test.ExpectEquality(t, f.FreeBytes(), 3)
}
