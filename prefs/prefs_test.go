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

package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/palmcore/prefs"
	"github.com/jetsetilly/palmcore/test"
)

func TestBool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs")

	disk, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)

	b := prefs.NewBool(false, nil)
	test.ExpectSuccess(t, disk.Add("sdcard.crcOverride", b))
	test.ExpectEquality(t, b.Get(), false)

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectEquality(t, b.Get(), true)
	test.ExpectSuccess(t, disk.Save())

	b2 := prefs.NewBool(false, nil)
	disk2, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, disk2.Add("sdcard.crcOverride", b2))
	test.ExpectSuccess(t, disk2.Load())
	test.ExpectEquality(t, b2.Get(), true)
}

func TestString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs")
	disk, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)

	s := prefs.NewString("", nil)
	test.ExpectSuccess(t, disk.Add("cpucop.linuxSupportNote", s))
	test.ExpectSuccess(t, s.Set("hello world"))
	test.ExpectEquality(t, s.Get(), "hello world")
	test.ExpectSuccess(t, disk.Save())

	s2 := prefs.NewString("", nil)
	disk2, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, disk2.Add("cpucop.linuxSupportNote", s2))
	test.ExpectSuccess(t, disk2.Load())
	test.ExpectEquality(t, s2.Get(), "hello world")
}

func TestMaxStringLength(t *testing.T) {
	s := prefs.NewString("", nil)
	s.SetMaxLen(5)
	test.ExpectSuccess(t, s.Set("abcdefgh"))
	test.ExpectEquality(t, s.Get(), "abcde")

	s2 := prefs.NewString("abcdefgh", nil)
	s2.SetMaxLen(3)
	test.ExpectEquality(t, s2.Get(), "abc")
}

func TestFloat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs")
	disk, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)

	f := prefs.NewFloat(0, nil)
	test.ExpectSuccess(t, disk.Add("sed1376.backlight", f))
	test.ExpectSuccess(t, f.Set(0.75))
	test.ExpectApproximate(t, 0.75, f.Get(), 0.0001)
	test.ExpectSuccess(t, disk.Save())

	f2 := prefs.NewFloat(0, nil)
	disk2, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, disk2.Add("sed1376.backlight", f2))
	test.ExpectSuccess(t, disk2.Load())
	test.ExpectApproximate(t, 0.75, f2.Get(), 0.0001)
}

func TestInt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs")
	disk, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)

	n := prefs.NewInt(0, nil)
	test.ExpectSuccess(t, disk.Add("sdcard.responseDelay", n))
	test.ExpectSuccess(t, n.Set(42))
	test.ExpectEquality(t, n.Get(), 42)
	test.ExpectSuccess(t, disk.Save())

	n2 := prefs.NewInt(0, nil)
	disk2, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, disk2.Add("sdcard.responseDelay", n2))
	test.ExpectSuccess(t, disk2.Load())
	test.ExpectEquality(t, n2.Get(), 42)
}

func TestGeneric(t *testing.T) {
	g := prefs.NewGeneric("", nil)
	test.ExpectSuccess(t, g.Set("raw-value"))
	test.ExpectEquality(t, g.Get(), "raw-value")
	test.ExpectEquality(t, g.String(), "raw-value")
}

// TestBoolAndString exercises two unrelated prefs sharing a single disk
// file, and that the file registered by one subsystem's Disk is not
// disturbed by the other's Save.
func TestBoolAndString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs")

	diskA, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)
	b := prefs.NewBool(true, nil)
	test.ExpectSuccess(t, diskA.Add("cpucop.linuxSupport", b))
	test.ExpectSuccess(t, diskA.Save())

	diskB, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)
	s := prefs.NewString("v1", nil)
	test.ExpectSuccess(t, diskB.Add("sdcard.label", s))
	test.ExpectSuccess(t, diskB.Save())

	// reload the first disk: its key should have survived diskB's save
	diskC, err := prefs.NewDisk(path)
	test.ExpectSuccess(t, err)
	b2 := prefs.NewBool(false, nil)
	test.ExpectSuccess(t, diskC.Add("cpucop.linuxSupport", b2))
	test.ExpectSuccess(t, diskC.Load())
	test.ExpectEquality(t, b2.Get(), true)
}
