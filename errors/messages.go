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

package errors

// error messages
const (
	// coprocessor (CP15/CP14)
	CoprocUndefinedInstruction = "coprocessor error: undefined instruction (%#08x)"
	CoprocUnknownSelector      = "coprocessor error: unknown cp15 selector (%#08x)"
	CoprocPwrClkFailed         = "coprocessor error: cp14 power/clock transfer failed (%v)"

	// SD card
	SDCardError         = "sd card error: %v"
	SDCardNoCard        = "sd card error: no card inserted"
	SDCardSaveStateSize = "sd card error: save state buffer has wrong size (got %d, want %d)"

	// SED1376 display controller
	Sed1376Error         = "sed1376 error: %v"
	Sed1376NoRenderer    = "sed1376 error: no renderer for colour=%v bpp=%d"
	Sed1376SaveStateSize = "sed1376 error: save state buffer has wrong size (got %d, want %d)"

	// machine aggregation
	MachineSaveStateError = "machine error: %v"
	MachineLoadStateError = "machine error: %v"

	// preferences
	Prefs         = "prefs: %v"
	PrefsNoFile   = "prefs: no file (%s)"
	PrefsNotValid = "prefs: not a valid prefs file (%s)"
)
