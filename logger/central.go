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

package logger

import "io"

// centralCapacity is generous enough to survive a full frame's worth of
// SD card and SED1376 tracing without wrapping.
const centralCapacity = 2048

var central = NewLogger(centralCapacity)

// Log records detail under tag in the central log, provided permission
// allows it. Most peripheral code uses this package-level form rather than
// creating a private Logger.
func Log(permission Permission, tag string, detail interface{}) {
	central.Log(permission, tag, detail)
}

// Logf is Log with fmt.Sprintf formatting of detail.
func Logf(permission Permission, tag string, format string, args ...interface{}) {
	central.Logf(permission, tag, format, args...)
}

// Clear empties the central log.
func Clear() {
	central.Clear()
}

// Write writes every entry in the central log to w.
func Write(w io.Writer) {
	central.Write(w)
}

// Tail writes the most recent n entries in the central log to w.
func Tail(w io.Writer, n int) {
	central.Tail(w, n)
}
