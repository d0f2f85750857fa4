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

import "github.com/jetsetilly/palmcore/prefs"

// Preferences holds the SD card's configurable behaviour. Unlike the rest
// of the card's state this is not reset between sessions.
type Preferences struct {
	// AllowInvalidCrcAlways makes the card accept every command and data
	// block regardless of its CRC, as GO_IDLE_STATE does implicitly for the
	// remainder of a session once CRC_ON_OFF hasn't been seen.
	AllowInvalidCrcAlways *prefs.Bool
}

// NewPreferences returns Preferences with every value at its default.
func NewPreferences() *Preferences {
	return &Preferences{
		AllowInvalidCrcAlways: prefs.NewBool(false, nil),
	}
}

// Add registers every field of p with disk under prefix.
func (p *Preferences) Add(disk *prefs.Disk, prefix string) error {
	return disk.Add(prefix+".allowInvalidCrcAlways", p.AllowInvalidCrcAlways)
}
