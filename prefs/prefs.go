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

// Package prefs implements a small disk-backed typed preferences registry.
// Devices that expose a runtime configuration toggle (the CpuCop "Linux
// support" flag, the SD card CRC override) register a typed cell with a
// prefs.Disk rather than reading an environment variable or a bare struct
// field, so the toggle can be inspected, persisted and reloaded uniformly.
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/palmcore/errors"
)

// WarningBoilerPlate is written as the first line of every saved prefs file.
const WarningBoilerPlate = "# this file is automatically generated by palmcore - changes made while the emulation is running will be overwritten"

// Value is the type used to set or report a preference's value. Concrete
// preference types accept whichever concrete types make sense for them
// (bool, string, int, float64) in addition to a string, which is how values
// loaded from disk are always presented.
type Value interface{}

// Pref is implemented by every typed preference cell.
type Pref interface {
	Set(Value) error
	String() string
}

// Disk is a registry of named preference cells backed by a single file on
// disk. Entries in the file that are not bound to a registered Pref are
// preserved verbatim across Save/Load, so two Disk instances opened for
// different subsystems but the same file do not clobber each other.
type Disk struct {
	filename string
	raw      map[string]string
	prefs    map[string]Pref
}

// NewDisk prepares a Disk for the named file. The file is not read until
// Load or Save is called.
func NewDisk(filename string) (*Disk, error) {
	return &Disk{
		filename: filename,
		raw:      make(map[string]string),
		prefs:    make(map[string]Pref),
	}, nil
}

// Add registers a preference cell under key. If the file has already been
// loaded and contains a value for key, the cell is set from that value.
func (d *Disk) Add(key string, p Pref) error {
	if _, ok := d.prefs[key]; ok {
		return errors.Errorf(errors.Prefs, fmt.Sprintf("duplicate key %q", key))
	}
	d.prefs[key] = p
	if v, ok := d.raw[key]; ok {
		if err := p.Set(v); err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
	}
	return nil
}

func (d *Disk) readLines(merge bool) error {
	f, err := os.Open(d.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Errorf(errors.Prefs, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "::", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		if merge {
			if _, ok := d.raw[key]; ok {
				continue
			}
		}
		d.raw[key] = val
	}

	if err := scanner.Err(); err != nil {
		return errors.Errorf(errors.Prefs, err)
	}
	return nil
}

// Load reads the file from disk and applies every entry that has a
// registered preference cell.
func (d *Disk) Load() error {
	if err := d.readLines(false); err != nil {
		return err
	}
	for key, p := range d.prefs {
		if v, ok := d.raw[key]; ok {
			if err := p.Set(v); err != nil {
				return errors.Errorf(errors.Prefs, err)
			}
		}
	}
	return nil
}

// Save writes every registered preference's current value to disk,
// preserving any unregistered entries already present in the file.
func (d *Disk) Save() error {
	if err := d.readLines(true); err != nil {
		return err
	}

	for key, p := range d.prefs {
		d.raw[key] = p.String()
	}

	keys := make([]string, 0, len(d.raw))
	for k := range d.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(d.filename)
	if err != nil {
		return errors.Errorf(errors.Prefs, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, WarningBoilerPlate); err != nil {
		return errors.Errorf(errors.Prefs, err)
	}
	for _, k := range keys {
		if _, err := fmt.Fprintf(f, "%s :: %s\n", k, d.raw[k]); err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
	}

	return nil
}
