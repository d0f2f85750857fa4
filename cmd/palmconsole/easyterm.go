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

package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/term/termios"
)

// easyTerm is a trimmed port of debugger/terminal/colorterm/easyterm: just
// enough raw-mode enter/restore to read hand-typed hex bytes one line at a
// time without the host shell doing its own line editing.
type easyTerm struct {
	input *os.File

	canAttr syscall.Termios
	rawAttr syscall.Termios
}

func newEasyTerm(input *os.File) (*easyTerm, error) {
	if input == nil {
		return nil, fmt.Errorf("palmconsole: easyterm requires an input file")
	}
	et := &easyTerm{input: input}
	if err := termios.Tcgetattr(et.input.Fd(), &et.canAttr); err != nil {
		return nil, fmt.Errorf("palmconsole: %w", err)
	}
	termios.Cfmakeraw(&et.rawAttr)
	return et, nil
}

func (et *easyTerm) RawMode() {
	termios.Tcsetattr(et.input.Fd(), termios.TCIFLUSH, &et.rawAttr)
}

func (et *easyTerm) CanonicalMode() {
	termios.Tcsetattr(et.input.Fd(), termios.TCIFLUSH, &et.canAttr)
}
