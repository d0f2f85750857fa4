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

// Command palmgraph writes a Graphviz .dot file visualising the internal
// state graph of a constructed machine.Machine, the same way the teacher
// project itself uses memviz.Map to dump its command-parser state during
// development (debugger/terminal/commandline/parser_test.go).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/palmcore/machine"
	"github.com/jetsetilly/palmcore/sdcard"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "palmgraph:", err)
		os.Exit(1)
	}
}

func run() error {
	out := flag.String("o", "palmcore.dot", "output .dot file")
	flag.Parse()

	flash := make([]byte, 1024*1024)
	m := machine.New(noopCPU{}, nil, sdcard.CardInfo{
		ManufacturerID: 0x01,
		OEMID:          0x5344,
		ProductName:    [5]byte{'P', 'A', 'L', 'M', '0'},
	}, flash, func() bool { return true }, nil)

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, m)
	fmt.Println("wrote", *out)
	return nil
}

// noopCPU is the smallest possible cpucop.CPU implementation: enough to
// construct a Machine for graphing without a real ARM core attached.
type noopCPU struct{}

func (noopCPU) Control() uint32                   { return 0 }
func (noopCPU) SetControl(uint32)                 {}
func (noopCPU) TranslationTableBase() uint32      { return 0 }
func (noopCPU) SetTranslationTableBase(uint32)    {}
func (noopCPU) DomainAccessControl() uint32       { return 0 }
func (noopCPU) SetDomainAccessControl(uint32)     {}
func (noopCPU) DataFaultStatus() uint32           { return 0 }
func (noopCPU) SetDataFaultStatus(uint32)         {}
func (noopCPU) InstructionFaultStatus() uint32    { return 0 }
func (noopCPU) SetInstructionFaultStatus(uint32)  {}
func (noopCPU) FaultAddress() uint32              { return 0 }
func (noopCPU) SetFaultAddress(uint32)            {}
func (noopCPU) Reg(n int) uint32                  { return 0 }
func (noopCPU) SetReg(n int, value uint32)        {}
func (noopCPU) SetCPSRFlags(n, z, c, v bool)      {}
func (noopCPU) Interrupts() uint32                { return 0 }
func (noopCPU) SetCycleCountDelta(uint32)         {}
func (noopCPU) RaiseEvent(bits uint32)            {}
func (noopCPU) StepPCBack(n uint32)               {}
func (noopCPU) FlushTLB()                         {}
