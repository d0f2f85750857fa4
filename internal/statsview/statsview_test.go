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

package statsview

import "testing"

func TestCountersSnapshot(t *testing.T) {
	var c Counters
	c.RecordRender(1234)
	c.RecordCommand()
	c.RecordCommand()
	c.SetFIFODepth(17)

	render, commands, fifo := c.snapshot()
	if render != 1234 {
		t.Fatalf("render nanos = %d, want 1234", render)
	}
	if commands != 2 {
		t.Fatalf("command count = %d, want 2", commands)
	}
	if fifo != 17 {
		t.Fatalf("fifo depth = %d, want 17", fifo)
	}
}

func TestNewDoesNotStartUntilStart(t *testing.T) {
	s := New("localhost:0")
	if s.started {
		t.Fatalf("server reports started before Start was called")
	}
}
