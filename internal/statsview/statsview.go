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

// Package statsview starts an optional HTTP statistics server exposing
// live runtime charts, the same role the teacher project's own declared
// go-echarts/statsview dependency plays during play-mode profiling. It is
// started only when machine.Preferences.StatsServer is enabled; nothing
// in this core depends on it being up.
package statsview

import (
	"sync"
	"sync/atomic"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Counters tracks the SPEC_FULL-added machine metrics: render duration,
// SD card activity and the response FIFO's current depth. They are plain
// atomics rather than anything statsview-specific. Start does not
// register them with the viewer, so the server shows only statsview's own
// built-in goroutine/memory/GC charts.
type Counters struct {
	renderNanos    int64
	commandCount   int64
	fifoDepthBytes int64
}

// RecordRender stores the duration (in nanoseconds) of the most recently
// completed Sed1376.Render call.
func (c *Counters) RecordRender(nanos int64) {
	atomic.StoreInt64(&c.renderNanos, nanos)
}

// RecordCommand increments the running SD card activity count.
// Machine.ExchangeCardBit calls it once per bit exchanged, so the count is
// of bit exchanges, not of decoded commands.
func (c *Counters) RecordCommand() {
	atomic.AddInt64(&c.commandCount, 1)
}

// SetFIFODepth stores the response FIFO's current queued byte count.
func (c *Counters) SetFIFODepth(n int) {
	atomic.StoreInt64(&c.fifoDepthBytes, int64(n))
}

func (c *Counters) snapshot() (renderNanos, commandCount, fifoDepthBytes int64) {
	return atomic.LoadInt64(&c.renderNanos),
		atomic.LoadInt64(&c.commandCount),
		atomic.LoadInt64(&c.fifoDepthBytes)
}

// Server wraps a statsview.Viewer's lifecycle: Start launches the HTTP
// server on a background goroutine (statsview.Viewer has no graceful
// Stop of its own, matching how the teacher's own dependency is a
// fire-and-forget debug aid rather than a managed service).
type Server struct {
	Counters Counters

	addr string

	mu      sync.Mutex
	started bool
}

// New returns a Server that will listen on addr (e.g. "localhost:18066")
// once Start is called.
func New(addr string) *Server {
	return &Server{addr: addr}
}

// Start launches the statsview HTTP server in the background. Calling
// Start more than once is a no-op.
func (s *Server) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	mgr := statsview.New(viewer.WithAddr(s.addr))
	go mgr.Start()
}
