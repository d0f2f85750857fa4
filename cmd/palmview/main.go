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

// Command palmview is a developer viewer for the Sed1376 display
// controller: it drives Render() every frame into an SDL2 window and
// overlays an ImGui debug panel (register dump, palette swatches,
// backlight level, PIP rectangle). It plays the same role for this
// module's display model that gui/sdlplay and gui/sdlimgui play for the
// teacher's TIA image - a consumer of the public Sed1376 API used to
// shake out that API's shape, not a correctness surface of its own.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/palmcore/logger"
	"github.com/jetsetilly/palmcore/sed1376"
)

const (
	windowScale = 3
	windowW     = sed1376.FramebufferWidth * windowScale
	windowH     = sed1376.FramebufferHeight * windowScale
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "palmview:", err)
		logger.Write(os.Stderr)
		os.Exit(1)
	}
}

func run() error {
	demo := flag.Bool("demo", false, "fill the register plane with a test pattern instead of leaving it blank")
	flag.Parse()

	if err := sdl.Init(uint32(sdl.INIT_VIDEO) | uint32(sdl.INIT_TIMER)); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("palmview", int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED),
		int32(windowW), int32(windowH+overlayHeight), uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGB565), int(sdl.TEXTUREACCESS_STREAMING),
		int32(sed1376.FramebufferWidth), int32(sed1376.FramebufferHeight))
	if err != nil {
		return err
	}
	defer texture.Destroy()

	display := sed1376.New(func() bool { return true })
	if *demo {
		seedDemoPattern(display)
	}

	imCtx := imgui.CreateContext(nil)
	defer imCtx.Destroy()
	overlay := newOverlay()

	fb := make([]uint16, sed1376.FramebufferWidth*sed1376.FramebufferHeight)

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				running = false
			}
		}

		display.Render(fb)
		if err := blit(texture, fb); err != nil {
			return err
		}

		renderer.Clear()
		if err := renderer.Copy(texture, nil, &sdl.Rect{X: 0, Y: 0, W: windowW, H: windowH}); err != nil {
			return err
		}
		overlay.draw(renderer, display)
		renderer.Present()

		sdl.Delay(1000 / 30)
	}
	return nil
}

// blit converts the RGB565 framebuffer into the texture's native byte
// layout and uploads it with Texture.Update, the same call the teacher's
// own gui/sdl screen uses rather than the Lock/Unlock streaming API.
func blit(texture *sdl.Texture, fb []uint16) error {
	pixels := make([]byte, sed1376.FramebufferWidth*sed1376.FramebufferHeight*2)
	for i, v := range fb {
		pixels[i*2] = byte(v)
		pixels[i*2+1] = byte(v >> 8)
	}
	return texture.Update(nil, pixels, sed1376.FramebufferWidth*2)
}

// seedDemoPattern writes directly into graphics RAM and register state so
// a developer running palmview without a host CPU attached still sees
// something on screen: 8bpp colour, a diagonal gradient, LCD and PLL
// both reported on.
func seedDemoPattern(s *sed1376.Sed1376) {
	s.WriteRegister(0x02, 0x03) // DISP_MODE: 8bpp
	s.WriteRegister(0x03, 0x40) // PANEL_TYPE: colour
	s.WriteRegister(0x0E, 40)   // LINE_SIZE_0: 40 * 4 = 160 bytes/line
	s.WriteRegister(0x23, 0x01) // GPIO_CONT_0 bit0: LCD on
	for i := 0; i < 256; i++ {
		s.WriteRegister(0x1C, byte(i))       // LUT_R_WRITE
		s.WriteRegister(0x1B, byte(255-i))   // LUT_G_WRITE
		s.WriteRegister(0x1A, byte(i/2))     // LUT_B_WRITE
		s.WriteRegister(0x20, byte(i))       // LUT_WRITE_LOC
	}
	for y := 0; y < sed1376.FramebufferHeight; y++ {
		for x := 0; x < sed1376.FramebufferWidth; x++ {
			s.PokeRAM(y*160+x, byte((x+y)&0xFF))
		}
	}
}
