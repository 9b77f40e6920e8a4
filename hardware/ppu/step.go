// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

package ppu

import (
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
)

// Events produced by a single dot.
type Events struct {
	// the last visible scanline has been completed. the Pixels field holds
	// the complete picture
	FrameReady bool

	// the scanline counter of the cartridge should be clocked. on hardware
	// this is caused by the PPU address line A12 rising during the sprite
	// pattern fetches
	ScanlineTick bool
}

// dots at which important events occur
const (
	dotVBlank        = 1
	dotSecondaryDone = 64
	dotEvaluate      = 65
	dotFetchSprites  = 257
	dotOAMAddrEnd    = 320
	dotScanlineTick  = 260
	dotOddFrameSkip  = 339
)

// Step advances the PPU by one dot.
func (ppu *PPU) Step() (Events, error) {
	var ev Events

	if ppu.Scanline < -1 || ppu.Scanline > ppu.spec.LastScanline || ppu.Dot < 0 || ppu.Dot > specification.LastDot {
		return ev, curated.Errorf(OutOfBounds, ppu.Dot, ppu.Scanline)
	}

	switch {
	case ppu.Scanline == -1:
		ppu.preRender(&ev)
	case ppu.Scanline < specification.VisibleHeight:
		ppu.visible(&ev)
	case ppu.Scanline == specification.VisibleHeight:
		if ppu.Dot == 0 {
			ev.FrameReady = true
		}
	case ppu.Scanline == ppu.spec.VBlankStart:
		if ppu.Dot == dotVBlank {
			if !ppu.suppressVBlank {
				ppu.status |= statusVBlank
			}
			ppu.suppressVBlank = false
		}
	}

	ppu.advance()

	return ev, nil
}

// advance the coordinates to the next dot
func (ppu *PPU) advance() {
	// the last dot of the pre-render scanline is skipped on odd frames
	if ppu.Scanline == -1 && ppu.Dot == dotOddFrameSkip && ppu.oddFrame && ppu.Rendering() && ppu.spec.OddFrameSkip {
		ppu.Dot = specification.LastDot
	}

	ppu.Dot++
	if ppu.Dot > specification.LastDot {
		ppu.Dot = 0
		ppu.Scanline++
		if ppu.Scanline > ppu.spec.LastScanline {
			ppu.Scanline = -1
			ppu.Frame++
			ppu.oddFrame = !ppu.oddFrame
		}
	}
}

func (ppu *PPU) preRender(ev *Events) {
	if ppu.Dot == 1 {
		ppu.status &^= statusVBlank | statusSprite0 | statusOverflow
		ppu.sprites.found = 0
		ppu.sprites.zeroNext = false
	}

	if !ppu.Rendering() {
		return
	}

	ppu.fetchBackground()
	ppu.spriteTiming(ev)
}

func (ppu *PPU) visible(ev *Events) {
	if ppu.Rendering() {
		switch ppu.Dot {
		case 1:
			ppu.clearSecondary()
		case dotEvaluate:
			ppu.evaluateSprites()
		}
		ppu.fetchBackground()
		ppu.spriteTiming(ev)
	}

	if ppu.Dot >= 1 && ppu.Dot <= specification.VisibleWidth {
		ppu.pixel()
	}
}

// sprite fetches and the events that happen at the same time. common to the
// visible scanlines and the pre-render scanline
func (ppu *PPU) spriteTiming(ev *Events) {
	if ppu.Dot >= dotFetchSprites && ppu.Dot <= dotOAMAddrEnd {
		ppu.oamAddr = 0
	}
	switch ppu.Dot {
	case dotFetchSprites:
		ppu.fetchSprites()
	case dotScanlineTick:
		ev.ScanlineTick = true
	}
}

// pixel composes the background and sprite pixels for the current dot and
// writes the result to the Pixels array
func (ppu *PPU) pixel() {
	x := ppu.Dot - 1

	var entry uint16

	if !ppu.Rendering() {
		// when rendering is disabled the backdrop colour is output unless the
		// VRAM address is pointing to palette memory
		if ppu.v.address() >= originPalette {
			entry = ppu.v.address()
		}
	} else {
		var bgPattern, bgPalette uint8
		if ppu.mask&maskBg == maskBg && (x >= 8 || ppu.mask&maskBgLeft == maskBgLeft) {
			bgPattern, bgPalette = ppu.bg.pixel(ppu.x)
		}

		var spPattern, spAttr uint8
		var zero bool
		if ppu.mask&maskSprites == maskSprites && (x >= 8 || ppu.mask&maskSpritesLeft == maskSpritesLeft) {
			spPattern, spAttr, zero = ppu.sprites.pixel(x)
		}

		switch {
		case bgPattern == 0 && spPattern == 0:
			entry = 0
		case spPattern == 0:
			entry = uint16(bgPalette)<<2 | uint16(bgPattern)
		case bgPattern == 0:
			entry = 0x10 | uint16(spAttr&attrPalette)<<2 | uint16(spPattern)
		default:
			if zero && x != 255 {
				ppu.status |= statusSprite0
			}
			if spAttr&attrPriority == attrPriority {
				entry = uint16(bgPalette)<<2 | uint16(bgPattern)
			} else {
				entry = 0x10 | uint16(spAttr&attrPalette)<<2 | uint16(spPattern)
			}
		}
	}

	ppu.Pixels[ppu.Scanline*specification.VisibleWidth+x] = specification.NewPixel(ppu.colour(entry), ppu.mask)
}
