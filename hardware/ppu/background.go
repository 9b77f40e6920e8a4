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

// background is the state of the background fetch and shift logic
type background struct {
	// the values fetched during the current eight dot fetch period
	nametable uint8
	attribute uint8
	patternLo uint8
	patternHi uint8

	// 16 bit shift registers. the high byte holds the data for the tile
	// currently being drawn and the low byte holds the data for the next tile
	shiftLo     uint16
	shiftHi     uint16
	shiftAttrLo uint16
	shiftAttrHi uint16
}

// load the values of the most recent fetch period into the low byte of the
// shift registers. the two bit attribute is expanded to a full byte for each
// bit plane
func (bg *background) load() {
	bg.shiftLo = (bg.shiftLo & 0xff00) | uint16(bg.patternLo)
	bg.shiftHi = (bg.shiftHi & 0xff00) | uint16(bg.patternHi)

	bg.shiftAttrLo &= 0xff00
	if bg.attribute&0x01 == 0x01 {
		bg.shiftAttrLo |= 0x00ff
	}
	bg.shiftAttrHi &= 0xff00
	if bg.attribute&0x02 == 0x02 {
		bg.shiftAttrHi |= 0x00ff
	}
}

func (bg *background) shift() {
	bg.shiftLo <<= 1
	bg.shiftHi <<= 1
	bg.shiftAttrLo <<= 1
	bg.shiftAttrHi <<= 1
}

// pixel returns the pattern value (0 to 3) and the palette number (0 to 3) for
// the fine X scroll value
func (bg *background) pixel(fineX uint8) (uint8, uint8) {
	bit := uint16(0x8000) >> fineX

	var pattern uint8
	if bg.shiftLo&bit != 0 {
		pattern |= 0x01
	}
	if bg.shiftHi&bit != 0 {
		pattern |= 0x02
	}

	var palette uint8
	if bg.shiftAttrLo&bit != 0 {
		palette |= 0x01
	}
	if bg.shiftAttrHi&bit != 0 {
		palette |= 0x02
	}

	return pattern, palette
}

// fetchBackground performs the background memory fetches and scroll register
// updates for the current dot. it should only be called on a visible or
// pre-render scanline when rendering is enabled
func (ppu *PPU) fetchBackground() {
	dot := ppu.Dot

	if (dot >= 2 && dot <= 257) || (dot >= 321 && dot <= 337) {
		ppu.bg.shift()

		switch (dot - 1) % 8 {
		case 0:
			ppu.bg.load()
			ppu.bg.nametable = ppu.read(originNametables | uint16(ppu.v&0x0fff))
		case 2:
			address := uint16(0x23c0) | uint16(ppu.v&nametableMask) | (ppu.v.coarseY()>>2)<<3 | ppu.v.coarseX()>>2
			at := ppu.read(address)
			if ppu.v.coarseY()&0x02 == 0x02 {
				at >>= 4
			}
			if ppu.v.coarseX()&0x02 == 0x02 {
				at >>= 2
			}
			ppu.bg.attribute = at & 0x03
		case 4:
			ppu.bg.patternLo = ppu.read(ppu.bgPatternAddress())
		case 6:
			ppu.bg.patternHi = ppu.read(ppu.bgPatternAddress() + 8)
		case 7:
			ppu.v.incX()
		}
	}

	switch {
	case dot == 256:
		ppu.v.incY()
	case dot == 257:
		ppu.bg.load()
		ppu.v.copyHoriz(ppu.t)
	case dot == 338 || dot == 340:
		// unused nametable fetches
		ppu.bg.nametable = ppu.read(originNametables | uint16(ppu.v&0x0fff))
	case ppu.Scanline == -1 && dot >= 280 && dot <= 304:
		ppu.v.copyVert(ppu.t)
	}
}

func (ppu *PPU) bgPatternAddress() uint16 {
	var table uint16
	if ppu.ctrl&ctrlBgTbl == ctrlBgTbl {
		table = 0x1000
	}
	return table | uint16(ppu.bg.nametable)<<4 | ppu.v.fineY()
}
