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

// the maximum number of sprites on a scanline
const spritesPerScanline = 8

// bits in the sprite attribute byte
const (
	attrPalette  = 0x03
	attrPriority = 0x20
	attrFlipH    = 0x40
	attrFlipV    = 0x80
)

// sprite is one of the eight sprite output units
type sprite struct {
	x         uint8
	attribute uint8
	patternLo uint8
	patternHi uint8
}

// sprites is the state of the sprite evaluation and output logic
type sprites struct {
	// the number of sprites found during evaluation
	found int

	// sprite zero was found during evaluation for the next scanline
	zeroNext bool

	// the sprite units for the current scanline
	units [spritesPerScanline]sprite
	count int
	zero  bool
}

func (ppu *PPU) spriteHeight() int {
	if ppu.ctrl&ctrlSprite8x16 == ctrlSprite8x16 {
		return 16
	}
	return 8
}

// inRange returns true if the sprite at y is visible on the scanline
// following the current scanline
func (ppu *PPU) inRange(y uint8) bool {
	row := ppu.Scanline - int(y)
	return row >= 0 && row < ppu.spriteHeight()
}

// clearSecondary fills secondary OAM with 0xff. on hardware this happens over
// dots 1 to 64 and reads of OAM data return 0xff during that period
func (ppu *PPU) clearSecondary() {
	for i := range ppu.secondary {
		ppu.secondary[i] = 0xff
	}
}

// evaluateSprites looks for the first eight sprites that are visible on the
// next scanline and copies them into secondary OAM. on hardware evaluation
// takes place over dots 65 to 256. the result at the end of that period is the
// same as performing the evaluation all at once
//
// the search for a ninth sprite reproduces the hardware bug. once eight sprites
// have been found, the byte being compared to the scanline is advanced along
// with the sprite number, so the comparison is made with the tile, attribute
// and X bytes of subsequent sprites. this causes both false positive and false
// negative overflow detection
func (ppu *PPU) evaluateSprites() {
	ppu.sprites.found = 0
	ppu.sprites.zeroNext = false

	n := 0
	for ; n < 64 && ppu.sprites.found < spritesPerScanline; n++ {
		y := ppu.OAM[n*4]
		s := ppu.sprites.found * 4
		ppu.secondary[s] = y
		if ppu.inRange(y) {
			copy(ppu.secondary[s:s+4], ppu.OAM[n*4:n*4+4])
			ppu.sprites.found++
			if n == 0 {
				ppu.sprites.zeroNext = true
			}
		}
	}

	m := 0
	for ; n < 64; n++ {
		if ppu.inRange(ppu.OAM[n*4+m]) {
			ppu.status |= statusOverflow
			break
		}
		m = (m + 1) & 0x03
	}
}

// fetchSprites loads the sprite units with the pattern data of the sprites in
// secondary OAM. on hardware the fetches take place over dots 257 to 320
func (ppu *PPU) fetchSprites() {
	height := ppu.spriteHeight()

	for i := range spritesPerScanline {
		if i >= ppu.sprites.found {
			ppu.sprites.units[i] = sprite{}
			continue
		}

		y := ppu.secondary[i*4]
		tile := ppu.secondary[i*4+1]
		attr := ppu.secondary[i*4+2]
		x := ppu.secondary[i*4+3]

		row := ppu.Scanline - int(y)
		if attr&attrFlipV == attrFlipV {
			row = height - 1 - row
		}

		var address uint16
		if height == 16 {
			address = uint16(tile&0x01) << 12
			tile &= 0xfe
			if row >= 8 {
				tile++
				row -= 8
			}
		} else if ppu.ctrl&ctrlSpriteTbl == ctrlSpriteTbl {
			address = 0x1000
		}
		address |= uint16(tile)<<4 | uint16(row)

		lo := ppu.read(address)
		hi := ppu.read(address + 8)
		if attr&attrFlipH == attrFlipH {
			lo = reverse(lo)
			hi = reverse(hi)
		}

		ppu.sprites.units[i] = sprite{
			x:         x,
			attribute: attr,
			patternLo: lo,
			patternHi: hi,
		}
	}

	ppu.sprites.count = ppu.sprites.found
	ppu.sprites.zero = ppu.sprites.zeroNext
}

// pixel returns the pattern value, attribute and sprite zero flag of the first
// opaque sprite at the x position
func (spr *sprites) pixel(x int) (uint8, uint8, bool) {
	for i := range spr.count {
		u := &spr.units[i]
		offset := x - int(u.x)
		if offset < 0 || offset > 7 {
			continue
		}

		bit := uint8(0x80) >> offset
		var pattern uint8
		if u.patternLo&bit != 0 {
			pattern |= 0x01
		}
		if u.patternHi&bit != 0 {
			pattern |= 0x02
		}

		if pattern != 0 {
			return pattern, u.attribute, i == 0 && spr.zero
		}
	}
	return 0, 0, false
}

// reverse the order of bits in a byte
func reverse(b uint8) uint8 {
	b = (b&0xf0)>>4 | (b&0x0f)<<4
	b = (b&0xcc)>>2 | (b&0x33)<<2
	b = (b&0xaa)>>1 | (b&0x55)<<1
	return b
}
