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

// loopy is the 15 bit VRAM address register used for both the current VRAM
// address (v) and the temporary VRAM address (t). The layout of the bits is
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
type loopy uint16

const (
	coarseXMask   = loopy(0x001f)
	coarseYMask   = loopy(0x03e0)
	nametableMask = loopy(0x0c00)
	nametableX    = loopy(0x0400)
	nametableY    = loopy(0x0800)
	fineYMask     = loopy(0x7000)
	horizMask     = coarseXMask | nametableX
	vertMask      = coarseYMask | nametableY | fineYMask
	addressMask   = loopy(0x3fff)
	loopyMask     = loopy(0x7fff)
)

func (l loopy) coarseX() uint16 {
	return uint16(l & coarseXMask)
}

func (l loopy) coarseY() uint16 {
	return uint16(l&coarseYMask) >> 5
}

func (l loopy) fineY() uint16 {
	return uint16(l&fineYMask) >> 12
}

// address is the value placed on the PPU address bus for $2007 accesses
func (l loopy) address() uint16 {
	return uint16(l & addressMask)
}

// incX increments the coarse X scroll, switching horizontal nametable when
// the scroll wraps
func (l *loopy) incX() {
	if *l&coarseXMask == coarseXMask {
		*l &^= coarseXMask
		*l ^= nametableX
	} else {
		*l++
	}
}

// incY increments the fine Y scroll, overflowing into the coarse Y scroll.
// coarse Y wraps at 29 and switches vertical nametable. a coarse Y value of 30
// or 31 (which can only be set by the program) wraps to zero without the switch
func (l *loopy) incY() {
	if *l&fineYMask != fineYMask {
		*l += 0x1000
		return
	}

	*l &^= fineYMask
	y := l.coarseY()
	switch y {
	case 29:
		y = 0
		*l ^= nametableY
	case 31:
		y = 0
	default:
		y++
	}
	*l = (*l &^ coarseYMask) | loopy(y<<5)
}

// copyHoriz copies the horizontal components from the source register
func (l *loopy) copyHoriz(src loopy) {
	*l = (*l &^ horizMask) | (src & horizMask)
}

// copyVert copies the vertical components from the source register
func (l *loopy) copyVert(src loopy) {
	*l = (*l &^ vertMask) | (src & vertMask)
}
