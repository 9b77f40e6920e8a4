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

package ppu_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/test"
)

// cart is 8K of CHR RAM with fixed mirroring
type cart struct {
	chr       [0x2000]uint8
	mirroring mapper.Mirroring
}

func (c *cart) ReadCHR(address uint16) uint8 {
	return c.chr[address&0x1fff]
}

func (c *cart) WriteCHR(address uint16, data uint8) {
	c.chr[address&0x1fff] = data
}

func (c *cart) Mirroring() mapper.Mirroring {
	return c.mirroring
}

func newPPU(t *testing.T) (*ppu.PPU, *cart) {
	t.Helper()
	c := &cart{mirroring: mapper.Horizontal}
	return ppu.NewPPU(nil, c, &specification.SpecNTSC), c
}

func step(t *testing.T, p *ppu.PPU) ppu.Events {
	t.Helper()
	ev, err := p.Step()
	test.DemandSuccess(t, err)
	return ev
}

// step until the next dot to be executed is at the coordinates
func stepTo(t *testing.T, p *ppu.PPU, scanline int, dot int) {
	t.Helper()
	for p.Scanline != scanline || p.Dot != dot {
		step(t, p)
	}
}

// run a whole frame, returning the number of dots executed
func frame(t *testing.T, p *ppu.PPU) int {
	t.Helper()
	f := p.Frame
	n := 0
	for p.Frame == f {
		step(t, p)
		n++
	}
	return n
}

func setAddress(p *ppu.PPU, address uint16) {
	p.WriteRegister(ppu.RegAddr, uint8(address>>8))
	p.WriteRegister(ppu.RegAddr, uint8(address))
}

// a tile where every pixel uses colour one
func solidTile(p *ppu.PPU, tile uint16) {
	for row := range uint16(8) {
		p.Poke(tile<<4|row, 0xff)
	}
}

// fill the first nametable with the tile
func fillNametable(p *ppu.PPU, tile uint8) {
	for i := range uint16(0x3c0) {
		p.Poke(0x2000+i, tile)
	}
}

func TestVBlankNMI(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(ppu.RegCtrl, 0x80)

	// NMI rises once per frame, immediately after vblank dot is executed
	var edges int
	var prev bool
	for range 3 {
		f := p.Frame
		for p.Frame == f {
			step(t, p)
			if p.NMI() && !prev {
				edges++
				test.ExpectEquality(t, p.Scanline, 241)
				test.ExpectEquality(t, p.Dot, 2)
			}
			prev = p.NMI()
		}
	}
	test.ExpectEquality(t, edges, 3)

	// vblank is cleared on the pre-render scanline
	stepTo(t, p, -1, 2)
	test.ExpectFailure(t, p.VBlank())

	// disabling and enabling NMI during vblank rearms the NMI
	stepTo(t, p, 250, 0)
	test.ExpectSuccess(t, p.NMI())
	p.WriteRegister(ppu.RegCtrl, 0x00)
	test.ExpectFailure(t, p.NMI())
	p.WriteRegister(ppu.RegCtrl, 0x80)
	test.ExpectSuccess(t, p.NMI())
}

func TestStatusRead(t *testing.T) {
	p, _ := newPPU(t)
	stepTo(t, p, 241, 10)

	// undriven bits come from the I/O latch
	p.WriteRegister(ppu.RegOAMAddr, 0x1f)
	test.ExpectEquality(t, p.PeekRegister(ppu.RegStatus, 0), 0x9f)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegStatus, 0), 0x9f)

	// the read cleared the vblank flag
	test.ExpectEquality(t, p.ReadRegister(ppu.RegStatus, 0)&0x80, 0x00)
	test.ExpectFailure(t, p.VBlank())
}

func TestVBlankSuppression(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(ppu.RegCtrl, 0x80)

	// the next dot will set the vblank flag
	stepTo(t, p, 241, 1)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegStatus, 0)&0x80, 0x00)

	for p.Scanline != -1 {
		step(t, p)
		test.ExpectFailure(t, p.VBlank())
		test.ExpectFailure(t, p.NMI())
	}

	// the following frame is unaffected
	stepTo(t, p, 241, 2)
	test.ExpectSuccess(t, p.VBlank())
	test.ExpectSuccess(t, p.NMI())
}

func TestBusyWait(t *testing.T) {
	p, _ := newPPU(t)

	// polling the status register every three dots (one CPU cycle) sees the
	// vblank flag exactly once per frame
	var seen int
	for range 2 * 341 * 262 / 3 {
		for range 3 {
			step(t, p)
		}
		if p.ReadRegister(ppu.RegStatus, 0)&0x80 == 0x80 {
			seen++
		}
	}
	test.ExpectEquality(t, seen, 2)
}

func TestOddFrameSkip(t *testing.T) {
	p, _ := newPPU(t)

	full := 341 * 262

	// rendering disabled. every frame is the same length
	test.ExpectEquality(t, frame(t, p), full)
	test.ExpectEquality(t, frame(t, p), full)

	// rendering enabled. odd frames are one dot shorter
	p.WriteRegister(ppu.RegMask, 0x08)
	test.ExpectEquality(t, frame(t, p), full)
	test.ExpectEquality(t, frame(t, p), full-1)
	test.ExpectEquality(t, frame(t, p), full)

	// no skip on PAL consoles
	c := &cart{}
	pal := ppu.NewPPU(nil, c, &specification.SpecPAL)
	pal.WriteRegister(ppu.RegMask, 0x08)
	test.ExpectEquality(t, frame(t, pal), 341*312)
	test.ExpectEquality(t, frame(t, pal), 341*312)
}

func TestPaletteMirroring(t *testing.T) {
	p, _ := newPPU(t)

	setAddress(p, 0x3f10)
	p.WriteRegister(ppu.RegData, 0x2c)
	test.ExpectEquality(t, p.Peek(0x3f00), 0x2c)

	// mirrored every 32 bytes
	test.ExpectEquality(t, p.Peek(0x3f20), 0x2c)

	// entries 4, 8 and 12 of the sprite palettes are also mirrored
	setAddress(p, 0x3f04)
	p.WriteRegister(ppu.RegData, 0x11)
	test.ExpectEquality(t, p.Peek(0x3f14), 0x11)

	// other sprite palette entries are not
	setAddress(p, 0x3f11)
	p.WriteRegister(ppu.RegData, 0x12)
	test.ExpectEquality(t, p.Peek(0x3f01), 0x00)

	// palette entries are six bits
	setAddress(p, 0x3f02)
	p.WriteRegister(ppu.RegData, 0xff)
	test.ExpectEquality(t, p.Peek(0x3f02), 0x3f)

	// palette reads are not buffered
	setAddress(p, 0x3f10)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegData, 0), 0x2c)
}

func TestBufferedRead(t *testing.T) {
	p, _ := newPPU(t)

	setAddress(p, 0x2000)
	p.WriteRegister(ppu.RegData, 0x55)
	p.WriteRegister(ppu.RegData, 0x66)

	setAddress(p, 0x2000)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegData, 0), 0x00)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegData, 0), 0x55)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegData, 0), 0x66)

	// increment of 32
	p.WriteRegister(ppu.RegCtrl, 0x04)
	setAddress(p, 0x2400)
	p.WriteRegister(ppu.RegData, 0x01)
	p.WriteRegister(ppu.RegData, 0x02)
	test.ExpectEquality(t, p.Peek(0x2400), 0x01)
	test.ExpectEquality(t, p.Peek(0x2420), 0x02)

	// horizontal mirroring
	test.ExpectEquality(t, p.Peek(0x2000), 0x01)
}

func TestMirroringChange(t *testing.T) {
	p, c := newPPU(t)

	p.Poke(0x2800, 0xaa)
	test.ExpectEquality(t, p.Peek(0x2c00), 0xaa)
	test.ExpectEquality(t, p.Peek(0x2400), 0x00)

	// the change is seen on the very next access
	c.mirroring = mapper.Vertical
	test.ExpectEquality(t, p.Peek(0x2800), 0x00)
	test.ExpectEquality(t, p.Peek(0x2400), 0xaa)
}

func TestWriteOnlyRegisters(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(ppu.RegScroll, 0x5a)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegCtrl, 0), 0x5a)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegMask, 0), 0x5a)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegAddr, 0), 0x5a)
}

func TestOAM(t *testing.T) {
	p, _ := newPPU(t)

	p.WriteRegister(ppu.RegOAMAddr, 0x02)
	p.WriteRegister(ppu.RegOAMData, 0xff)
	test.ExpectEquality(t, p.OAM[2], 0xe3)
	p.WriteRegister(ppu.RegOAMData, 0xff)
	test.ExpectEquality(t, p.OAM[3], 0xff)

	// reads do not increment the address
	p.WriteRegister(ppu.RegOAMAddr, 0x03)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegOAMData, 0), 0xff)
	test.ExpectEquality(t, p.ReadRegister(ppu.RegOAMData, 0), 0xff)

	// DMA writes through the data register
	p.WriteRegister(ppu.RegOAMAddr, 0x10)
	p.WriteOAMDMA(0x42)
	test.ExpectEquality(t, p.OAM[0x10], 0x42)
}

func TestOutOfBounds(t *testing.T) {
	p, _ := newPPU(t)
	p.Scanline = 300
	_, err := p.Step()
	test.ExpectSuccess(t, curated.Is(err, ppu.OutOfBounds))
}

func TestEvents(t *testing.T) {
	p, _ := newPPU(t)

	count := func() (int, int) {
		var ready, ticks int
		f := p.Frame
		for p.Frame == f {
			ev := step(t, p)
			if ev.FrameReady {
				ready++
				test.ExpectEquality(t, p.Scanline, 240)
			}
			if ev.ScanlineTick {
				ticks++
			}
		}
		return ready, ticks
	}

	ready, ticks := count()
	test.ExpectEquality(t, ready, 1)
	test.ExpectEquality(t, ticks, 0)

	// one tick for every visible scanline and for the pre-render scanline
	p.WriteRegister(ppu.RegMask, 0x18)
	ready, ticks = count()
	test.ExpectEquality(t, ready, 1)
	test.ExpectEquality(t, ticks, 241)
}

// clear OAM so that every sprite is below the visible picture
func clearOAM(p *ppu.PPU) {
	for i := range p.OAM {
		p.OAM[i] = 0xff
	}
}

func setSprite(p *ppu.PPU, n int, y, tile, attr, x uint8) {
	copy(p.OAM[n*4:], []uint8{y, tile, attr, x})
}

func overflow(p *ppu.PPU) bool {
	return p.PeekRegister(ppu.RegStatus, 0)&0x20 == 0x20
}

func TestSpriteOverflow(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(ppu.RegMask, 0x18)

	// nine sprites on the same scanline
	clearOAM(p)
	for n := range 9 {
		setSprite(p, n, 10, 0, 0, uint8(n*8))
	}
	stepTo(t, p, 9, 100)
	test.ExpectFailure(t, overflow(p))
	stepTo(t, p, 10, 100)
	test.ExpectSuccess(t, overflow(p))

	// the flag is cleared on the pre-render scanline
	stepTo(t, p, -1, 2)
	test.ExpectFailure(t, overflow(p))
}

func TestSpriteOverflowFalsePositive(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(ppu.RegMask, 0x18)

	// eight sprites on the scanline. the tile number of the tenth sprite is
	// compared with the scanline because of the diagonal scan
	clearOAM(p)
	for n := range 8 {
		setSprite(p, n, 10, 0, 0, uint8(n*8))
	}
	setSprite(p, 9, 0xf0, 10, 0, 0)

	stepTo(t, p, 10, 100)
	test.ExpectSuccess(t, overflow(p))
}

func TestSpriteOverflowFalseNegative(t *testing.T) {
	p, _ := newPPU(t)
	p.WriteRegister(ppu.RegMask, 0x18)

	// nine sprites on the scanline but the ninth is missed because the
	// diagonal scan looks at the wrong byte
	clearOAM(p)
	for n := range 8 {
		setSprite(p, n, 10, 0, 0, uint8(n*8))
	}
	setSprite(p, 9, 10, 0xff, 0xff, 0xff)

	stepTo(t, p, 18, 100)
	test.ExpectFailure(t, overflow(p))
}

func sprite0(p *ppu.PPU) bool {
	return p.PeekRegister(ppu.RegStatus, 0)&0x40 == 0x40
}

func TestSprite0Hit(t *testing.T) {
	p, _ := newPPU(t)
	solidTile(p, 1)
	fillNametable(p, 1)
	clearOAM(p)
	setSprite(p, 0, 20, 1, 0, 50)
	p.WriteRegister(ppu.RegMask, 0x1e)

	// the sprite is drawn one scanline below its Y value and the pixel at X is
	// output on dot X+1
	var scanline, dot int
	for !sprite0(p) {
		scanline, dot = p.Scanline, p.Dot
		step(t, p)
		test.DemandSuccess(t, p.Frame == 0)
	}
	test.ExpectEquality(t, scanline, 21)
	test.ExpectEquality(t, dot, 51)

	// cleared on the pre-render scanline
	stepTo(t, p, -1, 2)
	test.ExpectFailure(t, sprite0(p))
}

func TestSprite0HitExceptions(t *testing.T) {
	p, _ := newPPU(t)
	solidTile(p, 1)
	fillNametable(p, 1)

	// no hit at x=255
	clearOAM(p)
	setSprite(p, 0, 20, 1, 0, 255)
	p.WriteRegister(ppu.RegMask, 0x1e)
	frame(t, p)
	test.ExpectFailure(t, sprite0(p))

	// no hit in the clipped left column
	clearOAM(p)
	setSprite(p, 0, 20, 1, 0, 0)
	p.WriteRegister(ppu.RegMask, 0x18)
	frame(t, p)
	test.ExpectFailure(t, sprite0(p))

	// the same sprite with left column clipping disabled
	p.WriteRegister(ppu.RegMask, 0x1e)
	frame(t, p)
	test.ExpectSuccess(t, sprite0(p))

	// no hit if the background is transparent
	fillNametable(p, 0)
	frame(t, p)
	test.ExpectFailure(t, sprite0(p))
}

func TestPixels(t *testing.T) {
	p, _ := newPPU(t)

	// backdrop with rendering disabled
	p.Poke(0x3f00, 0x21)
	p.WriteRegister(ppu.RegMask, 0x20)
	frame(t, p)
	test.ExpectEquality(t, p.Pixels[0].Index(), 0x21)
	test.ExpectEquality(t, p.Pixels[len(p.Pixels)-1].Index(), 0x21)
	test.ExpectEquality(t, p.Pixels[0].Emphasis(), 0x01)

	// background tile using colour one of palette zero
	solidTile(p, 1)
	fillNametable(p, 1)
	p.Poke(0x3f01, 0x16)
	p.WriteRegister(ppu.RegMask, 0x0a)
	frame(t, p)
	test.ExpectEquality(t, p.Pixels[5*256+100].Index(), 0x16)
	test.ExpectEquality(t, p.Pixels[5*256+0].Index(), 0x16)

	// left column clipped to the backdrop
	p.WriteRegister(ppu.RegMask, 0x08)
	frame(t, p)
	test.ExpectEquality(t, p.Pixels[5*256+0].Index(), 0x21)
	test.ExpectEquality(t, p.Pixels[5*256+8].Index(), 0x16)

	// greyscale
	p.WriteRegister(ppu.RegMask, 0x0b)
	frame(t, p)
	test.ExpectEquality(t, p.Pixels[5*256+100].Index(), 0x10)

	// a sprite in front of the background
	clearOAM(p)
	setSprite(p, 0, 20, 1, 0x01, 50)
	p.Poke(0x3f15, 0x2a)
	p.WriteRegister(ppu.RegMask, 0x1e)
	frame(t, p)
	test.ExpectEquality(t, p.Pixels[21*256+50].Index(), 0x2a)
	test.ExpectEquality(t, p.Pixels[21*256+58].Index(), 0x16)
	test.ExpectEquality(t, p.Pixels[20*256+50].Index(), 0x16)

	// and behind the background
	setSprite(p, 0, 20, 1, 0x21, 50)
	frame(t, p)
	test.ExpectEquality(t, p.Pixels[21*256+50].Index(), 0x16)
}

func TestSnapshot(t *testing.T) {
	p, _ := newPPU(t)
	p.Poke(0x3f00, 0x21)
	frame(t, p)

	s := p.Snapshot()
	p.Poke(0x3f00, 0x0f)
	frame(t, p)

	test.ExpectEquality(t, s.Pixels[0].Index(), 0x21)
	test.ExpectEquality(t, p.Pixels[0].Index(), 0x0f)
	test.ExpectEquality(t, s.Frame, 1)
}
