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
	"fmt"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/hardware/television/coords"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/logger"
)

// OutOfBounds is the error pattern returned by Step() if the coordinates of
// the PPU are not valid for the specification.
const OutOfBounds = "ppu: dot/scanline out of bounds (%d, %d)"

// Cartridge is the PPU's view of the cartridge.
type Cartridge interface {
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, data uint8)
	Mirroring() mapper.Mirroring
}

// bits in the control register ($2000)
const (
	ctrlIncrement  = 0x04
	ctrlSpriteTbl  = 0x08
	ctrlBgTbl      = 0x10
	ctrlSprite8x16 = 0x20
	ctrlNMI        = 0x80
)

// bits in the mask register ($2001)
const (
	maskGreyscale   = 0x01
	maskBgLeft      = 0x02
	maskSpritesLeft = 0x04
	maskBg          = 0x08
	maskSprites     = 0x10
	maskRendering   = maskBg | maskSprites
)

// bits in the status register ($2002)
const (
	statusOverflow = 0x20
	statusSprite0  = 0x40
	statusVBlank   = 0x80
)

// PPU implements the 2C02 picture processing unit.
type PPU struct {
	env  *environment.Environment
	cart Cartridge
	spec *specification.Spec

	// the CPU visible registers. the OAM address register is the only one of
	// the four that can be read back directly (through the OAM data register)
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	// the internal scroll registers
	v loopy
	t loopy
	x uint8
	w bool

	// the buffer for $2007 reads
	readBuffer uint8

	// the I/O latch is the value seen when reading a write-only register or
	// the undriven bits of the status register
	ioLatch uint8

	// nametable memory. the console has 2KB but the extra 2KB is used by
	// cartridges with four-screen mirroring
	nametables [0x1000]uint8
	palette    [32]uint8

	// object attribute memory and secondary OAM
	OAM       [256]uint8
	secondary [32]uint8

	// the coordinates of the next dot to execute
	Scanline int
	Dot      int
	Frame    int
	oddFrame bool

	// a read of the status register on the dot before the vblank flag is set
	// prevents the flag from being set for that frame
	suppressVBlank bool

	bg      background
	sprites sprites

	// the pixels of the current frame, one entry per dot of the visible
	// picture
	Pixels []specification.Pixel
}

// NewPPU is the preferred method of initialisation for the PPU type. The env
// argument can be nil.
func NewPPU(env *environment.Environment, cart Cartridge, spec *specification.Spec) *PPU {
	ppu := &PPU{
		env:    env,
		cart:   cart,
		spec:   spec,
		Pixels: make([]specification.Pixel, specification.VisibleWidth*specification.VisibleHeight),
	}
	ppu.Reset()
	return ppu
}

// Snapshot creates a copy of the PPU in its current state.
func (ppu *PPU) Snapshot() *PPU {
	n := *ppu
	n.Pixels = make([]specification.Pixel, len(ppu.Pixels))
	copy(n.Pixels, ppu.Pixels)
	return &n
}

// Plumb a new environment and cartridge into the PPU.
func (ppu *PPU) Plumb(env *environment.Environment, cart Cartridge) {
	ppu.env = env
	ppu.cart = cart
}

// Reset the PPU to its power-on state. Palette, OAM and nametable memory are
// randomised if the random state preference is set.
func (ppu *PPU) Reset() {
	ppu.ctrl = 0
	ppu.mask = 0
	ppu.status = 0
	ppu.oamAddr = 0
	ppu.v = 0
	ppu.t = 0
	ppu.x = 0
	ppu.w = false
	ppu.readBuffer = 0
	ppu.ioLatch = 0
	ppu.Scanline = -1
	ppu.Dot = 0
	ppu.Frame = 0
	ppu.oddFrame = false
	ppu.suppressVBlank = false
	ppu.bg = background{}
	ppu.sprites = sprites{}

	clear(ppu.nametables[:])
	clear(ppu.palette[:])
	clear(ppu.OAM[:])
	clear(ppu.Pixels)

	if ppu.env != nil && ppu.env.Prefs.RandomState.Get().(bool) {
		for i := range ppu.OAM {
			ppu.OAM[i] = uint8(ppu.env.Prefs.RandSrc.IntN(0x100))
		}
		for i := range ppu.palette {
			ppu.palette[i] = uint8(ppu.env.Prefs.RandSrc.IntN(0x40))
		}
	}

	logger.Logf(ppu.perm(), "ppu", "reset (%s)", ppu.spec.ID)
}

// SoftReset is the effect of the reset line on the PPU. The control, mask and
// scroll registers are cleared along with the write toggle and the read
// buffer. The VRAM address, OAM and video memory are unchanged.
func (ppu *PPU) SoftReset() {
	ppu.ctrl = 0
	ppu.mask = 0
	ppu.t = 0
	ppu.x = 0
	ppu.w = false
	ppu.readBuffer = 0
	ppu.oddFrame = false

	logger.Log(ppu.perm(), "ppu", "soft reset")
}

// the logging permission for the PPU
func (ppu *PPU) perm() logger.Permission {
	if ppu.env == nil {
		return logger.Allow
	}
	return ppu.env
}

func (ppu *PPU) String() string {
	return fmt.Sprintf("%s ctrl=%02x mask=%02x status=%02x v=%04x t=%04x x=%d w=%v",
		ppu.GetCoords(), ppu.ctrl, ppu.mask, ppu.status, uint16(ppu.v), uint16(ppu.t), ppu.x, ppu.w)
}

// Spec returns the specification the PPU was created with.
func (ppu *PPU) Spec() *specification.Spec {
	return ppu.spec
}

// GetCoords returns the coordinates of the next dot to be executed. Implements
// the random.TV interface.
func (ppu *PPU) GetCoords() coords.TelevisionCoords {
	return coords.TelevisionCoords{
		Frame:    ppu.Frame,
		Scanline: ppu.Scanline,
		Dot:      ppu.Dot,
	}
}

// NMI returns the state of the PPU's NMI output. The output is active when the
// vblank flag is set and NMI generation is enabled in the control register.
// The CPU looks for the rising edge of the output so it is important that the
// output is sampled after every CPU cycle.
func (ppu *PPU) NMI() bool {
	return ppu.status&statusVBlank == statusVBlank && ppu.ctrl&ctrlNMI == ctrlNMI
}

// VBlank returns the state of the vblank flag in the status register without
// side effects.
func (ppu *PPU) VBlank() bool {
	return ppu.status&statusVBlank == statusVBlank
}

// Rendering returns true if either the background or sprites are enabled.
func (ppu *PPU) Rendering() bool {
	return ppu.mask&maskRendering != 0
}

// Palette returns a copy of palette memory.
func (ppu *PPU) Palette() [32]uint8 {
	return ppu.palette
}
