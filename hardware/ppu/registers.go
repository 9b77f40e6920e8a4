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

import "github.com/jetsetilly/gophernes/hardware/television/specification"

// PPU register numbers as seen by the CPU. The registers are mirrored every
// eight bytes between $2000 and $3fff.
const (
	RegCtrl uint16 = iota
	RegMask
	RegStatus
	RegOAMAddr
	RegOAMData
	RegScroll
	RegAddr
	RegData
)

// ReadRegister implements the cpubus.ChipRegisters interface.
func (ppu *PPU) ReadRegister(reg uint16, bus uint8) uint8 {
	switch reg & 0x07 {
	case RegStatus:
		// the lower five bits are undriven and come from the I/O latch
		data := ppu.status | ppu.ioLatch&0x1f

		// reading the status register on the dot before vblank prevents the
		// flag being set in this frame
		if ppu.Scanline == ppu.spec.VBlankStart && ppu.Dot == 1 {
			ppu.suppressVBlank = true
		}

		ppu.status &^= statusVBlank
		ppu.w = false
		ppu.ioLatch = data
	case RegOAMData:
		ppu.ioLatch = ppu.readOAM()
	case RegData:
		ppu.ioLatch = ppu.readData()
	}

	return ppu.ioLatch
}

// PeekRegister implements the cpubus.ChipRegisters interface.
func (ppu *PPU) PeekRegister(reg uint16, bus uint8) uint8 {
	switch reg & 0x07 {
	case RegStatus:
		return ppu.status | ppu.ioLatch&0x1f
	case RegOAMData:
		return ppu.readOAM()
	case RegData:
		if ppu.v.address() >= originPalette {
			return ppu.read(ppu.v.address())&0x3f | ppu.ioLatch&0xc0
		}
		return ppu.readBuffer
	}
	return ppu.ioLatch
}

// WriteRegister implements the cpubus.ChipRegisters interface.
func (ppu *PPU) WriteRegister(reg uint16, data uint8) {
	ppu.ioLatch = data

	switch reg & 0x07 {
	case RegCtrl:
		ppu.ctrl = data
		ppu.t = (ppu.t &^ nametableMask) | loopy(data&0x03)<<10

	case RegMask:
		ppu.mask = data

	case RegStatus:
		// read-only

	case RegOAMAddr:
		ppu.oamAddr = data

	case RegOAMData:
		ppu.writeOAM(data)

	case RegScroll:
		if !ppu.w {
			ppu.t = (ppu.t &^ coarseXMask) | loopy(data>>3)
			ppu.x = data & 0x07
		} else {
			ppu.t = (ppu.t &^ (coarseYMask | fineYMask)) | loopy(data&0xf8)<<2 | loopy(data&0x07)<<12
		}
		ppu.w = !ppu.w

	case RegAddr:
		if !ppu.w {
			// bit 14 of t is cleared by the first write
			ppu.t = (ppu.t & 0x00ff) | loopy(data&0x3f)<<8
		} else {
			ppu.t = (ppu.t & 0xff00) | loopy(data)
			ppu.v = ppu.t
		}
		ppu.w = !ppu.w

	case RegData:
		ppu.write(ppu.v.address(), data)
		ppu.incrementData()
	}
}

// WriteOAMDMA writes a byte of OAM through the OAM data register. Used by
// the scheduler when performing OAM DMA.
func (ppu *PPU) WriteOAMDMA(data uint8) {
	ppu.WriteRegister(RegOAMData, data)
}

// the PPU is rendering if either the background or sprites are enabled and
// the current scanline is either a visible scanline or the pre-render
// scanline
func (ppu *PPU) renderingScanline() bool {
	return ppu.Rendering() && ppu.Scanline < specification.VisibleHeight
}

func (ppu *PPU) readOAM() uint8 {
	// secondary OAM is being cleared and the read is of the value being
	// written to it
	if ppu.renderingScanline() && ppu.Scanline >= 0 && ppu.Dot >= 1 && ppu.Dot <= 64 {
		return 0xff
	}
	return ppu.OAM[ppu.oamAddr]
}

func (ppu *PPU) writeOAM(data uint8) {
	// writes during rendering do not change OAM but the address is bumped in
	// the same way as during sprite evaluation
	if ppu.renderingScanline() {
		ppu.oamAddr += 4
		return
	}

	// bits 2 to 4 of the attribute byte do not exist
	if ppu.oamAddr&0x03 == 0x02 {
		data &= 0xe3
	}
	ppu.OAM[ppu.oamAddr] = data
	ppu.oamAddr++
}

func (ppu *PPU) readData() uint8 {
	address := ppu.v.address()

	var data uint8
	if address >= originPalette {
		// palette reads are not buffered but the buffer is filled with the
		// nametable data that is "underneath" the palette
		data = ppu.read(address)&0x3f | ppu.ioLatch&0xc0
		ppu.readBuffer = ppu.read(address - 0x1000)
	} else {
		data = ppu.readBuffer
		ppu.readBuffer = ppu.read(address)
	}

	ppu.incrementData()

	return data
}

// increment the VRAM address after an access of the data register. during
// rendering the increment is replaced by simultaneous coarse X and Y
// increments
func (ppu *PPU) incrementData() {
	if ppu.renderingScanline() {
		ppu.v.incX()
		ppu.v.incY()
		return
	}

	if ppu.ctrl&ctrlIncrement == ctrlIncrement {
		ppu.v += 32
	} else {
		ppu.v++
	}
	ppu.v &= loopyMask
}
