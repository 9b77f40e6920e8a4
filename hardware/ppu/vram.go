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

// the PPU address space
//
//	$0000-$1fff pattern tables (cartridge)
//	$2000-$2fff nametables (mirrored according to the cartridge)
//	$3000-$3eff mirror of the nametables
//	$3f00-$3fff palette memory (32 bytes, mirrored)
const (
	originNametables = uint16(0x2000)
	originPalette    = uint16(0x3f00)
	vramMask         = uint16(0x3fff)
)

// paletteAddress normalises an address in palette memory. entry zero of each
// sprite palette is a mirror of entry zero of the corresponding background
// palette
func paletteAddress(address uint16) uint16 {
	address &= 0x1f
	if address&0x13 == 0x10 {
		address &= 0x0f
	}
	return address
}

// read from the PPU address space
func (ppu *PPU) read(address uint16) uint8 {
	address &= vramMask
	switch {
	case address < originNametables:
		return ppu.cart.ReadCHR(address)
	case address < originPalette:
		return ppu.nametables[ppu.cart.Mirroring().Nametable(address)]
	}
	return ppu.palette[paletteAddress(address)]
}

// write to the PPU address space
func (ppu *PPU) write(address uint16, data uint8) {
	address &= vramMask
	switch {
	case address < originNametables:
		ppu.cart.WriteCHR(address, data)
	case address < originPalette:
		ppu.nametables[ppu.cart.Mirroring().Nametable(address)] = data
	default:
		ppu.palette[paletteAddress(address)] = data & 0x3f
	}
}

// colour returns the palette entry for pixel output. the greyscale bit of the
// mask register is applied
func (ppu *PPU) colour(entry uint16) uint8 {
	c := ppu.palette[paletteAddress(entry)]
	if ppu.mask&maskGreyscale == maskGreyscale {
		c &= 0x30
	}
	return c
}

// Peek returns the value at the address in the PPU address space without side
// effects.
func (ppu *PPU) Peek(address uint16) uint8 {
	return ppu.read(address)
}

// Poke changes the value at the address in the PPU address space. Writes to
// CHR ROM are ignored by the cartridge.
func (ppu *PPU) Poke(address uint16, data uint8) {
	ppu.write(address, data)
}
