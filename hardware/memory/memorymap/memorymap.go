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

package memorymap

import "fmt"

// Area represents the different areas of memory
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case PPU:
		return "PPU"
	case APU:
		return "APU/IO"
	case TestMode:
		return "Test"
	case Cartridge:
		return "Cartridge"
	}

	return "undefined"
}

// The different memory areas in the NES. The areas are contiguous and do not
// overlap.
const (
	Undefined Area = iota
	RAM
	PPU
	APU
	TestMode
	Cartridge
)

// The origin and memory top for each area of memory. Checking which area an
// address falls within and forcing the address into the normalised range is
// all handled by the MapAddress() function.
const (
	OriginRAM  = uint16(0x0000)
	MemtopRAM  = uint16(0x1fff)
	OriginPPU  = uint16(0x2000)
	MemtopPPU  = uint16(0x3fff)
	OriginAPU  = uint16(0x4000)
	MemtopAPU  = uint16(0x4017)
	OriginTest = uint16(0x4018)
	MemtopTest = uint16(0x401f)
	OriginCart = uint16(0x4020)
	MemtopCart = uint16(0xffff)
)

// The internal RAM and the PPU registers are mirrored through their areas.
// The masks keep only the relevant bits of an address.
const (
	MaskRAM = uint16(0x07ff)
	MaskPPU = uint16(0x0007)
)

// RAMSize is the amount of internal RAM in bytes.
const RAMSize = int(MaskRAM) + 1

// Memtop is the top most address of memory in the NES.
const Memtop = MemtopCart

// MapAddress translates the address argument from mirror space to primary
// space. The returned address is relative to the origin of the area, except
// for the cartridge where the full address is returned because the meaning of
// the address depends on the mapper.
func MapAddress(address uint16) (uint16, Area) {
	switch {
	case address <= MemtopRAM:
		return address & MaskRAM, RAM
	case address <= MemtopPPU:
		return address & MaskPPU, PPU
	case address <= MemtopAPU:
		return address - OriginAPU, APU
	case address <= MemtopTest:
		return address - OriginTest, TestMode
	}
	return address, Cartridge
}

// Summary returns a printable description of the memory map.
func Summary() string {
	return fmt.Sprintf(`%s: %#04x -> %#04x (mirrored every %#x bytes)
%s: %#04x -> %#04x (mirrored every %d bytes)
%s: %#04x -> %#04x
%s: %#04x -> %#04x (disabled)
%s: %#04x -> %#04x`,
		RAM, OriginRAM, MemtopRAM, RAMSize,
		PPU, OriginPPU, MemtopPPU, MaskPPU+1,
		APU, OriginAPU, MemtopAPU,
		TestMode, OriginTest, MemtopTest,
		Cartridge, OriginCart, MemtopCart)
}
