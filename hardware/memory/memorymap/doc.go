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

// Package memorymap facilitates the translation of addresses to primary
// address equivalents.
//
// The CPU address space of the NES is statically partitioned into five areas.
// Internal RAM and the PPU registers are mirrored throughout their areas. The
// APU and I/O registers occupy a narrow range, followed by registers that are
// only enabled in the CPU test mode. The remainder of the address space
// belongs to the cartridge.
//
// The MapAddress() function is the only place where the partition is
// defined. Every other package should use it rather than comparing addresses
// directly.
package memorymap
