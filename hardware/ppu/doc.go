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

// Package ppu implements the 2C02 picture processing unit (and its PAL and
// Dendy variants). The PPU is a dot based state machine: every call to Step()
// advances the PPU by exactly one dot and performs whatever memory fetches,
// register transfers and pixel output the real hardware performs on that dot.
//
// The coordinates of the PPU (the Scanline and Dot fields) always refer to the
// next dot to be executed. Scanline -1 is the pre-render scanline and scanlines
// 0 to 239 are the visible scanlines. The number of scanlines in a frame depends
// on the specification the PPU was created with.
//
// The CPU sees the PPU through the eight registers at $2000 to $2007. The PPU
// type implements the cpubus.ChipRegisters interface for this purpose. Reading
// a register that is write-only returns the value of the I/O latch, which
// holds the value of the most recent read or write of any PPU register.
//
// The PPU sees the cartridge through the Cartridge interface. The pattern
// tables are in the cartridge and the nametable memory is mapped according to
// the cartridge's current mirroring. The mirroring is queried on every
// nametable access and is never cached.
//
// Interrupt and mapper events are not pushed by the PPU. The state of the NMI
// output is returned by the NMI() function and the events produced by a dot
// are returned by the Step() function. It is the job of the scheduler to
// propagate them.
package ppu
