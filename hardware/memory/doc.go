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

// Package memory implements the CPU side of the NES memory model. The
// memorymap sub-package defines the areas of memory and the cpubus
// sub-package defines the interfaces used to access them.
//
// The CPU sees five areas of memory:
//
//	0x0000 -> 0x1fff	2KB internal RAM, mirrored every 2KB
//	0x2000 -> 0x3fff	PPU registers, mirrored every 8 bytes
//	0x4000 -> 0x4017	APU and I/O registers
//	0x4018 -> 0x401f	disabled test-mode registers
//	0x4020 -> 0xffff	cartridge
//
// The Memory type routes every CPU access to the correct area. The PPU, the
// APU and the controller ports are connected to the Memory type through the
// cpubus.ChipRegisters interface. Until they are connected the registers
// behave as though nothing is driving the data bus.
//
// The value last seen on the data bus is kept in the OpenBus field. Reading an
// address that nothing drives returns the open bus value. Areas that only
// drive some bits of the data bus receive the open bus value so that they can
// fill in the undriven bits.
//
// Writing to 0x4014 does not start the OAM DMA immediately. The request is
// stored and the scheduler in the hardware package collects it with the
// DMARequest() function at the end of the current CPU instruction.
//
// Peek() and Poke() are for the debugger and never cause side effects.
package memory
