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

// Package cpubus defines the interfaces through which the CPU and the
// debugger see the memory of the console. It also defines the addresses of the
// three interrupt vectors.
package cpubus

// Memory defines the operations for the memory system when accessed from the
// CPU. Reads can have side effects on the addressed chip and so a read must be
// considered to be an event in the emulation, in the same way as a write.
//
// The error return is for faults in the emulator itself. The emulated program
// can never cause an error by accessing memory.
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// DebugBus defines the meta-operations for memory. Peek and Poke never have a
// side effect on the emulated hardware other than the value being poked.
type DebugBus interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, value uint8) error
}

// ChipRegisters is implemented by chips that are mapped into the CPU address
// space as a small block of registers. The address is the normalised register
// number and not the full CPU address.
//
// The bus argument to ReadRegister and PeekRegister is the value currently on
// the data bus. Registers that drive fewer than eight bits leave the remaining
// bits as they are found on the data bus.
type ChipRegisters interface {
	ReadRegister(register uint16, bus uint8) uint8
	WriteRegister(register uint16, data uint8)
	PeekRegister(register uint16, bus uint8) uint8
}

// The addresses of the three interrupt vectors.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
)
