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

// Package cpu emulates the 2A03 CPU found in the NES. The 2A03 is a 6502
// core without the decimal mode circuitry. The decimal flag in the status
// register can still be set and cleared but it has no effect on arithmetic.
//
// The CPU is cycle accurate in the sense that every bus access made by the
// real chip, including the phantom reads and writes of indexed addressing and
// read-modify-write instructions, is made by the emulation in the same order.
// A callback function is called after every cycle. The callback is where the
// rest of the console is stepped forward.
//
// Interrupts are sampled at the end of every cycle. The NMI line is edge
// sensitive and the IRQ line is level sensitive. The decision to service an
// interrupt is made with the sample taken at the end of the penultimate cycle
// of an instruction, which means that an interrupt asserted during the final
// cycle of an instruction is delayed by one instruction. This also gives the
// correct behaviour for CLI, SEI and PLP.
//
// Undocumented opcodes are implemented. Some of them are unstable on real
// hardware and so how they are treated can be changed with the
// SetIllegalPolicy() function.
package cpu
