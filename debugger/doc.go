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

// Package debugger implements a command line debugger for the NES emulation.
// Commands are read from a terminal.Terminal implementation, one line at a
// time, and the results are printed to the same terminal.
//
// Execution can be stepped one instruction at a time, run until a breakpoint
// is met, or run for a number of frames. Breakpoints are either a program
// counter address or a Lua expression that is evaluated before every
// instruction. For example:
//
//	BREAK $c000
//	BREAK LUA peek(0x10) == 2 and a() > 0x80
//
// The state of the machine can be inspected with the REGS, PPU, PEEK and
// DISASM commands. MEMVIZ writes a graphviz representation of a snapshot of a
// component to a file.
//
// A running emulation can be interrupted with the interrupt signal (ctrl-c).
package debugger
