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

// Package disassembly coordinates the disassembly of NES cartridges. The
// disassembly is created from the memory bus with the Peek() function and so
// the disassembly never has an effect on the emulation.
//
// A disassembly is built in two passes. The linear pass decodes every
// address in a range as though it was the start of an instruction. The flow
// pass then follows the flow of the program from the interrupt vectors and
// "blesses" every entry that it reaches. Blessed entries are far more likely
// to be real instructions than entries that are only decoded.
//
// Entries can also be updated with the results of executed instructions,
// which is the most reliable information of all.
package disassembly
