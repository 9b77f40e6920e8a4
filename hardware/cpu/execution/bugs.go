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

package execution

// Bug names a known CPU behaviour that can catch people out. The 2A03 bugs
// are the same as those in the NMOS 6502.
type Bug string

// List of CPU bugs that are noted in the Result.
const (
	NoBug Bug = ""

	// JMP ($xxFF) reads the high byte of the target from $xx00
	JmpIndirectAddressingBug Bug = "indirect addressing bug"

	// (zp,X) and zp,X addressing wrap around within page zero
	ZeroPageIndexBug Bug = "zero page index bug"

	// the SHX, SHY, AHX and TAS instructions write to a corrupted address
	// when the index crosses a page boundary
	UnstableAddressBug Bug = "unstable high byte bug"
)
