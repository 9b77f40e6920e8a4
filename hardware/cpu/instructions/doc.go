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

// Package instructions defines the instruction set of the 2A03 CPU. The
// Definitions table is generated from a CSV file by the program in the
// generator directory.
//
// The table contains every opcode, including the undocumented opcodes. The
// CPU decides how to treat undocumented opcodes according to its illegal
// opcode policy.
package instructions

//go:generate go run ./generator
