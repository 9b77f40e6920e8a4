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

// Package registers implements the three types of registers found in the 2A03
// CPU: the 8 bit general purpose registers, the 16 bit program counter and
// the status register.
//
// The arithmetic functions of the 8 bit registers do not affect the status
// register. The CPU must update the status register explicitly. For instance,
// in the CPU, we might have this sequence of function calls:
//
//	a.Load(10)
//	a.Subtract(11, true)
//	sr.Zero = a.IsZero()
//
// In this case, the zero flag in the status register will be false.
//
// The 2A03 has no decimal mode so the Add() and Subtract() functions are
// binary only. The decimal flag in the status register can be set and cleared
// but has no effect on arithmetic.
package registers
