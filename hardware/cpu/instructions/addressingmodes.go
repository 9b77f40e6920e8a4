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

package instructions

// AddressingMode describes the method data for the instruction should be received.
type AddressingMode int

// List of supported addressing modes.
const (
	Implied AddressingMode = iota
	Immediate
	Relative // relative addressing is used for branch instructions

	Absolute // abs
	ZeroPage // zpg
	Indirect // ind

	IndexedIndirect // (ind,X)
	IndirectIndexed // (ind),Y

	AbsoluteIndexedX // abs,X
	AbsoluteIndexedY // abs,Y

	ZeroPageIndexedX // zpg,X
	ZeroPageIndexedY // zpg,Y
)

var addressingModeNames = [...]string{
	Implied:          "Implied",
	Immediate:        "Immediate",
	Relative:         "Relative",
	Absolute:         "Absolute",
	ZeroPage:         "ZeroPage",
	Indirect:         "Indirect",
	IndexedIndirect:  "IndexedIndirect",
	IndirectIndexed:  "IndirectIndexed",
	AbsoluteIndexedX: "AbsoluteIndexedX",
	AbsoluteIndexedY: "AbsoluteIndexedY",
	ZeroPageIndexedX: "ZeroPageIndexedX",
	ZeroPageIndexedY: "ZeroPageIndexedY",
}

func (m AddressingMode) String() string {
	if int(m) < len(addressingModeNames) {
		return addressingModeNames[m]
	}
	return "unknown addressing mode"
}

// ParseAddressingMode returns the AddressingMode for the name returned by the
// String() function.
func ParseAddressingMode(s string) (AddressingMode, bool) {
	for i, n := range addressingModeNames {
		if n == s {
			return AddressingMode(i), true
		}
	}
	return Implied, false
}
