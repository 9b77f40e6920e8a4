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

import "fmt"

// Definition defines each instruction in the instruction set; one per instruction.
type Definition struct {
	OpCode         uint8
	Operator       Operator
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	PageSensitive  bool
	Effect         EffectCategory

	// undocumented opcodes are those that are not part of the official
	// instruction set. unstable opcodes are undocumented opcodes whose result
	// depends on analogue properties of the chip
	Undocumented bool
	Unstable     bool
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%s pagesens=%t effect=%s]",
		defn.OpCode, defn.Operator, defn.Bytes, defn.Cycles, defn.AddressingMode, defn.PageSensitive, defn.Effect)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}

// AsNOP returns a definition of the same length as the receiver that does
// nothing except read its operand. Used by the CPU to disable undocumented
// opcodes. The cycle count is that of a read NOP with the same addressing mode
// and may differ from the receiver's. A KIL opcode is unchanged.
func (defn Definition) AsNOP() Definition {
	if defn.Operator == Kil || defn.Operator == Nop {
		return defn
	}

	d := Definition{
		OpCode:         defn.OpCode,
		Operator:       Nop,
		Bytes:          defn.Bytes,
		AddressingMode: defn.AddressingMode,
		Effect:         Read,
		Undocumented:   defn.Undocumented,
	}

	switch d.AddressingMode {
	case Implied, Immediate:
		d.Cycles = 2
	case ZeroPage:
		d.Cycles = 3
	case ZeroPageIndexedX, ZeroPageIndexedY, Absolute:
		d.Cycles = 4
	case AbsoluteIndexedX, AbsoluteIndexedY:
		d.Cycles = 4
		d.PageSensitive = true
	case IndirectIndexed:
		d.Cycles = 5
		d.PageSensitive = true
	case IndexedIndirect:
		d.Cycles = 6
	}

	return d
}
