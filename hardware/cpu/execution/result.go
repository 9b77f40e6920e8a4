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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
)

// Interrupt identifies an interrupt sequence. Interrupt sequences are not
// instructions but the CPU runs them in the same way and reports them with a
// Result.
type Interrupt int

// List of interrupt types.
const (
	NoInterrupt Interrupt = iota
	NMI
	IRQ
	Reset
)

func (i Interrupt) String() string {
	switch i {
	case NMI:
		return "NMI"
	case IRQ:
		return "IRQ"
	case Reset:
		return "RESET"
	}
	return ""
}

// Result records the state/result of each instruction executed on the CPU.
// Including the address it was read from, a reference to the instruction
// definition, and other execution details.
//
// The Result type is updated every cycle during the execution of the
// instruction. As such, it is useful to examine the result during the
// execution of an instruction in a debugger.
type Result struct {
	// the address at which the instruction began
	Address uint16

	// a reference to the instruction definition. nil if the result is for an
	// interrupt sequence
	Defn *instructions.Definition

	// the interrupt sequence that was run instead of an instruction
	Interrupt Interrupt

	// the number of bytes read during instruction decode. if this value is
	// less than Defn.Bytes then the instruction has not yet been fully decoded
	ByteCount int

	// instruction data is the actual instruction data. so, for example, in
	// the case of ROL <$0a, the InstructionData value is 0x0a
	InstructionData uint16

	// the actual number of cycles taken by the instruction
	Cycles int

	// whether an extra cycle was required because of 8 bit adder overflow
	PageFault bool

	// whether a known buggy code path (in the emulated CPU) was triggered
	CPUBug Bug

	// whether branch instruction test passed (ie. branched) or not. testing of
	// this field should be used in conjunction with Defn.IsBranch()
	BranchSuccess bool

	// the CPU has been jammed by a KIL instruction and has done nothing except
	// let a cycle pass
	Jammed bool

	// whether this data has been finalised - some fields in this struct will
	// be undefined if Final is false
	Final bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	if r.Interrupt != NoInterrupt {
		return fmt.Sprintf("%04x %s sequence [%d]", r.Address, r.Interrupt, r.Cycles)
	}

	if r.Jammed {
		return fmt.Sprintf("%04x jammed", r.Address)
	}

	if r.Defn == nil {
		return fmt.Sprintf("%04x ???", r.Address)
	}

	s := strings.Builder{}
	fmt.Fprintf(&s, "%04x %s", r.Address, r.Defn.Operator)

	operand := r.Operand()
	if operand != "" {
		s.WriteString(" ")
		s.WriteString(operand)
	}

	if r.Final {
		fmt.Fprintf(&s, " [%d]", r.Cycles)
	} else {
		s.WriteString(" [v]")
	}

	if r.PageFault {
		s.WriteString(" page-fault")
	}

	if r.CPUBug != NoBug {
		fmt.Fprintf(&s, " * %s *", r.CPUBug)
	}

	return s.String()
}

// Operand returns the instruction data formatted according to the addressing
// mode. Branch targets are shown as absolute addresses if the result is final.
func (r Result) Operand() string {
	if r.Defn == nil {
		return ""
	}

	var data string
	switch r.Defn.Bytes {
	case 2:
		if r.ByteCount < 2 {
			data = "$??"
		} else {
			data = fmt.Sprintf("$%02x", r.InstructionData)
		}
	case 3:
		if r.ByteCount < 3 {
			data = "$????"
		} else {
			data = fmt.Sprintf("$%04x", r.InstructionData)
		}
	default:
		return ""
	}

	switch r.Defn.AddressingMode {
	case instructions.Immediate:
		return fmt.Sprintf("#%s", data)
	case instructions.Relative:
		if r.ByteCount == 2 {
			return fmt.Sprintf("$%04x", r.Address+2+uint16(int8(r.InstructionData)))
		}
	case instructions.Indirect:
		return fmt.Sprintf("(%s)", data)
	case instructions.IndexedIndirect:
		return fmt.Sprintf("(%s,X)", data)
	case instructions.IndirectIndexed:
		return fmt.Sprintf("(%s),Y", data)
	case instructions.AbsoluteIndexedX, instructions.ZeroPageIndexedX:
		return fmt.Sprintf("%s,X", data)
	case instructions.AbsoluteIndexedY, instructions.ZeroPageIndexedY:
		return fmt.Sprintf("%s,Y", data)
	}

	return data
}
