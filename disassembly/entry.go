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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// EntryLevel describes the level of the Entry.
type EntryLevel int

// List of valid EntryLevel in increasing reliability.
//
// Decoded entries have been decoded as though every byte point is a valid
// instruction. Blessed entries meanwhile take into consideration the preceding
// instruction and the number of bytes it would have consumed.
//
// Decoded entries are useful in the event of the CPU landing on an address that
// didn't look like an instruction at disassembly time.
const (
	EntryLevelDecoded EntryLevel = iota
	EntryLevelBlessed
	EntryLevelExecuted
)

func (l EntryLevel) String() string {
	switch l {
	case EntryLevelDecoded:
		return "decoded"
	case EntryLevelBlessed:
		return "blessed"
	case EntryLevelExecuted:
		return "executed"
	}
	return "unknown"
}

// Entry is a disassembled instruction.
type Entry struct {
	// the bank the entry was found in
	Bank mapper.BankInfo

	// the level of reliability of the information in the Entry
	Level EntryLevel

	// copy of the CPU execution
	Result execution.Result

	// the bytes of the instruction as a string of hex values
	Bytecode string
}

func (e *Entry) String() string {
	return e.format(false)
}

// Cycles returns the number of cycles of the instruction. The number of cycles
// for entries that have not been executed is taken from the instruction
// definition and may be followed by an asterisk to indicate that the value
// can be one greater if a page boundary is crossed.
func (e *Entry) Cycles() string {
	if e.Result.Defn == nil {
		return "?"
	}
	if e.Level == EntryLevelExecuted {
		return fmt.Sprintf("%d", e.Result.Cycles)
	}
	if e.Result.Defn.PageSensitive {
		return fmt.Sprintf("%d*", e.Result.Defn.Cycles)
	}
	return fmt.Sprintf("%d", e.Result.Defn.Cycles)
}

func (e *Entry) format(bytecode bool) string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%-3s %04x ", e.Bank, e.Result.Address)
	if bytecode {
		fmt.Fprintf(&s, "%-8s ", e.Bytecode)
	}
	if e.Result.Defn == nil {
		s.WriteString("???")
		return s.String()
	}
	fmt.Fprintf(&s, "%s %-9s", e.Result.Defn.Operator, e.Result.Operand())
	fmt.Fprintf(&s, " [%s]", e.Cycles())
	if e.Result.Defn.Undocumented {
		s.WriteString(" (undocumented)")
	}
	return strings.TrimRight(s.String(), " ")
}
