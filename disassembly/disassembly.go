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
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/hardware/memory/cpubus"
)

// the start of the cartridge ROM in the CPU address space. the flow pass
// does not follow the program outside of the ROM
const originROM = uint16(0x8000)

// Memory is the interface to the memory used by the disassembly.
type Memory interface {
	Peek(address uint16) (uint8, error)
}

// Banks is the interface to the cartridge used to identify banks.
type Banks interface {
	GetBank(address uint16) mapper.BankInfo
}

// Disassembly represents the annotated disassembly of a NES program.
type Disassembly struct {
	mem   Memory
	banks Banks

	// entries indexed by address
	entries map[uint16]*Entry

	// critical sectioning. the disassembly can be updated by the emulation
	// goroutine while it is being written by another goroutine
	crit sync.Mutex
}

// NewDisassembly is the preferred method of initialisation for the
// Disassembly type. The disassembly is empty until Decode() or Bless() is
// called.
func NewDisassembly(mem Memory, banks Banks) *Disassembly {
	return &Disassembly{
		mem:     mem,
		banks:   banks,
		entries: make(map[uint16]*Entry),
	}
}

// FromMemory creates a complete disassembly of the cartridge ROM currently
// mapped into the CPU address space.
func FromMemory(mem Memory, banks Banks) (*Disassembly, error) {
	dsm := NewDisassembly(mem, banks)
	if err := dsm.Decode(originROM, 0xffff); err != nil {
		return nil, err
	}
	if err := dsm.BlessFromVectors(); err != nil {
		return nil, err
	}
	return dsm, nil
}

// decode a single instruction at the address. the instruction table used is
// the full table regardless of the illegal opcode policy of the CPU
func (dsm *Disassembly) decode(address uint16) (*Entry, error) {
	opcode, err := dsm.mem.Peek(address)
	if err != nil {
		return nil, err
	}

	defn := &instructions.Definitions[opcode]

	e := &Entry{
		Bank: dsm.banks.GetBank(address),
		Result: execution.Result{
			Address:   address,
			Defn:      defn,
			ByteCount: defn.Bytes,
			Final:     true,
		},
	}

	bytecode := []string{fmt.Sprintf("%02x", opcode)}

	for i := 1; i < defn.Bytes; i++ {
		v, err := dsm.mem.Peek(address + uint16(i))
		if err != nil {
			return nil, err
		}
		e.Result.InstructionData |= uint16(v) << (8 * (i - 1))
		bytecode = append(bytecode, fmt.Sprintf("%02x", v))
	}

	e.Bytecode = strings.Join(bytecode, " ")

	return e, nil
}

// Decode every address in the range (inclusive) as though it was the start of
// an instruction. Entries that already exist at a higher level are not
// changed.
func (dsm *Disassembly) Decode(start uint16, end uint16) error {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	for a := int(start); a <= int(end); a++ {
		address := uint16(a)
		if e, ok := dsm.entries[address]; ok && e.Level > EntryLevelDecoded {
			continue
		}
		e, err := dsm.decode(address)
		if err != nil {
			return err
		}
		dsm.entries[address] = e
	}

	return nil
}

// BlessFromVectors follows the flow of the program from the three interrupt
// vectors.
func (dsm *Disassembly) BlessFromVectors() error {
	var entryPoints []uint16
	for _, v := range []uint16{cpubus.Reset, cpubus.NMI, cpubus.IRQ} {
		lo, err := dsm.mem.Peek(v)
		if err != nil {
			return err
		}
		hi, err := dsm.mem.Peek(v + 1)
		if err != nil {
			return err
		}
		entryPoints = append(entryPoints, uint16(hi)<<8|uint16(lo))
	}
	return dsm.Bless(entryPoints...)
}

// Bless follows the flow of the program from each entry point. Every entry
// reached is blessed.
func (dsm *Disassembly) Bless(entryPoints ...uint16) error {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	visited := make(map[uint16]bool)
	queue := slices.Clone(entryPoints)

	for len(queue) > 0 {
		address := queue[0]
		queue = queue[1:]

		for address >= originROM && !visited[address] {
			visited[address] = true

			e, ok := dsm.entries[address]
			if !ok || e.Level == EntryLevelDecoded {
				var err error
				e, err = dsm.decode(address)
				if err != nil {
					return err
				}
				e.Level = EntryLevelBlessed
				dsm.entries[address] = e
			}

			defn := e.Result.Defn
			data := e.Result.InstructionData

			next := address + uint16(defn.Bytes)
			if next < address {
				break
			}

			switch defn.Operator {
			case instructions.Jmp:
				if defn.AddressingMode == instructions.Indirect {
					// the indirect address is followed if it is in ROM. the
					// page wrapping bug of the indirect JMP is honoured
					if data >= originROM {
						lo, err := dsm.mem.Peek(data)
						if err != nil {
							return err
						}
						hi, err := dsm.mem.Peek(data&0xff00 | uint16(uint8(data)+1))
						if err != nil {
							return err
						}
						queue = append(queue, uint16(hi)<<8|uint16(lo))
					}
				} else {
					queue = append(queue, data)
				}
				next = 0
			case instructions.Jsr:
				queue = append(queue, data)
			case instructions.Rts, instructions.Rti, instructions.Brk, instructions.Kil:
				next = 0
			default:
				if defn.IsBranch() {
					queue = append(queue, next+uint16(int8(data)))
				}
			}

			address = next
		}
	}

	return nil
}

// UpdateEntry with the result of an executed instruction.
func (dsm *Disassembly) UpdateEntry(bank mapper.BankInfo, result execution.Result) {
	if result.Defn == nil || !result.Final {
		return
	}

	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	e, ok := dsm.entries[result.Address]
	if !ok || e.Result.Defn.OpCode != result.Defn.OpCode {
		var err error
		e, err = dsm.decode(result.Address)
		if err != nil {
			return
		}
		dsm.entries[result.Address] = e
	}

	e.Bank = bank
	e.Result = result
	e.Level = EntryLevelExecuted
}

// GetEntryByAddress returns the disassembly entry at the address.
func (dsm *Disassembly) GetEntryByAddress(address uint16) (*Entry, bool) {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()
	e, ok := dsm.entries[address]
	return e, ok
}

// Write the disassembly of the address range to the io.Writer. Only entries
// at or above the minimum level are written. Decoded entries are skipped
// over in the same way as the CPU would, meaning that the operand bytes of an
// instruction are not written as instructions.
func (dsm *Disassembly) Write(output io.Writer, start uint16, end uint16, level EntryLevel, bytecode bool) error {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	a := int(start)
	for a <= int(end) {
		e, ok := dsm.entries[uint16(a)]
		if !ok || e.Level < level {
			a++
			continue
		}
		if _, err := io.WriteString(output, e.format(bytecode)); err != nil {
			return err
		}
		if _, err := io.WriteString(output, "\n"); err != nil {
			return err
		}
		a += max(1, e.Result.Defn.Bytes)
	}

	return nil
}

// Grep writes every entry at or above the minimum level that contains the
// search string. The search is case insensitive.
func (dsm *Disassembly) Grep(output io.Writer, search string, level EntryLevel) error {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	search = strings.ToUpper(search)

	addresses := make([]uint16, 0, len(dsm.entries))
	for a, e := range dsm.entries {
		if e.Level >= level {
			addresses = append(addresses, a)
		}
	}
	slices.Sort(addresses)

	for _, a := range addresses {
		s := dsm.entries[a].String()
		if strings.Contains(strings.ToUpper(s), search) {
			if _, err := fmt.Fprintln(output, s); err != nil {
				return err
			}
		}
	}

	return nil
}
