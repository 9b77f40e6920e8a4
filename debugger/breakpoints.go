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

package debugger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/debugger/terminal"
)

// a breakpoint is a condition that is checked before every instruction
type breakpoint interface {
	String() string
	check() (bool, error)
}

// breaks on the program counter
type addressBreak struct {
	dbg     *Debugger
	address uint16
}

func (bp addressBreak) String() string {
	return fmt.Sprintf("PC=$%04x", bp.address)
}

func (bp addressBreak) check() (bool, error) {
	return bp.dbg.nes.CPU.PC.Address() == bp.address, nil
}

type breakpoints struct {
	dbg     *Debugger
	entries []breakpoint

	// the lua state is shared by all lua breakpoints. it is created when the
	// first lua breakpoint is added
	lua *luaEnv

	// the breakpoint that caused the most recent halt
	triggered breakpoint

	// the error from the most recent check. a breakpoint that can not be
	// evaluated halts the emulation
	err error
}

func newBreakpoints(dbg *Debugger) *breakpoints {
	return &breakpoints{dbg: dbg}
}

func (bp *breakpoints) end() {
	if bp.lua != nil {
		bp.lua.close()
		bp.lua = nil
	}
}

// check satisfies the breakpoint predicate of the hardware.NES type. it is
// called before every instruction
func (bp *breakpoints) check() bool {
	// keep the disassembly up to date with the instruction that has just
	// been executed
	res := bp.dbg.nes.CPU.LastResult
	bp.dbg.disasm.UpdateEntry(bp.dbg.nes.Mem.Cart.GetBank(res.Address), res)

	for _, b := range bp.entries {
		ok, err := b.check()
		if err != nil {
			bp.err = err
			bp.triggered = b
			return true
		}
		if ok {
			bp.triggered = b
			return true
		}
	}

	return false
}

func (bp *breakpoints) clear() {
	bp.entries = bp.entries[:0]
	bp.triggered = nil
	bp.err = nil
}

func (bp *breakpoints) drop(num int) error {
	if num < 0 || num >= len(bp.entries) {
		return curated.Errorf("breakpoint #%d is not defined", num)
	}
	bp.entries = slices.Delete(bp.entries, num, num+1)
	return nil
}

func (bp *breakpoints) addAddress(address uint16) error {
	for _, b := range bp.entries {
		if a, ok := b.(addressBreak); ok && a.address == address {
			return curated.Errorf("breakpoint already exists (%s)", a)
		}
	}
	bp.entries = append(bp.entries, addressBreak{dbg: bp.dbg, address: address})
	return nil
}

func (bp *breakpoints) addLua(expression string) error {
	if bp.lua == nil {
		var err error
		bp.lua, err = newLuaEnv(bp.dbg.nes)
		if err != nil {
			return err
		}
	}
	b, err := bp.lua.compile(expression)
	if err != nil {
		return err
	}
	bp.entries = append(bp.entries, b)
	return nil
}

func (bp *breakpoints) list() {
	if len(bp.entries) == 0 {
		bp.dbg.printLine(terminal.StyleFeedback, "no breakpoints")
		return
	}
	for i, b := range bp.entries {
		bp.dbg.printLine(terminal.StyleFeedback, "% 2d: %s", i, b)
	}
}

// report the reason for the most recent halt. the triggered breakpoint is
// forgotten after the call
func (bp *breakpoints) report() {
	if bp.triggered == nil {
		return
	}

	if bp.err != nil {
		bp.dbg.printLine(terminal.StyleError, "breakpoint error: %s: %v", bp.triggered, bp.err)
	} else {
		bp.dbg.printLine(terminal.StyleFeedback, "break on %s", strings.TrimSpace(bp.triggered.String()))
	}

	bp.triggered = nil
	bp.err = nil
}
