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

package debugger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/debugger"
	"github.com/jetsetilly/gophernes/debugger/govern"
	"github.com/jetsetilly/gophernes/debugger/terminal"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/input"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/test"
)

// mockTerm is a terminal that reads input from a list of strings
type mockTerm struct {
	input  []string
	output []string
	errors []string
	steps  int
}

func (trm *mockTerm) Initialise() error {
	return nil
}

func (trm *mockTerm) CleanUp() {
}

func (trm *mockTerm) IsInteractive() bool {
	return false
}

func (trm *mockTerm) TermRead(_ terminal.Prompt) (string, error) {
	if len(trm.input) == 0 {
		return "", curated.Errorf(terminal.UserAbort)
	}
	s := trm.input[0]
	trm.input = trm.input[1:]
	return s, nil
}

func (trm *mockTerm) TermPrintLine(style terminal.Style, s string) {
	switch style {
	case terminal.StyleError:
		trm.errors = append(trm.errors, s)
	case terminal.StyleCPUStep:
		trm.steps++
		trm.output = append(trm.output, s)
	default:
		trm.output = append(trm.output, s)
	}
}

func (trm *mockTerm) contains(s string) bool {
	for _, l := range trm.output {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// the test program increments zero page location 0x10 in a loop
//
//	8000 INC $10
//	8002 JMP $8000
func newNES(t *testing.T) *hardware.NES {
	t.Helper()

	prg := make([]uint8, 0x8000)
	chr := make([]uint8, 0x2000)
	copy(prg, []uint8{0xe6, 0x10, 0x4c, 0x00, 0x80})
	prg[0x7ffc] = 0x00
	prg[0x7ffd] = 0x80

	tv, err := television.NewTelevision("NTSC")
	test.DemandSuccess(t, err)

	nes, err := hardware.NewNES(environment.MainEmulation, tv, preferences.NewDefaultPreferences())
	test.DemandSuccess(t, err)

	cfg := mapper.Config{
		PRGROMSize: len(prg),
		CHRROMSize: len(chr),
		Mirroring:  mapper.Vertical,
	}
	test.DemandSuccess(t, nes.AttachCartridge("", cfg, prg, chr))

	return nes
}

func start(t *testing.T, nes *hardware.NES, input ...string) *mockTerm {
	t.Helper()

	trm := &mockTerm{input: input}
	dbg, err := debugger.NewDebugger(nes, trm)
	test.DemandSuccess(t, err)
	defer dbg.End()

	test.ExpectSuccess(t, dbg.Start(""))
	test.ExpectEquality(t, dbg.State(), govern.Ending)

	return trm
}

func TestStep(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "step", "STEP 4")
	test.ExpectEquality(t, len(trm.errors), 0)
	test.ExpectEquality(t, trm.steps, 5)
	test.ExpectEquality(t, nes.Mem.RAM.Read(0x10), uint8(3))
	test.ExpectEquality(t, nes.CPU.PC.Address(), uint16(0x8002))
}

func TestAddressBreak(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "break $8002", "break", "run")
	test.ExpectEquality(t, len(trm.errors), 0)
	test.ExpectSuccess(t, trm.contains("0: PC=$8002"))
	test.ExpectSuccess(t, trm.contains("break on PC=$8002"))
	test.ExpectEquality(t, nes.CPU.PC.Address(), uint16(0x8002))
	test.ExpectEquality(t, nes.Mem.RAM.Read(0x10), uint8(1))

	// duplicate breakpoints are not allowed
	nes = newNES(t)
	trm = start(t, nes, "break $8002", "break $8002")
	test.ExpectEquality(t, len(trm.errors), 1)
}

func TestLuaBreak(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "BREAK LUA peek(0x10) == 3 and pc() == 0x8002", "RUN")
	test.ExpectEquality(t, len(trm.errors), 0)
	test.ExpectSuccess(t, trm.contains("break on LUA peek(0x10) == 3"))
	test.ExpectEquality(t, nes.Mem.RAM.Read(0x10), uint8(3))

	// clearing the breakpoint and running again will only stop when the
	// breakpoint is replaced
	trm = start(t, nes, "BREAK CLEAR", "BREAK LUA frame() == 2", "RUN")
	test.ExpectEquality(t, len(trm.errors), 0)
	test.ExpectEquality(t, nes.PPU.Frame, 2)
}

func TestLuaBreakErrors(t *testing.T) {
	nes := newNES(t)

	// syntax error is caught when the breakpoint is added
	trm := start(t, nes, "BREAK LUA peek(", "BREAK")
	test.ExpectEquality(t, len(trm.errors), 1)
	test.ExpectSuccess(t, trm.contains("no breakpoints"))

	// runtime error halts the emulation
	trm = start(t, nes, "BREAK LUA peek(0x10000) == 1", "RUN")
	test.ExpectEquality(t, len(trm.errors), 1)
	test.ExpectSuccess(t, strings.HasPrefix(trm.errors[0], "breakpoint error"))
}

func TestPeekPoke(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "POKE $0020 $aa $bb 12", "PEEK $0020 3", "PEEK $8000")
	test.ExpectEquality(t, len(trm.errors), 0)
	test.ExpectSuccess(t, trm.contains("$0020: aa bb 0c"))
	test.ExpectSuccess(t, trm.contains("$8000: e6"))

	trm = start(t, nes, "POKE $0020", "POKE $0020 256", "PEEK")
	test.ExpectEquality(t, len(trm.errors), 3)
}

func TestCommandErrors(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "", "FOO", "REGS extra", "HELP STEP", "HELP")
	test.ExpectEquality(t, len(trm.errors), 2)
	test.ExpectSuccess(t, trm.contains("STEP [<n>]"))
	test.ExpectSuccess(t, trm.contains("BREAK CYCLES DISASM"))
}

func TestDisasm(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "DISASM $8000 $8004", "DISASM GREP jmp")
	test.ExpectEquality(t, len(trm.errors), 0)
	test.ExpectSuccess(t, trm.contains("INC"))
	test.ExpectSuccess(t, trm.contains("JMP"))
}

func TestMemviz(t *testing.T) {
	nes := newNES(t)
	fn := filepath.Join(t.TempDir(), "cpu.dot")
	trm := start(t, nes, "MEMVIZ cpu "+fn, "MEMVIZ tia "+fn)
	test.ExpectEquality(t, len(trm.errors), 1)

	data, err := os.ReadFile(fn)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "digraph"))
}

func TestScript(t *testing.T) {
	nes := newNES(t)

	fn := filepath.Join(t.TempDir(), "script")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("# set zero page\nPOKE $10 5\n\nSTEP\n"), 0o644))

	trm := &mockTerm{}
	dbg, err := debugger.NewDebugger(nes, trm)
	test.DemandSuccess(t, err)
	defer dbg.End()

	test.ExpectSuccess(t, dbg.Start(fn))
	test.ExpectEquality(t, len(trm.errors), 0)
	test.ExpectEquality(t, nes.Mem.RAM.Read(0x10), uint8(6))
}

func TestInput(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "INPUT P1 start PRESS", "FRAME", "INPUTS", "INPUT P3 A PRESS", "INPUT P1 X PRESS")
	test.ExpectEquality(t, len(trm.errors), 2)
	test.ExpectEquality(t, nes.Ports.Controllers[input.Player1].Buttons(), input.ButtonStart)
	test.ExpectSuccess(t, trm.contains("player 1: START"))
}

func TestQuit(t *testing.T) {
	nes := newNES(t)
	trm := start(t, nes, "QUIT", "STEP")
	test.ExpectEquality(t, trm.steps, 0)
}
