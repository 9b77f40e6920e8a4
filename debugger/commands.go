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
	"os"
	"slices"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/debugger/govern"
	"github.com/jetsetilly/gophernes/debugger/terminal"
	"github.com/jetsetilly/gophernes/debugger/terminal/commandline"
	"github.com/jetsetilly/gophernes/disassembly"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/input"
	"github.com/jetsetilly/gophernes/logger"
)

// the names of the debugger commands
const (
	cmdBreak   = "BREAK"
	cmdDisasm  = "DISASM"
	cmdFrame   = "FRAME"
	cmdHelp    = "HELP"
	cmdLog     = "LOG"
	cmdMemviz  = "MEMVIZ"
	cmdPeek    = "PEEK"
	cmdPoke    = "POKE"
	cmdPPU     = "PPU"
	cmdQuit    = "QUIT"
	cmdRegs    = "REGS"
	cmdReset   = "RESET"
	cmdRun     = "RUN"
	cmdStep    = "STEP"
	cmdInput   = "INPUT"
	cmdInputs  = "INPUTS"
	cmdCycles  = "CYCLES"
)

type command struct {
	usage string
	help  string
	fn    func(dbg *Debugger, tokens *commandline.Tokens) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		cmdBreak: {
			usage: "BREAK [<address> | LUA <expression> | DROP <n> | CLEAR]",
			help:  "Halt execution when the PC reaches the address or when the Lua expression is true. With no arguments the list of breakpoints is printed",
			fn:    (*Debugger).commandBreak,
		},
		cmdDisasm: {
			usage: "DISASM [<start> [<end>] | GREP <text>]",
			help:  "Disassemble the address range. With no arguments the instructions following the PC are shown",
			fn:    (*Debugger).commandDisasm,
		},
		cmdFrame: {
			usage: "FRAME [<n>]",
			help:  "Run the emulation for a number of frames. Breakpoints are ignored",
			fn:    (*Debugger).commandFrame,
		},
		cmdHelp: {
			usage: "HELP [<command>]",
			help:  "List the commands or show help for a single command",
			fn:    (*Debugger).commandHelp,
		},
		cmdLog: {
			usage: "LOG [<n>]",
			help:  "Show the most recent entries in the log",
			fn:    (*Debugger).commandLog,
		},
		cmdMemviz: {
			usage: "MEMVIZ <CPU | PPU | APU | MEM | PORTS> <filename>",
			help:  "Write a graphviz description of a snapshot of the component to the file",
			fn:    (*Debugger).commandMemviz,
		},
		cmdPeek: {
			usage: "PEEK <address> [<count>]",
			help:  "Show the values on the CPU bus. Peeking has no side effects",
			fn:    (*Debugger).commandPeek,
		},
		cmdPoke: {
			usage: "POKE <address> <value> [<value> ...]",
			help:  "Change the values on the CPU bus, starting at the address",
			fn:    (*Debugger).commandPoke,
		},
		cmdPPU: {
			usage: "PPU",
			help:  "Show the state of the PPU",
			fn:    (*Debugger).commandPPU,
		},
		cmdQuit: {
			usage: "QUIT",
			help:  "End the debugging session",
			fn:    (*Debugger).commandQuit,
		},
		cmdRegs: {
			usage: "REGS",
			help:  "Show the CPU registers",
			fn:    (*Debugger).commandRegs,
		},
		cmdReset: {
			usage: "RESET",
			help:  "Reset the NES",
			fn:    (*Debugger).commandReset,
		},
		cmdRun: {
			usage: "RUN",
			help:  "Run the emulation until a breakpoint is met or until interrupted",
			fn:    (*Debugger).commandRun,
		},
		cmdStep: {
			usage: "STEP [<n>]",
			help:  "Execute the next instruction. Or the next n instructions",
			fn:    (*Debugger).commandStep,
		},
		cmdInput: {
			usage: "INPUT <P1 | P2> <button> <PRESS | RELEASE>",
			help:  "Press or release a controller button. The event is handled at the end of the current frame",
			fn:    (*Debugger).commandInput,
		},
		cmdInputs: {
			usage: "INPUTS",
			help:  "Show the state of the controllers",
			fn:    (*Debugger).commandInputs,
		},
		cmdCycles: {
			usage: "CYCLES",
			help:  "Show the number of cycles since reset",
			fn:    (*Debugger).commandCycles,
		},
	}
}

// parseInput executes a single line of input
func (dbg *Debugger) parseInput(input string) error {
	tokens := commandline.TokeniseInput(input)

	name, ok := tokens.Get()
	if !ok {
		return nil
	}
	name = strings.ToUpper(name)

	cmd, ok := commands[name]
	if !ok {
		return curated.Errorf("%s is not a debugging command", name)
	}

	if err := cmd.fn(dbg, tokens); err != nil {
		return err
	}

	if !tokens.IsEnd() {
		return curated.Errorf("unexpected argument (%s) for %s", tokens.Remainder(), name)
	}

	return nil
}

func (dbg *Debugger) commandHelp(tokens *commandline.Tokens) error {
	if name, ok := tokens.Get(); ok {
		name = strings.ToUpper(name)
		cmd, ok := commands[name]
		if !ok {
			return curated.Errorf("no help for %s", name)
		}
		dbg.printLine(terminal.StyleHelp, cmd.usage)
		dbg.printLine(terminal.StyleHelp, "  %s", cmd.help)
		return nil
	}

	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	slices.Sort(names)
	dbg.printLine(terminal.StyleHelp, strings.Join(names, " "))

	return nil
}

func (dbg *Debugger) commandQuit(_ *commandline.Tokens) error {
	dbg.setState(govern.Ending)
	return nil
}

// step one instruction and update the disassembly with the result
func (dbg *Debugger) step() error {
	if _, err := dbg.nes.Step(nil); err != nil {
		return err
	}
	res := dbg.nes.CPU.LastResult
	dbg.disasm.UpdateEntry(dbg.nes.Mem.Cart.GetBank(res.Address), res)
	return nil
}

func (dbg *Debugger) commandStep(tokens *commandline.Tokens) error {
	n := uint64(1)
	if !tokens.IsEnd() {
		var err error
		n, err = tokens.GetNumber(32)
		if err != nil {
			return curated.Errorf("STEP: %v", err)
		}
	}

	dbg.setState(govern.Stepping)
	defer dbg.setState(govern.Paused)

	for range n {
		if err := dbg.step(); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleCPUStep, dbg.nes.CPU.LastResult.String())
	}

	return nil
}

func (dbg *Debugger) commandRun(_ *commandline.Tokens) error {
	dbg.setState(govern.Running)
	defer dbg.setState(govern.Paused)

	// always execute at least one instruction. a breakpoint on the current
	// address would otherwise prevent the emulation from moving
	if err := dbg.step(); err != nil {
		return err
	}

	var performanceFilter int
	hit, err := dbg.nes.Run(func() (govern.State, error) {
		performanceFilter++
		if performanceFilter >= hardware.PerformanceBrake {
			performanceFilter = 0
			if dbg.interrupted() {
				return govern.Ending, nil
			}
		}
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	if hit {
		dbg.breakpoints.report()
	} else {
		dbg.printLine(terminal.StyleFeedback, "interrupted")
	}

	return nil
}

func (dbg *Debugger) commandFrame(tokens *commandline.Tokens) error {
	n := uint64(1)
	if !tokens.IsEnd() {
		var err error
		n, err = tokens.GetNumber(32)
		if err != nil {
			return curated.Errorf("FRAME: %v", err)
		}
	}

	dbg.setState(govern.Running)
	defer dbg.setState(govern.Paused)

	err := dbg.nes.RunForFrameCount(int(n), func(_ int) (govern.State, error) {
		if dbg.interrupted() {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	dbg.printLine(terminal.StyleFeedback, "frame %d", dbg.nes.PPU.Frame)

	return nil
}

func (dbg *Debugger) commandBreak(tokens *commandline.Tokens) error {
	arg, ok := tokens.Peek()
	if !ok {
		dbg.breakpoints.list()
		return nil
	}

	switch strings.ToUpper(arg) {
	case "LUA":
		tokens.Get()
		expression := tokens.Remainder()
		if expression == "" {
			return curated.Errorf("BREAK: missing Lua expression")
		}
		for !tokens.IsEnd() {
			tokens.Get()
		}
		return dbg.breakpoints.addLua(expression)
	case "CLEAR":
		tokens.Get()
		dbg.breakpoints.clear()
		dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")
		return nil
	case "DROP":
		tokens.Get()
		n, err := tokens.GetNumber(16)
		if err != nil {
			return curated.Errorf("BREAK: %v", err)
		}
		return dbg.breakpoints.drop(int(n))
	}

	address, err := tokens.GetNumber(16)
	if err != nil {
		return curated.Errorf("BREAK: %v", err)
	}

	return dbg.breakpoints.addAddress(uint16(address))
}

func (dbg *Debugger) commandPeek(tokens *commandline.Tokens) error {
	address, err := tokens.GetNumber(16)
	if err != nil {
		return curated.Errorf("PEEK: %v", err)
	}

	count := uint64(1)
	if !tokens.IsEnd() {
		count, err = tokens.GetNumber(16)
		if err != nil {
			return curated.Errorf("PEEK: %v", err)
		}
	}

	const perLine = 16

	s := strings.Builder{}
	for i := range count {
		a := uint16(address + i)
		if i%perLine == 0 {
			if i > 0 {
				dbg.printLine(terminal.StyleInstrument, s.String())
				s.Reset()
			}
			fmt.Fprintf(&s, "$%04x:", a)
		}
		v, err := dbg.nes.Mem.Peek(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(&s, " %02x", v)
	}
	if s.Len() > 0 {
		dbg.printLine(terminal.StyleInstrument, s.String())
	}

	return nil
}

func (dbg *Debugger) commandPoke(tokens *commandline.Tokens) error {
	address, err := tokens.GetNumber(16)
	if err != nil {
		return curated.Errorf("POKE: %v", err)
	}

	if tokens.IsEnd() {
		return curated.Errorf("POKE: missing value")
	}

	for a := uint16(address); !tokens.IsEnd(); a++ {
		v, err := tokens.GetNumber(8)
		if err != nil {
			return curated.Errorf("POKE: %v", err)
		}
		if err := dbg.nes.Mem.Poke(a, uint8(v)); err != nil {
			return err
		}
	}

	return nil
}

func (dbg *Debugger) commandRegs(_ *commandline.Tokens) error {
	dbg.printLine(terminal.StyleInstrument, dbg.nes.CPU.String())
	return nil
}

func (dbg *Debugger) commandPPU(_ *commandline.Tokens) error {
	dbg.printLine(terminal.StyleInstrument, dbg.nes.PPU.String())
	return nil
}

func (dbg *Debugger) commandInputs(_ *commandline.Tokens) error {
	dbg.printLine(terminal.StyleInstrument, dbg.nes.Ports.String())
	return nil
}

func (dbg *Debugger) commandInput(tokens *commandline.Tokens) error {
	var ev input.Event

	port, _ := tokens.Get()
	switch strings.ToUpper(port) {
	case "P1":
		ev.Port = input.Player1
	case "P2":
		ev.Port = input.Player2
	default:
		return curated.Errorf("INPUT: unrecognised port (%s)", port)
	}

	button, _ := tokens.Get()
	var ok bool
	ev.Button, ok = input.ParseButton(button)
	if !ok {
		return curated.Errorf("INPUT: unrecognised button (%s)", button)
	}

	action, _ := tokens.Get()
	switch strings.ToUpper(action) {
	case "PRESS":
		ev.Pressed = true
	case "RELEASE":
		ev.Pressed = false
	default:
		return curated.Errorf("INPUT: unrecognised action (%s)", action)
	}

	return dbg.nes.Input.PushEvent(ev)
}

func (dbg *Debugger) commandCycles(_ *commandline.Tokens) error {
	dbg.printLine(terminal.StyleInstrument, "CPU: %d  PPU: %d  Master: %d",
		dbg.nes.Timing.Cycles, dbg.nes.Timing.PPU, dbg.nes.Timing.Master)
	return nil
}

func (dbg *Debugger) commandReset(_ *commandline.Tokens) error {
	if err := dbg.nes.Reset(); err != nil {
		return err
	}
	dbg.printLine(terminal.StyleFeedback, "machine reset")
	return nil
}

func (dbg *Debugger) commandLog(tokens *commandline.Tokens) error {
	n := uint64(10)
	if !tokens.IsEnd() {
		var err error
		n, err = tokens.GetNumber(16)
		if err != nil {
			return curated.Errorf("LOG: %v", err)
		}
	}

	s := &strings.Builder{}
	logger.Tail(s, int(n))
	for _, l := range strings.Split(strings.TrimRight(s.String(), "\n"), "\n") {
		if l != "" {
			dbg.printLine(terminal.StyleFeedback, l)
		}
	}

	return nil
}

func (dbg *Debugger) commandDisasm(tokens *commandline.Tokens) error {
	s := &strings.Builder{}

	arg, _ := tokens.Peek()
	if strings.ToUpper(arg) == "GREP" {
		tokens.Get()
		search, ok := tokens.Get()
		if !ok {
			return curated.Errorf("DISASM: missing search term")
		}
		if err := dbg.disasm.Grep(s, search, disassembly.EntryLevelBlessed); err != nil {
			return err
		}
	} else {
		start := uint64(dbg.nes.CPU.PC.Address())
		end := start + 0x20

		if !tokens.IsEnd() {
			var err error
			start, err = tokens.GetNumber(16)
			if err != nil {
				return curated.Errorf("DISASM: %v", err)
			}
			end = start + 0x20
			if !tokens.IsEnd() {
				end, err = tokens.GetNumber(16)
				if err != nil {
					return curated.Errorf("DISASM: %v", err)
				}
			}
		}

		end = min(end, 0xffff)
		if end < start {
			return curated.Errorf("DISASM: end address is before the start address")
		}

		// make sure the range has been decoded. the cartridge may have
		// switched banks since the last time
		if err := dbg.disasm.Decode(uint16(start), uint16(end)); err != nil {
			return err
		}

		if err := dbg.disasm.Write(s, uint16(start), uint16(end), disassembly.EntryLevelDecoded, true); err != nil {
			return err
		}
	}

	for _, l := range strings.Split(strings.TrimRight(s.String(), "\n"), "\n") {
		if l != "" {
			dbg.printLine(terminal.StyleInstrument, l)
		}
	}

	return nil
}

func (dbg *Debugger) commandMemviz(tokens *commandline.Tokens) error {
	component, ok := tokens.Get()
	if !ok {
		return curated.Errorf("MEMVIZ: missing component")
	}

	filename, ok := tokens.Get()
	if !ok {
		return curated.Errorf("MEMVIZ: missing filename")
	}

	state := dbg.nes.Snapshot()

	var v any
	switch strings.ToUpper(component) {
	case "CPU":
		v = state.CPU
	case "PPU":
		v = state.PPU
	case "APU":
		v = state.APU
	case "MEM":
		v = state.Mem
	case "PORTS":
		v = state.Ports
	default:
		return curated.Errorf("MEMVIZ: unknown component (%s)", component)
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("MEMVIZ: %v", err)
	}
	defer f.Close()

	// memviz reflects over the entire structure, following pointers. a
	// panic in the reflection process should not end the debugging session
	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = curated.Errorf("MEMVIZ: %v", r)
			}
		}()
		memviz.Map(f, v)
		return nil
	}()
	if err != nil {
		return err
	}

	dbg.printLine(terminal.StyleFeedback, "%s written to %s", strings.ToUpper(component), filename)

	return nil
}
