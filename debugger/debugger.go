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
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/debugger/govern"
	"github.com/jetsetilly/gophernes/debugger/terminal"
	"github.com/jetsetilly/gophernes/disassembly"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/logger"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	nes  *hardware.NES
	term terminal.Terminal

	// the state of the debugger. the Running state only applies for the
	// duration of the RUN and FRAME commands
	state govern.State

	breakpoints *breakpoints
	disasm      *disassembly.Disassembly

	// interrupt signals from the operating system
	signals chan os.Signal
}

// NewDebugger creates and initialises everything required for a new debugging
// session. The NES should have a cartridge attached.
func NewDebugger(nes *hardware.NES, term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		nes:     nes,
		term:    term,
		state:   govern.EmulatorStart,
		signals: make(chan os.Signal, 1),
	}

	var err error

	dbg.disasm, err = disassembly.FromMemory(nes.Mem, nes.Mem.Cart)
	if err != nil {
		return nil, curated.Errorf("debugger: %v", err)
	}

	dbg.breakpoints = newBreakpoints(dbg)
	nes.SetBreakpoint(dbg.breakpoints.check)

	dbg.setState(govern.Initialising)

	return dbg, nil
}

func (dbg *Debugger) setState(state govern.State) {
	if !govern.StateTransition(dbg.state, state) {
		logger.Logf(dbg.nes.Env, "debugger", "unexpected state transition from %s to %s", dbg.state, state)
		return
	}
	dbg.state = state
}

// State returns the current state of the debugger.
func (dbg *Debugger) State() govern.State {
	return dbg.state
}

// End the debugging session. Releases any resources held by the debugger.
func (dbg *Debugger) End() {
	dbg.breakpoints.end()
}

// Start the main debugger sequence. The initScript argument names a file of
// debugger commands that are run before any input is requested from the
// terminal. It can be empty.
func (dbg *Debugger) Start(initScript string) error {
	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	signal.Notify(dbg.signals, os.Interrupt)
	defer signal.Stop(dbg.signals)

	dbg.setState(govern.Paused)

	if initScript != "" {
		if err := dbg.runScript(initScript); err != nil {
			return err
		}
	}

	return dbg.inputLoop()
}

func (dbg *Debugger) runScript(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("debugger: script: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() && dbg.state != govern.Ending {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dbg.printLine(terminal.StyleEcho, line)
		if err := dbg.parseInput(line); err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("debugger: script: %v", err)
	}

	return nil
}

func (dbg *Debugger) inputLoop() error {
	for dbg.state != govern.Ending {
		input, err := dbg.term.TermRead(dbg.prompt())
		if err != nil {
			if curated.Is(err, terminal.UserAbort) || curated.Is(err, terminal.UserInterrupt) {
				dbg.setState(govern.Ending)
				return nil
			}
			return err
		}

		if err := dbg.parseInput(input); err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	return nil
}

// the prompt shows the address of the next instruction
func (dbg *Debugger) prompt() terminal.Prompt {
	pc := dbg.nes.CPU.PC.Address()
	if e, ok := dbg.disasm.GetEntryByAddress(pc); ok {
		return terminal.Prompt{Content: e.String()}
	}
	return terminal.Prompt{Content: fmt.Sprintf("%04x", pc)}
}

func (dbg *Debugger) printLine(style terminal.Style, s string, a ...any) {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}
	dbg.term.TermPrintLine(style, s)
}

// check for an interrupt signal without blocking
func (dbg *Debugger) interrupted() bool {
	select {
	case <-dbg.signals:
		return true
	default:
	}
	return false
}
