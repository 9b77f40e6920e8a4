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

// Package plainterm implements the Terminal interface for the gophernes
// debugger. It offers line editing and history when the input is a real
// terminal and nothing special otherwise.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/debugger/terminal"
	"golang.org/x/term"
)

// PlainTerminal is the default, most basic terminal interface. The terminal
// is only put into raw mode for the duration of a TermRead() so that
// interrupt signals reach the debugger while the emulation is running.
type PlainTerminal struct {
	input  io.Reader
	output io.Writer

	// file descriptor of the input. only valid if realTerminal is true
	fd           int
	realTerminal bool

	// line editor used when realTerminal is true. the line editor keeps the
	// history of input
	editor *term.Terminal

	// reader is used when the input is not a real terminal
	reader *bufio.Reader

	silenced bool
}

// NewPlainTerminal creates a terminal that reads from input and writes to
// output. If the arguments are nil then os.Stdin and os.Stdout are used.
func NewPlainTerminal(input io.Reader, output io.Writer) *PlainTerminal {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}
	return &PlainTerminal{
		input:  input,
		output: output,
	}
}

// Initialise perfoms any setting up required for the terminal.
func (pt *PlainTerminal) Initialise() error {
	pt.reader = bufio.NewReader(pt.input)

	in, ok := pt.input.(*os.File)
	if !ok {
		return nil
	}
	out, ok := pt.output.(*os.File)
	if !ok {
		return nil
	}

	pt.fd = int(in.Fd())
	pt.realTerminal = term.IsTerminal(pt.fd) && term.IsTerminal(int(out.Fd()))
	if pt.realTerminal {
		pt.editor = term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{in, out}, "")
	}

	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (pt *PlainTerminal) CleanUp() {
}

// Silence all output except errors.
func (pt *PlainTerminal) Silence(silenced bool) {
	pt.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if pt.silenced && style != terminal.StyleError {
		return
	}

	// we don't need to echo user input for this type of terminal
	if style == terminal.StyleEcho {
		return
	}

	switch style {
	case terminal.StyleError:
		s = fmt.Sprintf("* %s", s)
	}

	pt.output.Write([]byte(s))
	pt.output.Write([]byte("\n"))
}

// TermRead implements the terminal.Input interface.
func (pt *PlainTerminal) TermRead(prompt terminal.Prompt) (string, error) {
	if pt.realTerminal {
		return pt.readLine(prompt)
	}

	s, err := pt.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if len(s) > 0 {
				return strings.TrimRight(s, "\r\n"), nil
			}
			return "", curated.Errorf(terminal.UserAbort)
		}
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// read a line using the line editor. the terminal is returned to its
// original mode before returning
func (pt *PlainTerminal) readLine(prompt terminal.Prompt) (string, error) {
	state, err := term.MakeRaw(pt.fd)
	if err != nil {
		return "", curated.Errorf("plainterm: %v", err)
	}
	defer term.Restore(pt.fd, state)

	pt.editor.SetPrompt(prompt.String())

	s, err := pt.editor.ReadLine()
	if err != nil {
		if err == io.EOF {
			return "", curated.Errorf(terminal.UserAbort)
		}
		return "", curated.Errorf("plainterm: %v", err)
	}

	return s, nil
}

// IsInteractive implements the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return pt.realTerminal
}
