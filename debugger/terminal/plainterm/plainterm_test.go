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

package plainterm_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/debugger/terminal"
	"github.com/jetsetilly/gophernes/debugger/terminal/plainterm"
	"github.com/jetsetilly/gophernes/test"
)

func TestPlainTerminal(t *testing.T) {
	out := &strings.Builder{}
	pt := plainterm.NewPlainTerminal(strings.NewReader("step\r\nregs"), out)
	test.DemandSuccess(t, pt.Initialise())
	test.ExpectFailure(t, pt.IsInteractive())

	s, err := pt.TermRead(terminal.Prompt{})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "step")

	// last line has no line ending
	s, err = pt.TermRead(terminal.Prompt{})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "regs")

	_, err = pt.TermRead(terminal.Prompt{})
	test.ExpectSuccess(t, curated.Is(err, terminal.UserAbort))

	pt.TermPrintLine(terminal.StyleFeedback, "hello")
	pt.TermPrintLine(terminal.StyleEcho, "echo")
	pt.TermPrintLine(terminal.StyleError, "oops")
	test.ExpectEquality(t, out.String(), "hello\n* oops\n")

	out.Reset()
	pt.Silence(true)
	pt.TermPrintLine(terminal.StyleFeedback, "hello")
	pt.TermPrintLine(terminal.StyleError, "oops")
	test.ExpectEquality(t, out.String(), "* oops\n")
}
