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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// help writes the help message for the current mode to the Output writer.
// The flag descriptions are produced by the flag package.
func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var hasFlags bool
	flags := &strings.Builder{}
	md.flags.SetOutput(flags)
	md.flags.VisitAll(func(_ *flag.Flag) { hasFlags = true })
	md.flags.PrintDefaults()

	if !hasFlags && len(md.subModes) == 0 {
		io.WriteString(md.Output, "No help available")
		if p := md.Path(); p != "" {
			fmt.Fprintf(md.Output, " for %s", p)
		}
		io.WriteString(md.Output, "\n")
		return
	}

	if p := md.Path(); p != "" {
		fmt.Fprintf(md.Output, "Usage for %s mode:\n", p)
	} else {
		io.WriteString(md.Output, "Usage:\n")
	}

	io.WriteString(md.Output, flags.String())

	if len(md.subModes) > 0 {
		if hasFlags {
			io.WriteString(md.Output, "\n")
		}
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}
