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
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

const modeSeparator = "/"

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// Continue with command line processing. If sub-modes were specified
	// then the Mode() function should be checked.
	ParseContinue ParseResult = iota

	// Help was requested and has been printed to the Output writer.
	ParseHelp

	// An error has occurred and is returned as the second return value.
	ParseError
)

// Modes provides an easy way of handling command line arguments. The Output
// field should be specified before calling Parse() or you will not see any
// help messages.
type Modes struct {
	// where to print help messages
	Output io.Writer

	// a new flagset is created on every call to NewArgs() and NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes for the next call to Parse(). the first entry is the default
	subModes []string

	// the series of sub-modes found by calls to Parse()
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns a string of all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs with a string of arguments (from the command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a new
// mode. Flags and sub-modes added before the call are forgotten.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AdditionalHelp adds text to be displayed after the regular help on
// available flags.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// AddSubModes to list of sub-modes for the next parse. The first sub-mode in
// the list is considered to be the default sub-mode.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(s))
	}
}

// Parse the current layer of arguments.
//
// Help messages are handled automatically. The ParseHelp return value should
// be treated as a request to exit without displaying anything further.
func (md *Modes) Parse() (ParseResult, error) {
	usage := &strings.Builder{}
	md.flags.SetOutput(usage)

	remaining := md.args[md.argsIdx:]

	err := md.flags.Parse(remaining)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.help()
			return ParseHelp, nil
		}
		return ParseError, fmt.Errorf("modalflag: %w", err)
	}

	// move the argument index past any flags that have been consumed
	md.argsIdx += len(remaining) - md.flags.NArg()

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, s := range md.subModes {
			if s == arg {
				mode = s
				md.argsIdx++
				break
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs after a call to Parse(). In other words, arguments that aren't
// flags or a listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered argument that isn't a flag or listed sub-mode.
// Returns the empty string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddFloat64 flag for next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddUint64 flag for next call to Parse().
func (md *Modes) AddUint64(name string, value uint64, usage string) *uint64 {
	return md.flags.Uint64(name, value, usage)
}

// Visit calls fn for each flag that has been set, in lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
