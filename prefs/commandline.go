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

package prefs

import (
	"fmt"
	"slices"
	"strings"
)

var commandLineStack []map[string]string

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses a preferences string and adds it as a new
// group. The string is a list of key/value pairs of the form:
//
//	key::value; key::value
//
// Malformed pairs are ignored.
func PushCommandLineStack(prefs string) {
	grp := make(map[string]string)
	for p := range strings.SplitSeq(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if !ok || strings.Contains(v, "::") {
			continue
		}
		grp[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	commandLineStack = append(commandLineStack, grp)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the unused preferences of the group, sorted by key, in the same
// form as accepted by PushCommandLineStack().
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	grp := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(grp))
	for k := range grp {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s::%s", k, grp[k]))
	}
	return strings.Join(s, "; ")
}

// GetCommandLinePref returns the value for the key in the current group. The
// value is removed from the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	grp := commandLineStack[len(commandLineStack)-1]
	if v, ok := grp[key]; ok {
		delete(grp, key)
		return true, v
	}

	return false, nil
}
