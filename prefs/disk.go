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
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
)

// WarningBoilerPlate is prepended to all preferences files.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// KeySep separates the key from the value in a preferences file.
const KeySep = " :: "

// NoPrefsFile is returned by Load() when the preferences file does not exist.
const NoPrefsFile = "prefs: no prefs file (%s)"

// Disk represents preference values as stored on disk. A preferences file
// can be shared by more than one Disk instance. Saving a Disk preserves the
// entries in the file that the Disk does not know about.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to the list of values to be stored on disk. The key
// must not contain whitespace or the key separator.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.ContainsAny(key, " \t\n") || strings.Contains(key, "::") {
		return fmt.Errorf("prefs: illegal key (%s)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already added (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset all preferences to their reset value.
func (dsk *Disk) Reset() error {
	for k, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}
	return nil
}

// read returns every key/value pair in the preferences file.
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	data := make(map[string]string)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == WarningBoilerPlate || len(strings.TrimSpace(line)) == 0 {
			continue
		}
		k, v, ok := strings.Cut(line, KeySep)
		if !ok {
			continue
		}
		data[k] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return data, nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	data, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		data = make(map[string]string)
	}

	for k, p := range dsk.entries {
		data[k] = p.String()
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	s := &strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(s, "%s%s%s\n", k, KeySep, data[k])
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o644); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. If saveOnFirstUse is true and the
// preferences file does not exist then the current values are saved and no
// error is returned.
//
// Any value for a key on the top of the command line stack overrides the
// value in the file.
func (dsk *Disk) Load(saveOnFirstUse bool) error {
	data, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) || !saveOnFirstUse {
			return err
		}
		if err := dsk.Save(); err != nil {
			return err
		}
		data = make(map[string]string)
	}

	for k, p := range dsk.entries {
		if v, ok := data[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}
