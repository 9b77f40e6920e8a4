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

// Package prefs facilitates the storing and loading of preferences to and
// from disk. Preference values are stored as one of the concrete types: Bool,
// String, Int or Float. Values are added to a Disk with a unique key.
//
//	var illegal prefs.String
//	dsk, _ := prefs.NewDisk("preferences")
//	dsk.Add("cpu.illegal", &illegal)
//	dsk.Load(true)
//
// The preference types are safe to read from any goroutine.
//
// Preference values can also be specified on the command line. The string
// passed to PushCommandLineStack() takes the form "key::value; key::value".
// These values override any value loaded from disk for the duration of that
// stack entry.
package prefs
