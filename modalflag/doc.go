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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Instead of defining flags globally, flags are added to a
// Modes value:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	verbose := md.AddBool("verbose", false, "print more")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// Sub-modes are added with AddSubModes(). The first sub-mode in the list is
// the default and is selected if the next argument does not name a sub-mode.
// Comparison of sub-modes is case insensitive.
//
//	md.AddSubModes("RUN", "DEBUG", "DISASM")
//	md.Parse()
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		fps := md.AddInt("fps", 60, "frames per second")
//		md.Parse()
//	}
//
// The Path() function returns the list of modes selected so far, separated
// by a forward slash. The path is printed as part of the help message.
package modalflag
