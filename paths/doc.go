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

// Package paths contains functions to prepare paths to Gophernes resources.
//
// The ResourcePath() function joins the supplied sub-path and filename to the
// base configuration directory, creating the directories if necessary. For
// example, the following returns the path to the battery backed RAM for a
// cartridge:
//
//	pth, err := paths.ResourcePath("saves", "zelda.sav")
//
// Release builds, those built with the "release" tag, use the user's
// configuration directory as returned by os.UserConfigDir(). Other builds use
// a ".gophernes" directory in the current working directory.
package paths
