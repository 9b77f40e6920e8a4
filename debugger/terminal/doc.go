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

// Package terminal defines the operations required for command-line
// interaction with the debugger.
//
// For flexibility, terminal interaction happens through the Terminal
// interface. The reference implementation is the PlainTerminal found in the
// plainterm sub-package.
//
// Input is tokenised with the commandline sub-package.
package terminal
