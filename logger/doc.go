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

// Package logger is the central log repository for Gophernes. Entries are
// tagged and consecutive duplicate entries are folded together.
//
// The package level functions operate on a single central log. Components
// that want a log of their own, for example the debugger's trace output, can
// create one with NewLogger().
//
// Every log request is accompanied by a Permission. The emulation uses this
// to prevent logging from contexts where it would be misleading, for example
// from a secondary emulation created by a test.
package logger
