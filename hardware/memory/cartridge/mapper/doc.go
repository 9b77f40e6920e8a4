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

// Package mapper contains the definitions that are shared by all cartridge
// mapper implementations. The implementations themselves are in the
// cartridge package.
//
// The set of mappers is closed and the correct implementation is chosen when
// a cartridge is attached, using the Mapper field of the Config type. Config
// is usually created by the cartridgeloader package from the header of a
// cartridge file.
package mapper
