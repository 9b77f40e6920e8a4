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

// Package cartridge fully implements loading of mapper types, bank switching,
// and the battery backed RAM found in some cartridges.
//
// The supported mappers are NROM (mapper 0), MMC1 (mapper 1), UxROM (mapper 2),
// CNROM (mapper 3), MMC3 (mapper 4), AxROM (mapper 7) and GxROM (mapper 66).
// The IsSupported() function can be used to check a mapper number before
// calling Attach().
//
// The CPU side of the cartridge is accessed with the Read() and Write()
// functions. Read() is given the current value of the data bus so that it can
// be returned for addresses that the cartridge does not drive. The PPU side of
// the cartridge is accessed with ReadCHR() and WriteCHR().
//
// Nametable mirroring is decided by the cartridge. The PPU must call
// Mirroring() every time it accesses a nametable because MMC1, MMC3 and AxROM
// can change the mirroring at any time.
package cartridge
