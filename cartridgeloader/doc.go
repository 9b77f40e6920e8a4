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

// Package cartridgeloader is used to specify the data that is to be attached
// to the emulated NES.
//
// When the cartridge is ready to be loaded into the emulator, the Load()
// function should be used. The Load() function handles loading of data from
// different sources. Currently local-files and data over HTTP are supported.
//
// Loaded data is decoded as an iNES file. Both the original iNES header and
// the NES 2.0 extension are understood. The result of decoding is a
// mapper.Config along with the PRG and CHR data, which is everything needed by
// the Attach() function of the cartridge package:
//
//	cl := cartridgeloader.NewLoader("roms/game.nes")
//	err := cl.Load()
//	if err != nil {
//		return err
//	}
//	err = cart.Attach(cl.Config, cl.PRG, cl.CHR)
package cartridgeloader
