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

// Package hardware is the base package for the NES emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The NES type is the root of the emulation and contains external references
// to all the NES sub-systems. From here, the emulation can either be started
// to run continuously (with optional callback to check for continuation); or
// it can be stepped one CPU instruction at a time.
//
// The NES type is also the master clock. The CPU drives the emulation and
// after every CPU cycle the PPU, APU and cartridge are brought up to date
// with the number of master clock ticks that have elapsed. The ratio of PPU
// dots to CPU cycles is never hard-coded. It is derived from the clock
// dividers of the console region, which are defined in the clocks package.
package hardware
