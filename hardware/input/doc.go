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

// Package input implements the two standard NES controllers and coordinates
// the different types of input into the emulation. The types of input handled
// by the package are:
//
// 1) Immediate input from the user, with HandleInputEvent()
// 2) Playback of a previously recorded script
// 3) Pushed events, from a different goroutine, with PushEvent()
//
// Events are also passed to an EventRecorder if one is attached. It is not
// possible for an emulation to be a playback and a recorder at the same time.
//
// The program sees the controllers only through the registers at $4016 and
// $4017. The Ports type implements the cpubus.ChipRegisters interface for this
// purpose. Writing bit 0 of $4016 sets the strobe of both controllers. While
// the strobe is set the controllers continuously reload their shift registers
// from the current button state. Reading $4016 or $4017 returns the next bit
// of the shift register of the corresponding controller in bit 0. The upper
// bits are not driven by the controllers and are taken from the data bus.
package input
