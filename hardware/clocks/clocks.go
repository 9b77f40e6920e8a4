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

// Package clocks defines the constant values that define the speed of the
// master clock in the NES and the dividers used to derive the CPU and PPU
// clocks from it.
//
// The ratio of PPU dots to CPU cycles is therefore a consequence of the
// dividers and is never stated directly. On NTSC consoles the ratio is exactly
// three. On PAL consoles it is 3.2.
package clocks

import "strings"

// Clock describes the master clock of a console.
type Clock struct {
	ID string

	// master clock frequency in MHz
	Master float64

	// the number of master clock ticks for each CPU cycle and each PPU dot
	CPUDivider int
	PPUDivider int
}

// The master clocks for the supported consoles.
var (
	NTSC  = Clock{ID: "NTSC", Master: 21.477272, CPUDivider: 12, PPUDivider: 4}
	PAL   = Clock{ID: "PAL", Master: 26.601712, CPUDivider: 16, PPUDivider: 5}
	Dendy = Clock{ID: "DENDY", Master: 26.601712, CPUDivider: 15, PPUDivider: 5}
)

// ForSpec returns the clock for the television specification ID. The NTSC
// clock is returned if the ID is not recognised.
func ForSpec(id string) Clock {
	switch strings.ToUpper(id) {
	case PAL.ID:
		return PAL
	case Dendy.ID:
		return Dendy
	}
	return NTSC
}

// CPU returns the CPU frequency in MHz.
func (c Clock) CPU() float64 {
	return c.Master / float64(c.CPUDivider)
}

// PPU returns the PPU frequency in MHz.
func (c Clock) PPU() float64 {
	return c.Master / float64(c.PPUDivider)
}
