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

package registers

import (
	"fmt"
)

// ProgramCounter represents the PC register in the 2A03 CPU.
type ProgramCounter struct {
	value uint16
}

// NewProgramCounter is the preferred method of initialisation for the
// ProgramCounter type.
func NewProgramCounter(val uint16) ProgramCounter {
	return ProgramCounter{value: val}
}

// Label returns an identifying string for the PC.
func (pc ProgramCounter) Label() string {
	return "PC"
}

func (pc ProgramCounter) String() string {
	return fmt.Sprintf("%04x", pc.value)
}

// Address returns the current value of the PC as a value of type uint16.
func (pc ProgramCounter) Address() uint16 {
	return pc.value
}

// Load a value into the PC.
func (pc *ProgramCounter) Load(val uint16) {
	pc.value = val
}

// Add a value to the PC. The PC wraps around on overflow.
func (pc *ProgramCounter) Add(val uint16) {
	pc.value += val
}
