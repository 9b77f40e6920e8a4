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

package govern

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// EmulatorStart is the default state and should never be entered once the
// emulator has begun.
//
// Initialising can be used when reinitialising the emulator. for example, when
// a new cartridge is being inserted.
const (
	EmulatorStart State = iota
	Initialising
	Paused
	Stepping
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case EmulatorStart:
		return "EmulatorStart"
	case Initialising:
		return "Initialising"
	case Paused:
		return "Paused"
	case Stepping:
		return "Stepping"
	case Running:
		return "Running"
	case Ending:
		return "Ending"
	}

	return ""
}

// StateTransition checks whether the change from one state to another is
// allowed.
func StateTransition(from State, to State) bool {
	switch from {
	case EmulatorStart:
		return to == Initialising
	case Ending:
		return false
	}
	return to != EmulatorStart
}
